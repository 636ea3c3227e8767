// Package extract pulls transaction fields out of free-form, untrusted text
// using ordered pattern tables. A miss is reported as a false second return,
// never as an error: the text simply did not contain the field.
package extract

import (
	"strconv"
	"strings"
)

// maxNameLength caps extracted merchant and sender names.
const maxNameLength = 50

// Amount returns the first monetary amount found in text. Patterns are
// tried in table order; thousands separators are stripped before the numeric
// parse, and a residue that still fails to parse falls through to the next
// pattern.
func Amount(text string) (float64, bool) {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return value, true
	}
	return 0, false
}

// Merchant returns the counterparty name guessed from text, trimmed and
// capped at 50 characters.
func Merchant(text string) (string, bool) {
	return firstName(merchantPatterns, text)
}

// Sender returns the payer name guessed from payment-app notification text.
func Sender(text string) (string, bool) {
	return firstName(senderPatterns, text)
}

func firstName(patterns []pattern, text string) (string, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := cleanName(m[1])
		if name == "" {
			continue
		}
		return name, true
	}
	return "", false
}

func cleanName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, ".,;:-")
	name = strings.TrimSpace(name)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
		name = strings.TrimSpace(name)
	}
	return name
}
