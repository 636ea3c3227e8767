// Package classify turns raw signal text into transaction candidates.
//
// Classification is a best-effort heuristic over untrusted OS text: keyword
// tables and ordered rules decide whether a piece of text describes a real
// transaction, and if so, its direction, payment source, and counterparty.
// Malformed input always resolves to a rejection, never an error.
package classify

import "strings"

// Verdict describes the result of a classification attempt.
type Verdict int

const (
	// VerdictAccepted means one or more candidates were produced.
	VerdictAccepted Verdict = iota
	// VerdictRejected means the text is not a transaction.
	VerdictRejected
	// VerdictSuppressed means the text was a valid transaction already
	// processed recently. Distinguished from rejection only for logging.
	VerdictSuppressed
)

// String returns a log-friendly name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictAccepted:
		return "accepted"
	case VerdictRejected:
		return "rejected"
	case VerdictSuppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
