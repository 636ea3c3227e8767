package extract

import "regexp"

// pattern pairs a compiled regex with a name for logging and tests. Each
// table below is ordered: the first pattern that matches wins, so more
// specific shapes must come before generic fallbacks.
type pattern struct {
	re   *regexp.Regexp
	name string
}

// Amount patterns, most specific first. Group 1 captures the numeric part,
// possibly with thousands separators.
var amountPatterns = []pattern{
	{name: "currency-symbol", re: regexp.MustCompile(`[₹$]\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
	{name: "rs-inr-prefix", re: regexp.MustCompile(`(?i)\b(?:rs|inr)\.?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
	{name: "debit-credit-phrase", re: regexp.MustCompile(`(?i)\b(?:debited|credited)\s+(?:by|with|for)\s*(?:rs\.?|inr)?\s*₹?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
	{name: "named-currency", re: regexp.MustCompile(`(?i)\b(?:usd|eur|gbp|aed|sgd|aud|cad)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
}

// Merchant patterns, keyed to the structural shapes Indian bank SMS use.
var merchantPatterns = []pattern{
	{name: "trf-to-refno", re: regexp.MustCompile(`(?i)trf\s+to\s+(.+?)\s+refno`)},
	{name: "to-x-ref", re: regexp.MustCompile(`(?i)\bto\s+([A-Za-z0-9@._&' -]+?)\.\s*Ref`)},
	{name: "at-x-on-date", re: regexp.MustCompile(`(?i)\bat\s+(.+?)\s+on\s+\d{1,2}[-/]`)},
	{name: "towards-x-using", re: regexp.MustCompile(`(?i)\btowards\s+(.+?)\s+using`)},
	{name: "at-x-on-bank", re: regexp.MustCompile(`(?i)\bat\s+([A-Za-z0-9._&' -]+?)\s+on\s+`)},
	{name: "to-at-generic", re: regexp.MustCompile(`(?i)\b(?:to|at)\s+([A-Za-z][A-Za-z0-9._&' -]{2,})`)},
	{name: "upi-handle", re: regexp.MustCompile(`([A-Za-z0-9.\-_]{2,}@[A-Za-z]{2,})`)},
}

// Sender patterns for payment-app notification text.
var senderPatterns = []pattern{
	{name: "x-sent-you", re: regexp.MustCompile(`(?i)^(.+?)\s+(?:sent|paid)\s+you\b`)},
	{name: "from-x", re: regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z0-9._&' -]+)`)},
}
