package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spendsignal/spendsignal/internal/model"
)

var (
	// expenseHeaderRe parses "<ExpenseName> (₹<Total>)" from a Splitwise
	// title, ticker, or bundle line.
	expenseHeaderRe = regexp.MustCompile(`^(.+?)\s*\(\s*₹\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*\)`)
	// youOweRe parses the user's share from "you owe ₹<Share>" phrasing.
	youOweRe = regexp.MustCompile(`(?i)you\s+owe\s*₹?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
)

// classifySplitwise handles Splitwise notifications. Only "you owe" pushes
// become candidates; the user is not paying in any other case. A single
// notification carries one expense; a bundled one carries several lines, of
// which only the newest (named by the ticker) has an exact share.
func (c *NotificationClassifier) classifySplitwise(n model.Notification) ([]model.TransactionCandidate, Verdict) {
	all := strings.ToLower(n.Ticker + " " + n.Title + " " + n.Text + " " + strings.Join(n.Lines, " "))
	if !strings.Contains(all, "you owe") {
		return nil, VerdictRejected
	}

	if len(n.Lines) > 1 {
		return c.classifyBundle(n)
	}
	return c.classifySingle(n)
}

func (c *NotificationClassifier) classifySingle(n model.Notification) ([]model.TransactionCandidate, Verdict) {
	header := n.Title
	if header == "" {
		header = n.Ticker
	}

	name, total, ok := parseExpenseHeader(header)
	if !ok || total <= 0 {
		return nil, VerdictRejected
	}

	share, haveShare := parseYouOwe(n.Text)
	var num, den int
	switch {
	case !haveShare || share <= 0:
		share = total / 2
		num, den = 1, 2
	default:
		num, den = InferSplitRatio(share, total)
	}

	if !c.processed.MarkIfNew(normalizeExpenseName(name)) {
		return nil, VerdictSuppressed
	}

	return []model.TransactionCandidate{splitCandidate(n, name, share, total, num, den)}, VerdictAccepted
}

// classifyBundle processes every not-yet-seen line of a bundled
// notification. The ticker names only the latest expense with its exact
// share; the rest of the bundle defaults to an even split.
func (c *NotificationClassifier) classifyBundle(n model.Notification) ([]model.TransactionCandidate, Verdict) {
	tickerName, _, tickerOK := parseExpenseHeader(n.Ticker)
	tickerShare, tickerShareOK := parseYouOwe(n.Ticker)
	tickerKey := normalizeExpenseName(tickerName)

	var candidates []model.TransactionCandidate
	suppressed := false

	for _, line := range n.Lines {
		name, total, ok := parseExpenseHeader(line)
		if !ok || total <= 0 {
			continue
		}

		key := normalizeExpenseName(name)
		if !c.processed.MarkIfNew(key) {
			suppressed = true
			continue
		}

		share := total / 2
		num, den := 1, 2
		if tickerOK && tickerShareOK && key == tickerKey && tickerShare > 0 {
			share = tickerShare
			num, den = InferSplitRatio(share, total)
		}

		cand := splitCandidate(n, name, share, total, num, den)
		cand.RawText = line
		candidates = append(candidates, cand)
	}

	switch {
	case len(candidates) > 0:
		return candidates, VerdictAccepted
	case suppressed:
		return nil, VerdictSuppressed
	default:
		return nil, VerdictRejected
	}
}

func splitCandidate(n model.Notification, name string, share, total float64, num, den int) model.TransactionCandidate {
	return model.TransactionCandidate{
		ObservedAt:  n.ObservedAt,
		Amount:      share,
		Direction:   model.DirectionExpense,
		Source:      model.SourceOther,
		Description: name,
		RawText:     strings.TrimSpace(n.Title + " " + n.Text),
		Split: &model.SplitInfo{
			ShareAmount: share,
			TotalAmount: total,
			Numerator:   num,
			Denominator: den,
		},
	}
}

func parseExpenseHeader(s string) (name string, total float64, ok bool) {
	m := expenseHeaderRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", 0, false
	}
	total, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), total, true
}

func parseYouOwe(s string) (float64, bool) {
	m := youOweRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	share, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return share, true
}

func normalizeExpenseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
