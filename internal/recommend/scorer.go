// Package recommend ranks categories for a new transaction against the
// user's history. Scoring is a fixed-order accumulation of capped
// sub-scores, so results are deterministic and the first contributing rule
// doubles as the human-readable reason.
package recommend

import (
	"sort"
	"strings"
	"time"

	"github.com/spendsignal/spendsignal/internal/common"
	"github.com/spendsignal/spendsignal/internal/model"
)

const (
	topSuggestions = 5
	recencyWindow  = 30 * 24 * time.Hour
)

// Input describes the new transaction being categorized.
type Input struct {
	ObservedAt  time.Time
	Merchant    string
	Description string
	Direction   model.Direction
	Source      model.SourceTag
	Amount      float64
}

// Scorer ranks categories against historical transactions.
type Scorer struct {
	clock common.Clock
}

// New creates a scorer using the given clock for recency calculations.
func New(clock common.Clock) *Scorer {
	return &Scorer{clock: clock}
}

// Score returns ranked category suggestions: up to five scoring categories
// sorted by score descending (stable, input order breaks ties), followed by
// the remaining top-level categories in case-insensitive alphabetical
// order. Parent categories absorb their children's history.
func (s *Scorer) Score(input Input, categories []model.Category, history []model.Transaction) model.CategorySuggestions {
	// Child category IDs roll up to their top-level parent.
	topLevelOf := make(map[int]int, len(categories))
	for _, cat := range categories {
		if cat.ParentID != nil {
			topLevelOf[cat.ID] = *cat.ParentID
		} else {
			topLevelOf[cat.ID] = cat.ID
		}
	}

	// Only confirmed, categorized transactions of the same direction count.
	relevant := make([]model.Transaction, 0, len(history))
	byTopLevel := make(map[int][]model.Transaction)
	for _, txn := range history {
		if txn.Direction != input.Direction || txn.CategoryID == nil {
			continue
		}
		relevant = append(relevant, txn)
		top, ok := topLevelOf[*txn.CategoryID]
		if !ok {
			top = *txn.CategoryID
		}
		byTopLevel[top] = append(byTopLevel[top], txn)
	}

	var scored model.CategorySuggestions
	seen := make(map[int]bool)
	for _, cat := range categories {
		if cat.ParentID != nil {
			continue
		}
		score, reason := s.scoreCategory(input, cat, byTopLevel[cat.ID], len(relevant))
		if score > 0 {
			scored = append(scored, model.CategorySuggestion{
				ID:     cat.ID,
				Name:   cat.Name,
				Score:  score,
				Reason: reason,
			})
		}
	}

	result := scored.TopN(topSuggestions)
	for _, sg := range result {
		seen[sg.ID] = true
	}

	// Remaining top-level categories, alphabetically.
	var rest model.CategorySuggestions
	for _, cat := range categories {
		if cat.ParentID != nil || seen[cat.ID] {
			continue
		}
		rest = append(rest, model.CategorySuggestion{ID: cat.ID, Name: cat.Name})
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return strings.ToLower(rest[i].Name) < strings.ToLower(rest[j].Name)
	})

	return append(result, rest...)
}

// scoreCategory accumulates the sub-scores in their fixed order. The reason
// is the first rule that contributed.
func (s *Scorer) scoreCategory(input Input, cat model.Category, matches []model.Transaction, totalRelevant int) (float64, string) {
	var score float64
	var reason string

	add := func(points float64, why string) {
		if points <= 0 {
			return
		}
		score += points
		if reason == "" {
			reason = why
		}
	}

	// 1. Merchant match.
	add(merchantScore(input.Merchant, matches), "matching merchant")

	// 2. Description-word overlap.
	add(descriptionScore(input.Description, matches), "similar description")

	// 3. Category name appears in the description.
	add(nameInDescriptionScore(cat.Name, input.Description), "name appears in description")

	// 4. Usage frequency.
	if totalRelevant > 0 {
		add(float64(len(matches))/float64(totalRelevant)*25, "frequently used")
	}

	// 5. Payment source, only with enough history to mean anything.
	if len(matches) >= 3 {
		sourceMatches := 0
		for _, m := range matches {
			if m.Source == input.Source {
				sourceMatches++
			}
		}
		add(float64(sourceMatches)/float64(len(matches))*20, "same payment source")
	}

	// 6. Time-of-day bucket.
	bucket := timeOfDayBucket(input.ObservedAt.Hour())
	timeMatches := 0
	for _, m := range matches {
		if timeOfDayBucket(m.Date.Hour()) == bucket {
			timeMatches++
		}
	}
	if timeMatches >= 3 {
		add(15, "same time of day")
	}

	// 7. Amount bucket.
	ab := amountBucket(input.Amount)
	amountMatches := 0
	for _, m := range matches {
		if amountBucket(m.Amount) == ab {
			amountMatches++
		}
	}
	if amountMatches >= 2 {
		add(15, "similar amount")
	}

	// 8. Recency.
	now := s.clock.Now()
	recent := 0
	for _, m := range matches {
		if now.Sub(m.Date) <= recencyWindow {
			recent++
		}
	}
	add(minFloat(10, 2*float64(recent)), "used recently")

	return score, reason
}

func merchantScore(merchant string, matches []model.Transaction) float64 {
	m := strings.ToLower(strings.TrimSpace(merchant))
	if m == "" {
		return 0
	}

	substring := false
	for _, txn := range matches {
		h := strings.ToLower(strings.TrimSpace(txn.Merchant))
		if h == "" {
			continue
		}
		if h == m {
			return 100
		}
		if strings.Contains(h, m) || strings.Contains(m, h) {
			substring = true
		}
	}
	if substring {
		return 50
	}
	return 0
}

func descriptionScore(description string, matches []model.Transaction) float64 {
	words := descriptionWords(description)
	if len(words) == 0 {
		return 0
	}

	count := 0
	for _, w := range words {
		for _, txn := range matches {
			if strings.Contains(strings.ToLower(txn.Description), w) {
				count++
				break
			}
		}
	}
	return minFloat(40, 10*float64(count))
}

func nameInDescriptionScore(name, description string) float64 {
	n := strings.ToLower(strings.TrimSpace(name))
	d := strings.ToLower(strings.TrimSpace(description))
	if n == "" || d == "" {
		return 0
	}
	if strings.Contains(d, n) {
		return 30
	}
	if len(d) >= 5 && strings.Contains(n, d[:5]) {
		return 30
	}
	return 0
}

// descriptionWords splits a description on space, comma, hyphen, and slash,
// keeping only words longer than two characters.
func descriptionWords(description string) []string {
	raw := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '/'
	})
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
