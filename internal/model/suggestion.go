package model

import (
	"fmt"
	"sort"
)

// CategorySuggestion represents how well a category fits a new transaction.
type CategorySuggestion struct {
	Name   string
	Reason string
	Score  float64
	ID     int
}

// Validate ensures the suggestion has valid data.
func (s *CategorySuggestion) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if s.Score < 0 {
		return fmt.Errorf("score must be non-negative, got %.2f", s.Score)
	}
	return nil
}

// CategorySuggestions is a slice of CategorySuggestion with ordering helpers.
type CategorySuggestions []CategorySuggestion

// Sort orders suggestions by score descending. The sort is stable: equal
// scores keep their original relative order, so repeated calls with the same
// input produce the same ranking.
func (s CategorySuggestions) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Score > s[j].Score
	})
}

// Top returns the highest-scoring suggestion, or nil if empty.
func (s CategorySuggestions) Top() *CategorySuggestion {
	if len(s) == 0 {
		return nil
	}
	s.Sort()
	return &s[0]
}

// TopN returns the N highest-scoring suggestions.
func (s CategorySuggestions) TopN(n int) CategorySuggestions {
	if n <= 0 {
		return CategorySuggestions{}
	}
	s.Sort()
	if n > len(s) {
		n = len(s)
	}
	result := make(CategorySuggestions, n)
	copy(result, s[:n])
	return result
}
