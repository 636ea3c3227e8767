package model

import "time"

// Category represents a node in the user's two-level category hierarchy.
// ParentID is nil for top-level categories; children never have children of
// their own.
type Category struct {
	CreatedAt time.Time
	Name      string
	ParentID  *int
	ID        int
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// Transaction represents a confirmed historical transaction, as read back
// from the store for category scoring.
type Transaction struct {
	Date        time.Time
	ID          string
	Merchant    string
	Description string
	Direction   Direction
	Source      SourceTag
	CategoryID  *int
	Amount      float64
}
