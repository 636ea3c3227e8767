// Package service defines the contracts between the core and its external
// collaborators. The core never blocks on these: every call is best-effort
// and a failure must not corrupt in-memory state.
package service

import (
	"context"
	"time"

	"github.com/spendsignal/spendsignal/internal/model"
)

// TransactionStore persists transaction candidates as pending transactions
// awaiting user confirmation.
type TransactionStore interface {
	// InsertPending stores a candidate and returns its assigned ID.
	InsertPending(ctx context.Context, candidate model.TransactionCandidate) (string, error)
	// HasRecentPending reports whether a pending income of the given
	// amount was stored within the window.
	HasRecentPending(ctx context.Context, amount float64, within time.Duration) (bool, error)
	// MarkProcessed flags a pending transaction as confirmed by the user.
	MarkProcessed(ctx context.Context, id string) error
	// Delete removes a pending transaction.
	Delete(ctx context.Context, id string) error
}

// ReminderStore persists payment reminders emitted by the accessibility
// correlator.
type ReminderStore interface {
	// Insert stores a reminder and returns its assigned ID.
	Insert(ctx context.Context, reminder model.PaymentReminder) (string, error)
	// DeleteRecent removes reminders created within the window. Used when
	// a faster channel already produced a concrete candidate for the same
	// payment.
	DeleteRecent(ctx context.Context, within time.Duration) error
}

// CategoryContext provides the read-only inputs for category scoring.
type CategoryContext interface {
	// ListCategories returns the user's category tree.
	ListCategories(ctx context.Context) ([]model.Category, error)
	// ListHistoricalTransactions returns up to limit confirmed
	// transactions, newest first.
	ListHistoricalTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
}
