package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendsignal/spendsignal/internal/model"
)

// Insert stores a payment reminder and returns its assigned ID.
func (s *SQLiteStorage) Insert(ctx context.Context, reminder model.PaymentReminder) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(reminder.SourceApp, "sourceApp"); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, source_app, observed_at) VALUES (?, ?, ?)`,
		id, reminder.SourceApp, reminder.ObservedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert reminder: %w", err)
	}

	return id, nil
}

// DeleteRecent removes reminders observed within the window.
func (s *SQLiteStorage) DeleteRecent(ctx context.Context, within time.Duration) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	cutoff := s.clock.Now().Add(-within)
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE observed_at >= ?`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete recent reminders: %w", err)
	}
	return nil
}
