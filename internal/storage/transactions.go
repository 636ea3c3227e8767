package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendsignal/spendsignal/internal/common"
	"github.com/spendsignal/spendsignal/internal/model"
)

// InsertPending stores a candidate as a pending transaction and returns its
// assigned ID.
func (s *SQLiteStorage) InsertPending(ctx context.Context, candidate model.TransactionCandidate) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := candidate.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidCandidate, err)
	}

	id := uuid.NewString()

	var share, total sql.NullFloat64
	var num, den sql.NullInt64
	if candidate.Split != nil {
		share = sql.NullFloat64{Float64: candidate.Split.ShareAmount, Valid: true}
		total = sql.NullFloat64{Float64: candidate.Split.TotalAmount, Valid: true}
		num = sql.NullInt64{Int64: int64(candidate.Split.Numerator), Valid: true}
		den = sql.NullInt64{Int64: int64(candidate.Split.Denominator), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, amount, direction, source, merchant, description,
			 category_hint, raw_text, observed_at, status,
			 split_share, split_total, split_numerator, split_denominator)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?, ?, ?, ?)`,
		id, candidate.Amount, string(candidate.Direction), string(candidate.Source),
		candidate.Merchant, candidate.Description, candidate.CategoryHint,
		candidate.RawText, candidate.ObservedAt,
		share, total, num, den)
	if err != nil {
		return "", fmt.Errorf("failed to insert pending transaction: %w", err)
	}

	return id, nil
}

// HasRecentPending reports whether a pending income of the given amount was
// observed within the window.
func (s *SQLiteStorage) HasRecentPending(ctx context.Context, amount float64, within time.Duration) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	cutoff := s.clock.Now().Add(-within)

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE status = 'pending'
		  AND direction = ?
		  AND ABS(amount - ?) < 0.005
		  AND observed_at >= ?`,
		string(model.DirectionIncome), amount, cutoff).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query recent pending: %w", err)
	}

	return count > 0, nil
}

// MarkProcessed flags a pending transaction as confirmed.
func (s *SQLiteStorage) MarkProcessed(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, "confirmed")
}

// AssignCategory confirms a pending transaction with a category, making it
// part of the scorer's history.
func (s *SQLiteStorage) AssignCategory(ctx context.Context, id string, categoryID int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET status = 'confirmed', category_id = ? WHERE id = ?`,
		categoryID, id)
	if err != nil {
		return fmt.Errorf("failed to assign category: %w", err)
	}
	return checkAffected(result, id)
}

// Delete removes a pending transaction.
func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return checkAffected(result, id)
}

// ListHistoricalTransactions returns up to limit confirmed transactions,
// newest first.
func (s *SQLiteStorage) ListHistoricalTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 500
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, direction, source, merchant, description,
		       category_id, observed_at
		FROM transactions
		WHERE status = 'confirmed'
		ORDER BY observed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var direction, source string
		var merchant sql.NullString
		var categoryID sql.NullInt64

		if err := rows.Scan(&t.ID, &t.Amount, &direction, &source,
			&merchant, &t.Description, &categoryID, &t.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		t.Direction = model.Direction(direction)
		t.Source = model.SourceTag(source)
		t.Merchant = merchant.String
		if categoryID.Valid {
			id := int(categoryID.Int64)
			t.CategoryID = &id
		}
		txns = append(txns, t)
	}

	return txns, rows.Err()
}

func (s *SQLiteStorage) setStatus(ctx context.Context, id, status string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	return checkAffected(result, id)
}

func checkAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return nil
}
