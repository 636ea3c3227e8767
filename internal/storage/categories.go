package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spendsignal/spendsignal/internal/common"
	"github.com/spendsignal/spendsignal/internal/model"
)

// CreateCategory adds a category; parentID is nil for top-level categories.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name string, parentID *int) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, parent_id) VALUES (?, ?)`, name, parentID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("category %q: %w", name, common.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read category id: %w", err)
	}

	return &model.Category{ID: int(id), Name: name, ParentID: parentID}, nil
}

// ListCategories returns all categories ordered by ID.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, parent_id, created_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var parent sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &parent, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if parent.Valid {
			p := int(parent.Int64)
			c.ParentID = &p
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
