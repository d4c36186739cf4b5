package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asahu12/finsight/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, rawDescription string) (expense.Category, error) {
	// Longest pattern wins so "AMAZON PRIME" beats "AMAZON".
	query := `
		SELECT category
		FROM category_rules
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, rawDescription).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category rule: %w", err)
	}

	return expense.Category(category), nil
}

func (s *Store) CreateRule(ctx context.Context, pattern string, category expense.Category) error {
	query := `
		INSERT INTO category_rules (pattern, category, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, pattern, category)
	if err != nil {
		return fmt.Errorf("creating category rule: %w", err)
	}

	return nil
}
