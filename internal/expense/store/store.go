package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/asahu12/finsight/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanExpense reads one expense row.
// Expected column order: id, user_id, amount, category, description, date, goal_id, created_at, updated_at
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var category string

	var goalID *uuid.UUID

	if err := s.Scan(
		&e.ID, &e.UserID, &e.Amount, &category, &e.Description, &e.Date,
		&goalID, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Category = expense.Category(category)
	e.GoalID = goalID

	return &e, nil
}

const selectExpenseColumns = `
	e.id, e.user_id, e.amount, e.category, e.description, e.date,
	e.goal_id, e.created_at, e.updated_at
`

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, amount, category, description, date, goal_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.Amount,
		e.Category,
		e.Description,
		e.Date,
		e.GoalID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, userID, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		WHERE e.id = $1 AND e.user_id = $2`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		WHERE e.user_id = $1`

	args := []any{filter.UserID}

	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND e.category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.GoalID != nil {
		query += fmt.Sprintf(" AND e.goal_id = $%d", argIdx)

		args = append(args, *filter.GoalID)
		argIdx++
	}

	query += " ORDER BY e.date DESC, e.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $1, category = $2, description = $3, date = $4, goal_id = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Amount,
		e.Category,
		e.Description,
		e.Date,
		e.GoalID,
		e.ID,
		e.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if affected == 0 {
		return expense.ErrNotFound
	}

	return nil
}

func (s *Store) DetachGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	query := `
		UPDATE expenses
		SET goal_id = NULL, updated_at = NOW()
		WHERE goal_id = $1 AND user_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return fmt.Errorf("detaching goal from expenses: %w", err)
	}

	return nil
}
