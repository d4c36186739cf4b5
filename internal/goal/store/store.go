package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/asahu12/finsight/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, user_id, title, target_amount, deadline, description, created_at, updated_at
func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal

	if err := s.Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.Deadline,
		&g.Description, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &g, nil
}

const selectGoalColumns = `
	g.id, g.user_id, g.title, g.target_amount, g.deadline, g.description,
	g.created_at, g.updated_at
`

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (user_id, title, target_amount, deadline, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.UserID,
		g.Title,
		g.TargetAmount,
		g.Deadline,
		g.Description,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + `
		FROM goals g
		WHERE g.id = $1 AND g.user_id = $2`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + `
		FROM goals g
		WHERE g.user_id = $1
		ORDER BY g.deadline ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal rows: %w", err)
	}

	return goals, nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	if affected == 0 {
		return goal.ErrNotFound
	}

	return nil
}
