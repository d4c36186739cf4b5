package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/user"
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

// Expected column order: id, name, email, password_hash, monthly_budget, starting_balance, created_at, updated_at
func scanUser(s scanner) (*user.User, error) {
	var u user.User

	if err := s.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.MonthlyBudget, &u.StartingBalance,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &u, nil
}

const selectUserColumns = `
	u.id, u.name, u.email, u.password_hash, u.monthly_budget, u.starting_balance,
	u.created_at, u.updated_at
`

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, monthly_budget, starting_balance, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, NOW(), NOW())
		RETURNING id, monthly_budget, starting_balance, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
	).Scan(&u.ID, &u.MonthlyBudget, &u.StartingBalance, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.email = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) UpdateBudget(ctx context.Context, id uuid.UUID, budget decimal.Decimal) error {
	query := `
		UPDATE users
		SET monthly_budget = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, budget, id)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	if affected == 0 {
		return user.ErrNotFound
	}

	return nil
}
