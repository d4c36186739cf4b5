package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/asahu12/finsight/internal/investment"
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

// Expected column order: id, user_id, symbol, name, quantity, avg_buy_price, buy_date, type, created_at, updated_at
func scanPosition(s scanner) (*investment.Position, error) {
	var p investment.Position

	var assetType string

	if err := s.Scan(
		&p.ID, &p.UserID, &p.Symbol, &p.Name, &p.Quantity, &p.AvgBuyPrice,
		&p.BuyDate, &assetType, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = investment.AssetType(assetType)

	return &p, nil
}

const selectPositionColumns = `
	p.id, p.user_id, p.symbol, p.name, p.quantity, p.avg_buy_price, p.buy_date,
	p.type, p.created_at, p.updated_at
`

func (s *Store) CreatePosition(ctx context.Context, p *investment.Position) error {
	query := `
		INSERT INTO investments (user_id, symbol, name, quantity, avg_buy_price, buy_date, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Symbol,
		p.Name,
		p.Quantity,
		p.AvgBuyPrice,
		p.BuyDate,
		p.Type,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating position: %w", err)
	}

	return nil
}

func (s *Store) GetPosition(ctx context.Context, userID, id uuid.UUID) (*investment.Position, error) {
	query := `SELECT ` + selectPositionColumns + `
		FROM investments p
		WHERE p.id = $1 AND p.user_id = $2`

	p, err := scanPosition(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, investment.ErrNotFound
		}

		return nil, fmt.Errorf("getting position: %w", err)
	}

	return p, nil
}

func (s *Store) GetPositionBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (*investment.Position, error) {
	query := `SELECT ` + selectPositionColumns + `
		FROM investments p
		WHERE p.user_id = $1 AND p.symbol = $2`

	p, err := scanPosition(s.db.QueryRowContext(ctx, query, userID, symbol))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, investment.ErrNotFound
		}

		return nil, fmt.Errorf("getting position by symbol: %w", err)
	}

	return p, nil
}

func (s *Store) UpdatePosition(ctx context.Context, p *investment.Position) error {
	query := `
		UPDATE investments
		SET name = $1, quantity = $2, avg_buy_price = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
	`

	_, err := s.db.ExecContext(ctx, query,
		p.Name,
		p.Quantity,
		p.AvgBuyPrice,
		p.ID,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating position: %w", err)
	}

	return nil
}

func (s *Store) ListPositions(ctx context.Context, userID uuid.UUID) ([]*investment.Position, error) {
	query := `SELECT ` + selectPositionColumns + `
		FROM investments p
		WHERE p.user_id = $1
		ORDER BY p.symbol ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	defer rows.Close()

	var positions []*investment.Position

	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}

		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating position rows: %w", err)
	}

	return positions, nil
}

// ClosePosition removes the open position and appends its history record in
// one database transaction so a sell can never half-apply.
func (s *Store) ClosePosition(ctx context.Context, p *investment.Position, h *investment.History) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	historyQuery := `
		INSERT INTO investment_history (user_id, symbol, name, quantity, buy_price, sell_price, buy_date, sell_date, pnl, pnl_percent, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, historyQuery,
		h.UserID,
		h.Symbol,
		h.Name,
		h.Quantity,
		h.BuyPrice,
		h.SellPrice,
		h.BuyDate,
		h.SellDate,
		h.PnL,
		h.PnLPercent,
		h.Type,
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording history: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM investments WHERE id = $1 AND user_id = $2`, p.ID, p.UserID,
	); err != nil {
		return fmt.Errorf("removing position: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing close: %w", err)
	}

	return nil
}

func (s *Store) ListHistory(ctx context.Context, userID uuid.UUID) ([]*investment.History, error) {
	query := `
		SELECT h.id, h.user_id, h.symbol, h.name, h.quantity, h.buy_price, h.sell_price,
			h.buy_date, h.sell_date, h.pnl, h.pnl_percent, h.type, h.created_at
		FROM investment_history h
		WHERE h.user_id = $1
		ORDER BY h.sell_date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var records []*investment.History

	for rows.Next() {
		var h investment.History

		var assetType string

		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Symbol, &h.Name, &h.Quantity, &h.BuyPrice,
			&h.SellPrice, &h.BuyDate, &h.SellDate, &h.PnL, &h.PnLPercent,
			&assetType, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}

		h.Type = investment.AssetType(assetType)
		records = append(records, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return records, nil
}
