package investment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("position not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidType     = errors.New("unknown asset type")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=investment
type Repository interface {
	CreatePosition(ctx context.Context, p *Position) error
	GetPosition(ctx context.Context, userID, id uuid.UUID) (*Position, error)
	GetPositionBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (*Position, error)
	UpdatePosition(ctx context.Context, p *Position) error
	ListPositions(ctx context.Context, userID uuid.UUID) ([]*Position, error)

	// ClosePosition deletes the open position and appends the history record
	// atomically.
	ClosePosition(ctx context.Context, p *Position, h *History) error
	ListHistory(ctx context.Context, userID uuid.UUID) ([]*History, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type BuyParams struct {
	UserID   uuid.UUID
	Symbol   string
	Name     string
	Quantity int64
	Price    decimal.Decimal
	BuyDate  time.Time
	Type     AssetType
}

// Buy opens a position, or merges into the existing one for the same symbol
// using a quantity-weighted average price.
func (s *Service) Buy(ctx context.Context, params BuyParams) (*Position, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if !params.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	if !params.Type.Valid() {
		return nil, ErrInvalidType
	}

	symbol := strings.ToUpper(strings.TrimSpace(params.Symbol))

	if params.BuyDate.IsZero() {
		params.BuyDate = s.now()
	}

	existing, err := s.repo.GetPositionBySymbol(ctx, params.UserID, symbol)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		p := &Position{
			UserID:      params.UserID,
			Symbol:      symbol,
			Name:        params.Name,
			Quantity:    params.Quantity,
			AvgBuyPrice: params.Price,
			BuyDate:     params.BuyDate,
			Type:        params.Type,
		}
		if err := s.repo.CreatePosition(ctx, p); err != nil {
			return nil, err
		}

		return p, nil
	}

	existing.AvgBuyPrice = mergedAveragePrice(
		existing.Quantity, existing.AvgBuyPrice,
		params.Quantity, params.Price,
	)
	existing.Quantity += params.Quantity

	if err := s.repo.UpdatePosition(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// mergedAveragePrice is the quantity-weighted average of the existing position
// and the new lot.
func mergedAveragePrice(oldQty int64, oldAvg decimal.Decimal, newQty int64, newPrice decimal.Decimal) decimal.Decimal {
	oldCost := oldAvg.Mul(decimal.NewFromInt(oldQty))
	newCost := newPrice.Mul(decimal.NewFromInt(newQty))

	return oldCost.Add(newCost).Div(decimal.NewFromInt(oldQty + newQty))
}

// UpdateParams carries a partial position edit; nil fields are untouched.
type UpdateParams struct {
	Name     *string
	Quantity *int64
	Price    *decimal.Decimal
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Position, error) {
	p, err := s.repo.GetPosition(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		p.Name = *params.Name
	}

	if params.Quantity != nil {
		if *params.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		p.Quantity = *params.Quantity
	}

	if params.Price != nil {
		if !params.Price.IsPositive() {
			return nil, ErrInvalidPrice
		}

		p.AvgBuyPrice = *params.Price
	}

	if err := s.repo.UpdatePosition(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Sell closes the whole position at the given price and records the realized
// outcome. Partial sells are not supported.
func (s *Service) Sell(ctx context.Context, userID, id uuid.UUID, sellPrice decimal.Decimal) (*History, error) {
	if !sellPrice.IsPositive() {
		return nil, ErrInvalidPrice
	}

	p, err := s.repo.GetPosition(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(p.Quantity)
	invested := p.AvgBuyPrice.Mul(qty)
	pnl := sellPrice.Sub(p.AvgBuyPrice).Mul(qty)

	pnlPercent := decimal.Zero
	if invested.IsPositive() {
		pnlPercent = pnl.Div(invested).Mul(decimal.NewFromInt(100))
	}

	h := &History{
		UserID:     p.UserID,
		Symbol:     p.Symbol,
		Name:       p.Name,
		Quantity:   p.Quantity,
		BuyPrice:   p.AvgBuyPrice,
		SellPrice:  sellPrice,
		BuyDate:    p.BuyDate,
		SellDate:   s.now(),
		PnL:        pnl,
		PnLPercent: pnlPercent,
		Type:       p.Type,
	}
	if err := s.repo.ClosePosition(ctx, p, h); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Position, error) {
	return s.repo.ListPositions(ctx, userID)
}

func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]*History, error) {
	return s.repo.ListHistory(ctx, userID)
}
