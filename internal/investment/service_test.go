package investment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/asahu12/finsight/internal/investment"
)

func TestService_Buy_NewPosition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	repo := investment.NewMockRepository(ctrl)

	repo.EXPECT().
		GetPositionBySymbol(gomock.Any(), userID, "INFY").
		Return(nil, investment.ErrNotFound)

	repo.EXPECT().
		CreatePosition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *investment.Position) error {
			p.ID = uuid.New()
			p.CreatedAt = time.Now()
			return nil
		})

	svc := investment.NewService(repo)

	got, err := svc.Buy(context.Background(), investment.BuyParams{
		UserID:   userID,
		Symbol:   " infy ",
		Name:     "Infosys",
		Quantity: 10,
		Price:    decimal.NewFromInt(1500),
		Type:     investment.AssetStock,
	})
	require.NoError(t, err)

	assert.Equal(t, "INFY", got.Symbol)
	assert.EqualValues(t, 10, got.Quantity)
	assert.False(t, got.BuyDate.IsZero())
}

func TestService_Buy_MergesExistingPosition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	repo := investment.NewMockRepository(ctrl)

	existing := &investment.Position{
		ID:          uuid.New(),
		UserID:      userID,
		Symbol:      "TCS",
		Quantity:    10,
		AvgBuyPrice: decimal.NewFromInt(100),
		Type:        investment.AssetStock,
	}

	repo.EXPECT().
		GetPositionBySymbol(gomock.Any(), userID, "TCS").
		Return(existing, nil)

	repo.EXPECT().
		UpdatePosition(gomock.Any(), existing).
		Return(nil)

	svc := investment.NewService(repo)

	got, err := svc.Buy(context.Background(), investment.BuyParams{
		UserID:   userID,
		Symbol:   "TCS",
		Quantity: 10,
		Price:    decimal.NewFromInt(120),
		Type:     investment.AssetStock,
	})
	require.NoError(t, err)

	// 10 @ 100 + 10 @ 120 -> 20 @ 110 exactly.
	assert.EqualValues(t, 20, got.Quantity)
	assert.True(t, got.AvgBuyPrice.Equal(decimal.NewFromInt(110)),
		"avg price = %s", got.AvgBuyPrice)
}

func TestService_Buy_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  investment.BuyParams
		wantErr error
	}{
		{
			name: "ZeroQuantity",
			params: investment.BuyParams{
				Symbol: "X", Quantity: 0, Price: decimal.NewFromInt(1), Type: investment.AssetStock,
			},
			wantErr: investment.ErrInvalidQuantity,
		},
		{
			name: "ZeroPrice",
			params: investment.BuyParams{
				Symbol: "X", Quantity: 1, Price: decimal.Zero, Type: investment.AssetStock,
			},
			wantErr: investment.ErrInvalidPrice,
		},
		{
			name: "UnknownType",
			params: investment.BuyParams{
				Symbol: "X", Quantity: 1, Price: decimal.NewFromInt(1), Type: "BOND",
			},
			wantErr: investment.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := investment.NewService(investment.NewMockRepository(ctrl))

			_, err := svc.Buy(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Sell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	positionID := uuid.New()
	repo := investment.NewMockRepository(ctrl)

	p := &investment.Position{
		ID:          positionID,
		UserID:      userID,
		Symbol:      "WIPRO",
		Quantity:    20,
		AvgBuyPrice: decimal.NewFromInt(400),
		BuyDate:     time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		Type:        investment.AssetStock,
	}

	repo.EXPECT().
		GetPosition(gomock.Any(), userID, positionID).
		Return(p, nil)

	var recorded *investment.History

	repo.EXPECT().
		ClosePosition(gomock.Any(), p, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *investment.Position, h *investment.History) error {
			h.ID = uuid.New()
			recorded = h
			return nil
		})

	svc := investment.NewService(repo)

	h, err := svc.Sell(context.Background(), userID, positionID, decimal.NewFromInt(450))
	require.NoError(t, err)
	require.Same(t, recorded, h)

	// pnl = (450-400)*20 = 1000; percent = 1000/(400*20)*100 = 12.5
	assert.True(t, h.PnL.Equal(decimal.NewFromInt(1000)), "pnl = %s", h.PnL)
	assert.True(t, h.PnLPercent.Equal(decimal.NewFromFloat(12.5)), "pnl%% = %s", h.PnLPercent)
	assert.Equal(t, p.Symbol, h.Symbol)
	assert.EqualValues(t, 20, h.Quantity)
	assert.False(t, h.SellDate.IsZero())
}

func TestService_Sell_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := investment.NewMockRepository(ctrl)
	repo.EXPECT().
		GetPosition(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, investment.ErrNotFound)

	svc := investment.NewService(repo)

	_, err := svc.Sell(context.Background(), uuid.New(), uuid.New(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, investment.ErrNotFound)
}
