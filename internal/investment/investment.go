package investment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType categorises a holding.
type AssetType string

const (
	AssetStock  AssetType = "STOCK"
	AssetMF     AssetType = "MF"
	AssetETF    AssetType = "ETF"
	AssetCrypto AssetType = "CRYPTO"
	AssetOther  AssetType = "OTHER"
)

// Valid reports whether a is a known asset type.
func (a AssetType) Valid() bool {
	switch a {
	case AssetStock, AssetMF, AssetETF, AssetCrypto, AssetOther:
		return true
	}

	return false
}

// Position is an open holding. There is at most one per (user, symbol):
// repeat buys merge into it via a quantity-weighted average price.
type Position struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Symbol      string
	Name        string
	Quantity    int64
	AvgBuyPrice decimal.Decimal
	BuyDate     time.Time
	Type        AssetType
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// History is the immutable record of a closed position.
type History struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Symbol     string
	Name       string
	Quantity   int64
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	BuyDate    time.Time
	SellDate   time.Time
	PnL        decimal.Decimal
	PnLPercent decimal.Decimal
	Type       AssetType
	CreatedAt  time.Time
}
