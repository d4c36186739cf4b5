package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCacheTTL bounds how long a quote is reused before the exchanges are
// asked again.
const DefaultCacheTTL = 15 * time.Second

var ErrNoQuote = errors.New("no quote available")

// Quoter resolves a symbol to its current market price.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Client quotes symbols against the NSE listing first and falls back to BSE.
// Results are cached per symbol; if both exchanges fail, a stale cached price
// is served rather than failing the caller.
type Client struct {
	client  *http.Client
	baseURL string
	cache   *Cache
}

func NewClient(baseURL string, cache *Cache) *Client {
	return &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
	}
}

// exchange suffixes in lookup order: NSE, then BSE.
var exchangeSuffixes = []string{".NS", ".BO"}

func (c *Client) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return decimal.Zero, ErrNoQuote
	}

	if price, ok := c.cache.Get(symbol); ok {
		return price, nil
	}

	var lastErr error

	for _, suffix := range exchangeSuffixes {
		price, err := c.fetch(ctx, symbol+suffix)
		if err != nil {
			lastErr = err
			continue
		}

		c.cache.Set(symbol, price)

		return price, nil
	}

	if price, ok := c.cache.GetStale(symbol); ok {
		return price, nil
	}

	return decimal.Zero, fmt.Errorf("quoting %s: %w: %w", symbol, ErrNoQuote, lastErr)
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

func (c *Client) fetch(ctx context.Context, listing string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, listing)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote endpoint returned %d", resp.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding quote: %w", err)
	}

	if len(body.Chart.Result) == 0 {
		return decimal.Zero, ErrNoQuote
	}

	price := body.Chart.Result[0].Meta.RegularMarketPrice
	if !price.IsPositive() {
		return decimal.Zero, ErrNoQuote
	}

	return price, nil
}
