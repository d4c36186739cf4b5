package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/encoding"
	"github.com/asahu12/finsight/internal/expense"
)

var ErrEmptyStatement = errors.New("statement has no rows")

//go:generate mockgen -source=importer.go -destination=categorizer_mock.go -package=importer

// Categorizer suggests a category for a raw statement description.
type Categorizer interface {
	Suggest(ctx context.Context, rawDescription string) (expense.Category, error)
}

// Service parses bank statement CSV exports into expense rows. Expected
// columns: date, amount, description and an optional category; a header row
// is skipped when present. Rows without a category are run through the
// categorizer.
type Service struct {
	categorizer Categorizer
}

func NewService(categorizer Categorizer) *Service {
	return &Service{categorizer: categorizer}
}

// accepted statement date layouts, tried in order.
var dateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"02-01-2006",
}

func (s *Service) Parse(ctx context.Context, r io.Reader) ([]expense.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding statement: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	var params []expense.CreateParams

	for i, row := range records {
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", i+1, len(row))
		}

		date, err := parseDate(row[0])
		if err != nil {
			if i == 0 {
				// Header row.
				continue
			}

			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		amount, err := parseAmount(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		description := strings.TrimSpace(row[2])

		category, err := s.resolveCategory(ctx, row, description)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		params = append(params, expense.CreateParams{
			Amount:      amount,
			Category:    category,
			Description: description,
			Date:        date,
		})
	}

	if len(params) == 0 {
		return nil, ErrEmptyStatement
	}

	return params, nil
}

func (s *Service) resolveCategory(ctx context.Context, row []string, description string) (expense.Category, error) {
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		c := expense.Category(strings.TrimSpace(row[3]))
		if !c.Valid() {
			return "", fmt.Errorf("%w: %q", expense.ErrInvalidCategory, row[3])
		}

		return c, nil
	}

	return s.categorizer.Suggest(ctx, description)
}

func parseDate(field string) (time.Time, error) {
	field = strings.TrimSpace(field)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, field); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", field)
}

// parseAmount reads a statement amount, tolerating thousands separators and a
// leading currency marker.
func parseAmount(field string) (decimal.Decimal, error) {
	field = strings.TrimSpace(field)
	field = strings.TrimPrefix(field, "₹")
	field = strings.ReplaceAll(field, ",", "")

	amount, err := decimal.NewFromString(field)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unrecognised amount %q", field)
	}

	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", field)
	}

	return amount, nil
}
