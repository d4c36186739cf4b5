package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/asahu12/finsight/internal/expense"
	"github.com/asahu12/finsight/internal/importer"
)

func TestService_Parse(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	categorizer := importer.NewMockCategorizer(ctrl)
	svc := importer.NewService(categorizer)

	categorizer.EXPECT().
		Suggest(gomock.Any(), "SWIGGY ORDER 8812").
		Return(expense.CategoryFood, nil)

	statement := strings.Join([]string{
		"Date,Amount,Description,Category",
		"2026-03-02,\"1,250.50\",SWIGGY ORDER 8812,",
		"03/03/2026,₹300,METRO CARD RECHARGE,Transportation",
		"04-03-2026,99,HOTSTAR,Entertainment",
	}, "\n")

	params, err := svc.Parse(context.Background(), strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.True(t, params[0].Amount.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, expense.CategoryFood, params[0].Category)
	assert.Equal(t, "SWIGGY ORDER 8812", params[0].Description)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.True(t, params[1].Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, expense.CategoryTransportation, params[1].Category)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), params[1].Date)

	assert.Equal(t, expense.CategoryEntertainment, params[2].Category)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), params[2].Date)
}

func TestService_Parse_NoHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	categorizer := importer.NewMockCategorizer(ctrl)
	svc := importer.NewService(categorizer)

	params, err := svc.Parse(context.Background(), strings.NewReader("2026-03-02,150,CHAI POINT,Food\n"))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, expense.CategoryFood, params[0].Category)
}

func TestService_Parse_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		statement string
		wantErr   string
	}{
		"empty statement": {
			statement: "",
			wantErr:   "statement has no rows",
		},
		"header only": {
			statement: "Date,Amount,Description\n",
			wantErr:   "statement has no rows",
		},
		"too few columns": {
			statement: "2026-03-02,150\n",
			wantErr:   "expected at least 3 columns",
		},
		"bad date": {
			statement: "2026-03-02,150,CHAI POINT,Food\nsoon,150,CHAI POINT,Food\n",
			wantErr:   `unrecognised date "soon"`,
		},
		"bad amount": {
			statement: "2026-03-02,lots,CHAI POINT,Food\n",
			wantErr:   `unrecognised amount "lots"`,
		},
		"negative amount": {
			statement: "2026-03-02,-150,CHAI POINT,Food\n",
			wantErr:   "negative amount",
		},
		"unknown category": {
			statement: "2026-03-02,150,CHAI POINT,Snacks\n",
			wantErr:   "unknown category",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			svc := importer.NewService(importer.NewMockCategorizer(ctrl))

			_, err := svc.Parse(context.Background(), strings.NewReader(tc.statement))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
