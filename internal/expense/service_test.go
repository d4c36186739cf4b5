package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := map[string]struct {
		params  CreateParams
		wantErr error
	}{
		"negative amount": {
			params: CreateParams{
				UserID:   userID,
				Amount:   decimal.NewFromInt(-1),
				Category: CategoryFood,
			},
			wantErr: ErrNegativeAmount,
		},
		"unknown category": {
			params: CreateParams{
				UserID:   userID,
				Amount:   decimal.NewFromInt(100),
				Category: Category("Snacks"),
			},
			wantErr: ErrInvalidCategory,
		},
		"empty category": {
			params: CreateParams{
				UserID: userID,
				Amount: decimal.NewFromInt(100),
			},
			wantErr: ErrInvalidCategory,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			svc := NewService(NewMockRepository(ctrl))

			_, err := svc.Create(context.Background(), tc.params)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestService_Create_Defaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		Return(nil)

	e, err := svc.Create(context.Background(), CreateParams{
		UserID:   uuid.New(),
		Amount:   decimal.NewFromInt(250),
		Category: CategoryFood,
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultDescription, e.Description)
	assert.False(t, e.Date.IsZero())
}

func TestService_Create_ZeroAmountAllowed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		Return(nil)

	e, err := svc.Create(context.Background(), CreateParams{
		UserID:      uuid.New(),
		Amount:      decimal.Zero,
		Category:    CategoryOther,
		Description: "freebie",
		Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, e.Amount.IsZero())
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	existing := &Expense{
		ID:          id,
		UserID:      userID,
		Amount:      decimal.NewFromInt(100),
		Category:    CategoryFood,
		Description: "lunch",
		Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	repo.EXPECT().
		GetExpense(gomock.Any(), userID, id).
		Return(existing, nil)

	repo.EXPECT().
		UpdateExpense(gomock.Any(), existing).
		Return(nil)

	newAmount := decimal.NewFromInt(150)
	e, err := svc.Update(context.Background(), userID, id, UpdateParams{Amount: &newAmount})
	require.NoError(t, err)

	assert.True(t, e.Amount.Equal(newAmount))
	assert.Equal(t, CategoryFood, e.Category, "untouched fields survive a partial update")
	assert.Equal(t, "lunch", e.Description)
}

func TestService_Update_Invalid(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		GetExpense(gomock.Any(), userID, id).
		Return(&Expense{ID: id, UserID: userID, Amount: decimal.NewFromInt(100), Category: CategoryFood}, nil).
		Times(2)

	negative := decimal.NewFromInt(-5)
	_, err := svc.Update(context.Background(), userID, id, UpdateParams{Amount: &negative})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	bogus := Category("Snacks")
	_, err = svc.Update(context.Background(), userID, id, UpdateParams{Category: &bogus})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestService_Update_NotFound(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		GetExpense(gomock.Any(), userID, id).
		Return(nil, ErrNotFound)

	_, err := svc.Update(context.Background(), userID, id, UpdateParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ImportBatch_SkipsDuplicates(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	// One of the statement rows already exists in the ledger, stored with a
	// different decimal rendering of the same amount.
	repo.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter ListFilter) ([]*Expense, error) {
			require.NotNil(t, filter.StartDate)
			require.NotNil(t, filter.EndDate)
			assert.Equal(t, day, *filter.StartDate)
			assert.Equal(t, day.AddDate(0, 0, 1), *filter.EndDate)

			return []*Expense{{
				ID:          uuid.New(),
				UserID:      userID,
				Amount:      decimal.RequireFromString("1250.50"),
				Category:    CategoryFood,
				Description: "SWIGGY ORDER 8812",
				Date:        day,
			}}, nil
		})

	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, []CreateParams{
		{
			Amount:      decimal.RequireFromString("1250.5"),
			Category:    CategoryFood,
			Description: "SWIGGY ORDER 8812",
			Date:        day,
		},
		{
			Amount:      decimal.NewFromInt(300),
			Category:    CategoryTransportation,
			Description: "METRO CARD RECHARGE",
			Date:        day.AddDate(0, 0, 1),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Imported, 1)
	assert.Equal(t, "METRO CARD RECHARGE", result.Imported[0].Description)
	assert.Equal(t, userID, result.Imported[0].UserID)
}

func TestService_ImportBatch_ReuploadIsNoOp(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rows := []CreateParams{
		{Amount: decimal.NewFromInt(150), Category: CategoryFood, Description: "CHAI POINT", Date: day},
		{Amount: decimal.NewFromInt(99), Category: CategoryEntertainment, Description: "HOTSTAR", Date: day},
	}

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	var stored []*Expense

	repo.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ ListFilter) ([]*Expense, error) {
			return stored, nil
		}).
		Times(2)

	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *Expense) error {
			e.ID = uuid.New()
			stored = append(stored, e)
			return nil
		}).
		Times(2)

	first, err := svc.ImportBatch(context.Background(), userID, rows)
	require.NoError(t, err)
	assert.Len(t, first.Imported, 2)
	assert.Zero(t, first.Skipped)

	second, err := svc.ImportBatch(context.Background(), userID, rows)
	require.NoError(t, err)
	assert.Empty(t, second.Imported)
	assert.Equal(t, 2, second.Skipped)
}

func TestService_ImportBatch_DedupesWithinStatement(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		Return(nil)

	row := CreateParams{Amount: decimal.NewFromInt(150), Category: CategoryFood, Description: "CHAI POINT", Date: day}

	result, err := svc.ImportBatch(context.Background(), userID, []CreateParams{row, row})
	require.NoError(t, err)

	assert.Len(t, result.Imported, 1)
	assert.Equal(t, 1, result.Skipped)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := NewService(NewMockRepository(ctrl))

	result, err := svc.ImportBatch(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Zero(t, result.Skipped)
}

func TestService_Delete_PropagatesError(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		DeleteExpense(gomock.Any(), userID, id).
		Return(errors.New("boom"))

	err := svc.Delete(context.Background(), userID, id)
	assert.Error(t, err)
}
