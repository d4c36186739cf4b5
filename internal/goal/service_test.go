package goal_test

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

	"github.com/asahu12/finsight/internal/goal"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    goal.CreateParams
		setupMock func(m *goal.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: goal.CreateParams{
				UserID:       uuid.New(),
				Title:        "New Laptop",
				TargetAmount: decimal.NewFromInt(80000),
				Deadline:     time.Now().AddDate(0, 6, 0),
			},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *goal.Goal) error {
						g.ID = uuid.New()
						g.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "TargetBelowOne",
			params: goal.CreateParams{
				UserID:       uuid.New(),
				Title:        "Nothing",
				TargetAmount: decimal.NewFromFloat(0.5),
				Deadline:     time.Now().AddDate(0, 1, 0),
			},
			wantErr: goal.ErrInvalidTarget,
		},
		{
			name: "MissingTitle",
			params: goal.CreateParams{
				UserID:       uuid.New(),
				TargetAmount: decimal.NewFromInt(1000),
				Deadline:     time.Now().AddDate(0, 1, 0),
			},
			wantErr: goal.ErrMissingTitle,
		},
		{
			name: "BlankTitle",
			params: goal.CreateParams{
				UserID:       uuid.New(),
				Title:        "   ",
				TargetAmount: decimal.NewFromInt(1000),
				Deadline:     time.Now().AddDate(0, 1, 0),
			},
			wantErr: goal.ErrMissingTitle,
		},
		{
			name: "MissingDeadline",
			params: goal.CreateParams{
				UserID:       uuid.New(),
				Title:        "New Laptop",
				TargetAmount: decimal.NewFromInt(1000),
			},
			wantErr: goal.ErrMissingDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := goal.NewService(repo, goal.NewMockLedger(ctrl))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	userID := uuid.New()
	goalID := uuid.New()

	t.Run("DetachesExpensesBeforeDeleting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		ledger := goal.NewMockLedger(ctrl)

		repo.EXPECT().
			GetGoal(gomock.Any(), userID, goalID).
			Return(&goal.Goal{ID: goalID, UserID: userID}, nil)

		detach := ledger.EXPECT().
			DetachGoal(gomock.Any(), userID, goalID).
			Return(nil)

		repo.EXPECT().
			DeleteGoal(gomock.Any(), userID, goalID).
			After(detach).
			Return(nil)

		svc := goal.NewService(repo, ledger)
		require.NoError(t, svc.Delete(context.Background(), userID, goalID))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		ledger := goal.NewMockLedger(ctrl)

		repo.EXPECT().
			GetGoal(gomock.Any(), userID, goalID).
			Return(nil, goal.ErrNotFound)

		svc := goal.NewService(repo, ledger)
		assert.ErrorIs(t, svc.Delete(context.Background(), userID, goalID), goal.ErrNotFound)
	})

	t.Run("DetachFailureSkipsDelete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		ledger := goal.NewMockLedger(ctrl)

		repo.EXPECT().
			GetGoal(gomock.Any(), userID, goalID).
			Return(&goal.Goal{ID: goalID, UserID: userID}, nil)

		ledger.EXPECT().
			DetachGoal(gomock.Any(), userID, goalID).
			Return(errors.New("db error"))

		svc := goal.NewService(repo, ledger)
		assert.Error(t, svc.Delete(context.Background(), userID, goalID))
	})
}
