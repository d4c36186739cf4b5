package categorize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/asahu12/finsight/internal/categorize"
	"github.com/asahu12/finsight/internal/expense"
)

func TestService_Suggest(t *testing.T) {
	tests := []struct {
		name   string
		stored expense.Category
		want   expense.Category
	}{
		{name: "RuleMatches", stored: expense.CategoryFood, want: expense.CategoryFood},
		{name: "NoRuleFallsBackToOther", stored: "", want: expense.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := categorize.NewMockRepository(ctrl)
			repo.EXPECT().
				FindCategory(gomock.Any(), "SWIGGY ORDER 1234").
				Return(tt.stored, nil)

			svc := categorize.NewService(repo)

			got, err := svc.Suggest(context.Background(), "SWIGGY ORDER 1234")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Learn_RejectsUnknownCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := categorize.NewService(categorize.NewMockRepository(ctrl))

	err := svc.Learn(context.Background(), "SWIGGY", "Takeout")
	assert.ErrorIs(t, err, expense.ErrInvalidCategory)
}
