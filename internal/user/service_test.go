package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestService_Register(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "asha@example.com").
		Return(nil, ErrNotFound)

	repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *User) error {
			assert.Equal(t, "asha@example.com", u.Email, "email is lowercased and trimmed")
			assert.NotEqual(t, "s3cret", u.PasswordHash, "password is never stored in the clear")
			return nil
		})

	u, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Asha",
		Email:    "  Asha@Example.com ",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestService_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "asha@example.com").
		Return(&User{ID: uuid.New(), Email: "asha@example.com"}, nil)

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "asha@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Authenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &User{ID: uuid.New(), Email: "asha@example.com", PasswordHash: string(hash)}

	tests := map[string]struct {
		email    string
		password string
		repoUser *User
		repoErr  error
		wantErr  error
	}{
		"valid credentials": {
			email:    "asha@example.com",
			password: "s3cret",
			repoUser: stored,
		},
		"wrong password": {
			email:    "asha@example.com",
			password: "wrong",
			repoUser: stored,
			wantErr:  ErrInvalidCredentials,
		},
		"unknown email": {
			email:    "nobody@example.com",
			password: "s3cret",
			repoErr:  ErrNotFound,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := NewMockRepository(ctrl)
			svc := NewService(repo)

			repo.EXPECT().
				GetUserByEmail(gomock.Any(), tc.email).
				Return(tc.repoUser, tc.repoErr)

			u, err := svc.Authenticate(context.Background(), tc.email, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, u.ID)
		})
	}
}

func TestService_SetMonthlyBudget(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		UpdateBudget(gomock.Any(), id, decimal.NewFromInt(20000)).
		Return(nil)

	require.NoError(t, svc.SetMonthlyBudget(context.Background(), id, decimal.NewFromInt(20000)))

	err := svc.SetMonthlyBudget(context.Background(), id, decimal.NewFromInt(-1))
	assert.Error(t, err)
}
