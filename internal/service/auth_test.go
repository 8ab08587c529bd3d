package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *mockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestLoginAndValidate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour, nil)
	user := testhelpers.CreateUser(t, db, "ada")
	ctx := context.Background()

	token, err := auth.Login(ctx, "ADA@example.com", testhelpers.TestPassword)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEmpty(t, claims.ID)

	_, err = auth.Login(ctx, user.Email, "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = auth.Login(ctx, "ghost@example.com", "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	issuer := service.NewAuthService(db, "one-secret", time.Hour, nil)
	verifier := service.NewAuthService(db, "other-secret", time.Hour, nil)

	token, err := issuer.GenerateToken(7)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	auth := service.NewAuthService(db, "secret", -time.Minute, nil)

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)

	_, err = auth.ValidateToken(context.Background(), token)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "got %v", err)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	store := &mockTokenStore{}
	auth := service.NewAuthService(db, "secret", time.Hour, store)
	ctx := context.Background()

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)

	store.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)

	store.On("Revoke", mock.Anything, claims.ID, claims.ExpiresAt.Time).Return(nil).Once()
	require.NoError(t, auth.Logout(ctx, claims))

	store.On("IsRevoked", mock.Anything, claims.ID).Return(true, nil).Once()
	_, err = auth.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrTokenRevoked)

	store.AssertExpectations(t)
}

func TestLogoutWithoutStore(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	auth := service.NewAuthService(db, "secret", time.Hour, nil)
	ctx := context.Background()

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)
	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, claims))
	_, err = auth.ValidateToken(ctx, token)
	assert.NoError(t, err)
}
