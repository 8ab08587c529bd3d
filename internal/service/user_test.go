package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/pageza/foodgram/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:     username + "@Example.com",
		Username:  username,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "correct-horse",
	}
}

func TestRegisterUser(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewUserService(db)

	user, err := svc.Register(context.Background(), registerRequest("ada"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestRegisterDuplicateIsKeyedByField(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewUserService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ada"))
	require.NoError(t, err)

	req := registerRequest("ada")
	req.Email = "other@example.com"
	_, err = svc.Register(ctx, req)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.NotContains(t, verr.Fields, "email")
}

func TestRegisterReservedUsername(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	_, err := service.NewUserService(db).Register(context.Background(), registerRequest("me"))
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestSetPassword(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	users := service.NewUserService(db)
	auth := service.NewAuthService(db, "secret", time.Hour, nil)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "ada")

	err := users.SetPassword(ctx, user.ID, "wrong", "new-password-1")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Wrong password"}, verr.Fields["current_password"])

	require.NoError(t, users.SetPassword(ctx, user.ID, testhelpers.TestPassword, "new-password-1"))

	_, err = auth.Login(ctx, user.Email, testhelpers.TestPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = auth.Login(ctx, user.Email, "new-password-1")
	assert.NoError(t, err)
}

func TestListUsers(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	for _, name := range []string{"a", "b", "c"} {
		testhelpers.CreateUser(t, db, name)
	}

	users, total, err := service.NewUserService(db).List(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 1)
	assert.Equal(t, "b", users[0].Username)

	_, err = service.NewUserService(db).Get(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
