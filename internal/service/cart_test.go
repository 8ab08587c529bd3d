package service_test

import (
	"context"
	"testing"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddRemove(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewCartService(db)
	ctx := context.Background()

	user := testhelpers.CreateUser(t, db, "alice")
	recipe := testhelpers.CreateRecipe(t, db, user, "Soup", nil)

	got, err := svc.Add(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Name)

	_, err = svc.Add(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyInCart)

	var n int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	require.NoError(t, svc.Remove(ctx, user.ID, recipe.ID))
	assert.ErrorIs(t, svc.Remove(ctx, user.ID, recipe.ID), service.ErrNotInCart)

	require.NoError(t, db.Model(&models.CartItem{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCartUnknownRecipe(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateUser(t, db, "alice")

	_, err := service.NewCartService(db).Add(context.Background(), user.ID, 404)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
