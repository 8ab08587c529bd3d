package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/seed"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
)

func TestRunTagsOnly(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	res, err := seed.Run(context.Background(), db, seed.Options{})
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Tags: 3}, res)

	var tags []models.Tag
	require.NoError(t, db.Order("name").Find(&tags).Error)
	require.Len(t, tags, 3)
	assert.Equal(t, "breakfast", tags[0].Slug)
	assert.Equal(t, "#E26C2D", tags[0].Color)
}

func TestRunIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()

	first, err := seed.Run(ctx, db, seed.Options{Demo: true})
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Tags: 3, Users: 3, Ingredients: 5}, first)

	second, err := seed.Run(ctx, db, seed.Options{Demo: true})
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, second)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(3), users)
}
