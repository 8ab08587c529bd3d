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

func TestEnsureTagIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTagService(db)
	ctx := context.Background()

	created, err := svc.Ensure(ctx, &models.Tag{Name: "Late Breakfast", Color: "#E26C2D"})
	require.NoError(t, err)
	assert.True(t, created)

	again := &models.Tag{Name: "Late Breakfast", Color: "#000000"}
	created, err = svc.Ensure(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "late-breakfast", again.Slug)
	assert.Equal(t, "#E26C2D", again.Color)

	tags, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestEnsureTagValidatesColor(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	_, err := service.NewTagService(db).Ensure(context.Background(), &models.Tag{Name: "lunch", Color: "green"})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "color")
}

func TestTagsOrderedByName(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateTag(t, db, "lunch", "#49B64E")
	testhelpers.CreateTag(t, db, "breakfast", "#E26C2D")
	svc := service.NewTagService(db)

	tags, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)

	_, err = svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
