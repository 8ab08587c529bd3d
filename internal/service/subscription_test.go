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

func TestSubscribeSelfIsRejected(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewSubscriptionService(db)
	user := testhelpers.CreateUser(t, db, "alice")
	other := testhelpers.CreateUser(t, db, "bob")
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, user.ID, user.ID)
	assert.ErrorIs(t, err, service.ErrSelfFollow)

	_, err = svc.Subscribe(ctx, user.ID, other.ID)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, user.ID, user.ID)
	assert.ErrorIs(t, err, service.ErrSelfFollow)

	var n int64
	require.NoError(t, db.Model(&models.Follow{}).Where("user_id = author_id").Count(&n).Error)
	assert.Zero(t, n)
}

func TestSubscribeLifecycle(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewSubscriptionService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	author, err := svc.Subscribe(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", author.Username)

	_, err = svc.Subscribe(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, service.ErrAlreadySubscribed)

	subscribed, err := svc.SubscribedTo(ctx, alice.ID, []uint{bob.ID, alice.ID})
	require.NoError(t, err)
	assert.True(t, subscribed[bob.ID])
	assert.False(t, subscribed[alice.ID])

	require.NoError(t, svc.Unsubscribe(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, svc.Unsubscribe(ctx, alice.ID, bob.ID), service.ErrNotSubscribed)

	_, err = svc.Subscribe(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAuthorsAndTheirRecipes(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewSubscriptionService(db)
	ctx := context.Background()

	reader := testhelpers.CreateUser(t, db, "reader")
	zed := testhelpers.CreateUser(t, db, "zed")
	amy := testhelpers.CreateUser(t, db, "amy")
	testhelpers.CreateUser(t, db, "ignored")
	for _, name := range []string{"one", "two", "three"} {
		testhelpers.CreateRecipe(t, db, amy, name, nil)
	}

	for _, author := range []*models.User{zed, amy} {
		_, err := svc.Subscribe(ctx, reader.ID, author.ID)
		require.NoError(t, err)
	}

	authors, total, err := svc.Authors(ctx, reader.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, authors, 2)
	assert.Equal(t, "amy", authors[0].Username)
	assert.Equal(t, "zed", authors[1].Username)

	recipes, count, err := svc.AuthorRecipes(ctx, amy.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, recipes, 2)
	assert.Equal(t, "three", recipes[0].Name)
}
