package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// insertBeforeCreate writes a copy of the next row created in table just ahead
// of gorm's own insert, so the existence check has already passed and only
// the unique index can reject the write.
func insertBeforeCreate(t *testing.T, db *gorm.DB, table, columns string) {
	t.Helper()
	fired := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:concurrent_"+table, func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		var userID, otherID uint
		switch row := tx.Statement.Dest.(type) {
		case *models.Favorite:
			userID, otherID = row.UserID, row.RecipeID
		case *models.CartItem:
			userID, otherID = row.UserID, row.RecipeID
		case *models.Follow:
			userID, otherID = row.UserID, row.AuthorID
		default:
			_ = tx.AddError(fmt.Errorf("unexpected row %T", row))
			return
		}
		query := fmt.Sprintf("INSERT INTO %s (%s, created_at) VALUES (?, ?, ?)", table, columns)
		if err := tx.Session(&gorm.Session{NewDB: true}).Exec(query, userID, otherID, time.Now()).Error; err != nil {
			_ = tx.AddError(err)
		}
	}))
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestFavoriteUniqueIndexRejection(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	author := testhelpers.CreateUser(t, db, "author")
	fan := testhelpers.CreateUser(t, db, "fan")
	recipe := testhelpers.CreateRecipe(t, db, author, "Soup", nil)
	insertBeforeCreate(t, db, "favorites", "user_id, recipe_id")

	_, err := service.NewFavoriteService(db).Add(context.Background(), fan.ID, recipe.ID)

	require.ErrorIs(t, err, service.ErrAlreadyFavorited)
	assert.Zero(t, favoriteRows(t, db, recipe.ID))
	assert.Zero(t, favoriteCount(t, db, recipe.ID))
}

func TestCartUniqueIndexRejection(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	author := testhelpers.CreateUser(t, db, "author")
	buyer := testhelpers.CreateUser(t, db, "buyer")
	recipe := testhelpers.CreateRecipe(t, db, author, "Soup", nil)
	insertBeforeCreate(t, db, "shopping_cart", "user_id, recipe_id")

	_, err := service.NewCartService(db).Add(context.Background(), buyer.ID, recipe.ID)

	require.ErrorIs(t, err, service.ErrAlreadyInCart)
	assert.Zero(t, countRows(t, db, &models.CartItem{}))
}

func TestSubscriptionUniqueIndexRejection(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	author := testhelpers.CreateUser(t, db, "author")
	reader := testhelpers.CreateUser(t, db, "reader")
	insertBeforeCreate(t, db, "follows", "user_id, author_id")

	_, err := service.NewSubscriptionService(db).Subscribe(context.Background(), reader.ID, author.ID)

	require.ErrorIs(t, err, service.ErrAlreadySubscribed)
	assert.Zero(t, countRows(t, db, &models.Follow{}))
}
