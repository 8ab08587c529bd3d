package database

import (
	"errors"
	"testing"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open(SQLiteDSN("file::memory:")))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	db := openMemory(t)

	for _, table := range []string{"users", "tags", "ingredients", "recipes", "recipe_ingredients", "recipe_tags", "favorites", "shopping_cart", "follows"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	db := openMemory(t)

	user := models.User{Email: "cook@example.com", Username: "cook", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	dup := models.User{Email: "cook@example.com", Username: "other", PasswordHash: "x"}
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestNewRedisClientWithoutConfig(t *testing.T) {
	client, err := NewRedisClient(&config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
