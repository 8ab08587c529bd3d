package service_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), []byte("not-really-pixels")...)

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

type memoryImageStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func (m *memoryImageStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	url := fmt.Sprintf("/media/recipes/images/%d.%s", len(m.saved)+1, ext)
	m.saved[url] = data
	return url, nil
}

func (m *memoryImageStore) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, url)
	return nil
}

func favoriteCount(t *testing.T, db *gorm.DB, recipeID uint) int64 {
	t.Helper()
	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, recipeID).Error)
	return recipe.FavoriteCount
}

func favoriteRows(t *testing.T, db *gorm.DB, recipeID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("recipe_id = ?", recipeID).Count(&n).Error)
	return n
}
