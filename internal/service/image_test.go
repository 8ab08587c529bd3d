package service_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImageDataURI(t *testing.T) {
	data, ext, err := service.DecodeImageDataURI(pngDataURI())
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, pngBytes, data)

	for name, uri := range map[string]string{
		"no prefix":   base64.StdEncoding.EncodeToString(pngBytes),
		"not base64":  "data:image/png;base64,***",
		"not image":   "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello world")),
		"wrong media": "data:text/plain;base64," + base64.StdEncoding.EncodeToString(pngBytes),
		"empty":       "data:image/png;base64,",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := service.DecodeImageDataURI(uri)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestSaveDataURI(t *testing.T) {
	store := &memoryImageStore{}
	url, err := service.NewImageService(store).SaveDataURI(context.Background(), pngDataURI())
	require.NoError(t, err)
	assert.Equal(t, pngBytes, store.saved[url])
}
