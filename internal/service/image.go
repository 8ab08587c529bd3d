package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/pageza/foodgram/backend/internal/logging"
	"github.com/pageza/foodgram/backend/internal/storage"
)

const maxImageBytes = 10 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ImageService turns the base64 data URIs clients send into stored images.
type ImageService struct {
	store storage.ImageStore
}

func NewImageService(store storage.ImageStore) *ImageService {
	return &ImageService{store: store}
}

// SaveDataURI decodes a "data:image/<type>;base64,<payload>" string, checks
// that the payload really is an image and returns the stored image URL.
func (s *ImageService) SaveDataURI(ctx context.Context, uri string) (string, error) {
	data, ext, err := DecodeImageDataURI(uri)
	if err != nil {
		return "", err
	}
	url, err := s.store.Save(ctx, data, ext)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return url, nil
}

// Discard removes an image saved for a write that did not commit. Failures
// are logged, the caller already has an error to report.
func (s *ImageService) Discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.store.Delete(ctx, url); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("image", url).Msg("failed to remove orphaned image")
	}
}

// DecodeImageDataURI returns the decoded bytes and a file extension.
func DecodeImageDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, "", NewValidationError("image", "expected a base64 encoded data:image URI")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxImageBytes {
		return nil, "", NewValidationError("image", "image is too large")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, "", NewValidationError("image", "image payload is not valid base64")
	}
	ext, ok := allowedImageTypes[http.DetectContentType(data)]
	if !ok {
		return nil, "", NewValidationError("image", "uploaded file is not a supported image")
	}
	return data, ext, nil
}
