// Package storage persists uploaded recipe images and returns their public URLs.
package storage

import (
	"context"
	"fmt"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/logging"
)

// ImageStore saves an image and returns the URL it is served from. Delete
// takes a URL previously returned by Save; deleting a missing image is not an error.
type ImageStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
	Delete(ctx context.Context, url string) error
}

const imagePrefix = "recipes/images"

// New picks the S3 store when a bucket is configured and the local media
// directory otherwise.
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3 image store: %w", err)
		}
		logging.Info().Str("bucket", s3cfg.BucketName).Msg("storing recipe images in S3")
		return NewS3Store(s3cfg), nil
	}
	logging.Info().Str("dir", cfg.MediaRoot).Msg("storing recipe images on local disk")
	return NewDiskStore(cfg.MediaRoot, cfg.MediaURL), nil
}

func contentType(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
