package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/config"
)

// ObjectClient is the part of the S3 client the store needs.
type ObjectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Store struct {
	client ObjectClient
	cfg    *config.S3Config
}

func NewS3Store(cfg *config.S3Config) *S3Store {
	return &S3Store{client: cfg.Client, cfg: cfg}
}

// NewS3StoreWithClient is used when the client is not the one in cfg.
func NewS3StoreWithClient(client ObjectClient, cfg *config.S3Config) *S3Store {
	return &S3Store{client: client, cfg: cfg}
}

// Save uploads image data to S3 and returns the public URL
func (s *S3Store) Save(ctx context.Context, data []byte, ext string) (string, error) {
	key := fmt.Sprintf("%s/%s.%s", imagePrefix, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(ext)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.cfg.ObjectURL(key), nil
}

// Delete removes the object behind a URL returned by Save.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.cfg.ObjectURL(""))
	if key == url || !strings.HasPrefix(key, imagePrefix+"/") {
		return fmt.Errorf("image %q is not in bucket %s", url, s.cfg.BucketName)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
