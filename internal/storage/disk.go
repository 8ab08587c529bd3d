package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes images under root and serves them below baseURL.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &DiskStore{root: root, baseURL: baseURL}
}

func (d *DiskStore) Root() string {
	return d.root
}

func (d *DiskStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	dir := filepath.Join(d.root, filepath.FromSlash(imagePrefix))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return d.baseURL + path.Join(imagePrefix, name), nil
}

func (d *DiskStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel := strings.TrimPrefix(url, d.baseURL)
	if rel == url || !strings.HasPrefix(rel, imagePrefix+"/") || strings.Contains(rel, "..") {
		return fmt.Errorf("image %q is not managed by this store", url)
	}
	if err := os.Remove(filepath.Join(d.root, filepath.FromSlash(rel))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
