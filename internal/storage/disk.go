package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lyricverse-api/internal/config"
	"github.com/lyricverse-api/internal/models"
	"github.com/rs/zerolog"
)

// BlobStore stores uploaded images, addressed by a namespaced path
// like "songs/{id}/{filename}", and returns a retrievable URL.
type BlobStore interface {
	Upload(ctx context.Context, path string, r io.Reader) (string, error)
	URL(path string) string
}

// DiskStore is a local-filesystem blob store rooted at the configured
// upload directory and served by the router under /uploads/.
type DiskStore struct {
	root    string
	baseURL string
	log     zerolog.Logger
}

// NewDiskStore creates the upload root and returns a disk-backed store
func NewDiskStore(cfg *config.StorageConfig, log zerolog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{
		root:    cfg.UploadDir,
		baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		log:     log.With().Str("component", "storage").Logger(),
	}, nil
}

// Upload writes the blob and returns its public URL. A partially
// written file is removed so a failed upload leaves nothing behind.
func (s *DiskStore) Upload(ctx context.Context, path string, r io.Reader) (string, error) {
	clean, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(clean), 0755); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	f, err := os.Create(clean)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(clean)
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	s.log.Info().Str("path", path).Int64("bytes", written).Msg("Blob stored")
	return s.URL(path), nil
}

// URL returns the public URL for a stored path
func (s *DiskStore) URL(path string) string {
	return s.baseURL + "/uploads/" + strings.TrimPrefix(path, "/")
}

// Root returns the filesystem root, for static serving
func (s *DiskStore) Root() string {
	return s.root
}

// resolve maps a blob path onto the root, rejecting traversal outside it
func (s *DiskStore) resolve(path string) (string, error) {
	clean := filepath.Join(s.root, filepath.Clean("/"+path))
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(clean)
	if err != nil {
		return "", err
	}
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: invalid blob path %q", models.ErrUploadFailed, path)
	}
	return clean, nil
}
