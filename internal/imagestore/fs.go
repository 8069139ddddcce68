package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// fsStore writes uploads to a local directory. Files are served back by
// the HTTP layer's static file server under the public prefix.
type fsStore struct {
	dir          string
	publicPrefix string
	maxBytes     int64
}

func newFsStore(cfg Config) (*fsStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("imagestore: upload directory not configured")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("imagestore: create upload dir: %w", err)
	}

	prefix := cfg.PublicPrefix
	if prefix == "" {
		prefix = "/uploads"
	}

	return &fsStore{
		dir:          cfg.Dir,
		publicPrefix: strings.TrimSuffix(prefix, "/"),
		maxBytes:     cfg.MaxBytes,
	}, nil
}

func (s *fsStore) Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	name, _, err := objectName(filename, size, s.maxBytes)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("imagestore: create file: %w", err)
	}
	defer dst.Close()

	// LimitReader backstops callers that report a wrong size
	if _, err := io.Copy(dst, io.LimitReader(r, s.maxBytes+1)); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("imagestore: write file: %w", err)
	}

	return s.publicPrefix + "/" + name, nil
}

func (s *fsStore) Remove(ctx context.Context, name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

func (s *fsStore) Driver() Driver {
	return DriverFilesystem
}
