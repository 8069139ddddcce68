// Package imagestore stores uploaded floor-plan and picture files and
// hands back an addressable URL. Images are stored as-is, no processing.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Driver identifies a concrete storage backend.
type Driver string

const (
	// DriverFilesystem stores files under a local directory (default).
	DriverFilesystem Driver = "fs"
	// DriverS3 stores files in an S3 compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps files in memory (tests).
	DriverMemory Driver = "memory"
)

// DefaultMaxBytes caps uploads at 5 MiB unless configured otherwise.
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// Store saves image bytes under a generated opaque name and returns the
// URL the stored image is addressable at.
type Store interface {
	Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
	Driver() Driver
}

// UnsupportedTypeError reports a file extension outside the accepted set.
type UnsupportedTypeError struct {
	Ext string
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q, only .jpg, .jpeg and .png are allowed", e.Ext)
}

// TooLargeError reports an upload exceeding the configured size limit.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e TooLargeError) Error() string {
	return fmt.Sprintf("file size %d exceeds limit of %d bytes", e.Size, e.Limit)
}

// Config holds settings shared by all drivers plus per-driver blocks.
type Config struct {
	MaxBytes     int64
	Dir          string
	PublicPrefix string
	S3           S3Config
}

// S3Config configures the S3 driver.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	BaseURL   string
}

// New builds the store for the configured driver.
func New(ctx context.Context, driver Driver, cfg Config) (Store, error) {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	switch driver {
	case DriverFilesystem:
		return newFsStore(cfg)
	case DriverS3:
		return newS3Store(ctx, cfg)
	case DriverMemory:
		return NewMemoryStore(cfg.MaxBytes), nil
	default:
		return nil, fmt.Errorf("unknown imagestore driver %q", driver)
	}
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// objectName validates the upload and generates the stored name.
func objectName(filename string, size, limit int64) (name string, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct, ok := contentTypes[ext]
	if !ok {
		return "", "", UnsupportedTypeError{Ext: ext}
	}

	if size > limit {
		return "", "", TooLargeError{Size: size, Limit: limit}
	}

	return uuid.NewString() + ext, ct, nil
}
