// Package storage provides a small filesystem abstraction used to archive
// generated receipts.
//
// Two drivers are available:
//   - "local"  local filesystem (default)
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.FromConfig(ctx)
//	err = disk.Put(ctx, "receipts/venta-4.pdf", pdf)
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/shashiranjanraj/ventas/config"
)

// ErrNotFound is returned by Get when the path does not exist.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to p, creating parent directories as needed.
	Put(ctx context.Context, p string, content []byte) error

	// Get returns the full content of the file at p.
	Get(ctx context.Context, p string) ([]byte, error)

	// Exists reports whether a file exists at p.
	Exists(ctx context.Context, p string) (bool, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, p string) error

	// URL returns the public URL for p.
	URL(p string) string
}

// FromConfig builds the disk named by STORAGE_DISK.
func FromConfig(ctx context.Context) (Disk, error) {
	switch name := config.StorageDefault(); name {
	case "local":
		return NewLocal(config.StorageLocalRoot(), config.StorageURL())
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
	default:
		return nil, fmt.Errorf("storage: unknown disk %q", name)
	}
}

// clean normalises p to a relative slash path and rejects escapes.
func clean(p string) (string, error) {
	c := path.Clean("/" + strings.TrimSpace(p))
	c = strings.TrimPrefix(c, "/")
	if c == "" || c == "." {
		return "", fmt.Errorf("storage: empty path")
	}
	return c, nil
}
