// Package storage provides a filesystem abstraction for Vendix.
//
// The register writes three kinds of files: archived receipts (text and
// PDF), catalog export snapshots, and nightly database backups. Two
// drivers are available:
//   - "local"  — local filesystem (default, the offline path)
//   - "s3"     — S3-compatible object storage for off-site backup when
//     the shop happens to have connectivity (AWS S3, MinIO, R2)
//
// Boot once in internal/server, then:
//
//	storage.Put("receipts/REC-1700000000000.pdf", data)
//	storage.Disk("s3").Put("backups/vendix.db.gz", data)
package storage

import (
	"io"
	"time"
)

// Driver is the filesystem driver interface.
type Driver interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)

	// URL returns the public URL for path (meaningful for the s3 driver).
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Files lists non-recursive file paths directly inside directory.
	Files(directory string) ([]string, error)

	// MakeDirectory creates directory (and any parents).
	MakeDirectory(path string) error
}
