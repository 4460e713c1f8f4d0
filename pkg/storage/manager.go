package storage

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vendixlabs/vendix/config"
	"github.com/vendixlabs/vendix/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	drivers     = map[string]Driver{}
	defaultName string
)

// Connect boots the storage manager.
// Call once at application startup (internal/server does this).
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultName = config.Get("STORAGE_DISK", "local")

	// Always boot the local driver. Receipts must archive with no network.
	drivers["local"] = newLocalDriver()

	// Boot the s3 driver only if a bucket is configured.
	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Driver()
		if err != nil {
			logger.Warn("storage: s3 driver disabled", "error", err)
		} else {
			drivers["s3"] = d
		}
	}
}

// Disk returns the named driver ("local" or "s3").
//
//	storage.Disk("s3").Put("backups/vendix.db.gz", data)
func Disk(name string) Driver {
	managerMu.RLock()
	d, ok := drivers[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk lets you plug in a custom Driver at boot time.
func RegisterDisk(name string, d Driver) {
	managerMu.Lock()
	drivers[name] = d
	managerMu.Unlock()
}

// ─── Default driver helpers ───────────────────────────────────────────────────
// These proxy to the default driver (STORAGE_DISK env var, default "local").

func defaultD() Driver {
	managerMu.RLock()
	name := defaultName
	managerMu.RUnlock()
	return Disk(name)
}

// Put writes content to path on the default driver.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the default driver.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the default driver.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// GetStream returns a ReadCloser from the default driver.
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }

// Exists reports whether path exists on the default driver.
func Exists(path string) bool { return defaultD().Exists(path) }

// Delete removes path from the default driver.
func Delete(path string) error { return defaultD().Delete(path) }

// URL returns the public URL for path on the default driver.
func URL(path string) string { return defaultD().URL(path) }

// Size returns the file size in bytes on the default driver.
func Size(path string) (int64, error) { return defaultD().Size(path) }

// LastModified returns last-modified time on the default driver.
func LastModified(path string) (time.Time, error) { return defaultD().LastModified(path) }

// Files lists files in directory (non-recursive) on the default driver.
func Files(directory string) ([]string, error) { return defaultD().Files(directory) }

// MakeDirectory creates directory on the default driver.
func MakeDirectory(path string) error { return defaultD().MakeDirectory(path) }
