package repositories

import (
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

// LicenseRepository handles the stored license key. The document is the
// normalized key as a bare JSON string.
type LicenseRepository struct {
	store kvstore.Store
}

func NewLicenseRepository(store kvstore.Store) *LicenseRepository {
	return &LicenseRepository{store: store}
}

// Get returns the stored key. ErrNotFound means no key is persisted.
func (r *LicenseRepository) Get() (string, error) {
	var key string
	if err := r.store.Get(KeyLicense, &key); err != nil {
		return "", err
	}
	return key, nil
}

// Save persists the normalized key.
func (r *LicenseRepository) Save(key string) error {
	return r.store.Put(KeyLicense, key)
}

// Purge removes the stored key.
func (r *LicenseRepository) Purge() error {
	return r.store.Delete(KeyLicense)
}
