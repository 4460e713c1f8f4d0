package repositories

import (
	"errors"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

// SettingsRepository handles the singleton settings document.
type SettingsRepository struct {
	store kvstore.Store
}

func NewSettingsRepository(store kvstore.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get returns the stored settings merged over the defaults: a field the
// stored document never set keeps its default value.
func (r *SettingsRepository) Get() (models.BusinessSettings, error) {
	s := models.DefaultSettings()
	if err := r.store.Get(KeySettings, &s); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return models.DefaultSettings(), nil
		}
		return models.BusinessSettings{}, err
	}
	return s, nil
}

// Save replaces the whole settings document.
func (r *SettingsRepository) Save(s models.BusinessSettings) error {
	return r.store.Put(KeySettings, s)
}
