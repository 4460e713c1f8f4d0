// Package repositories maps the register's documents onto the key-value
// store. Each repository owns one document key and always reads and
// writes the whole value.
package repositories

import (
	"errors"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

// Document keys. One JSON document per key, written whole.
const (
	KeyUser     = "user"
	KeySession  = "session"
	KeyProducts = "products"
	KeySales    = "sales"
	KeySettings = "settings"
	KeyLicense  = "license"
)

// CatalogRepository handles the products document.
type CatalogRepository struct {
	store kvstore.Store
}

func NewCatalogRepository(store kvstore.Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

// All returns every product. A missing document is an empty catalog.
func (r *CatalogRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.store.Get(KeyProducts, &products); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []models.Product{}, nil
		}
		return nil, err
	}
	return products, nil
}

// SaveAll replaces the whole products document.
func (r *CatalogRepository) SaveAll(products []models.Product) error {
	return r.store.Put(KeyProducts, products)
}
