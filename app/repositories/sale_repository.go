package repositories

import (
	"errors"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

// SaleRepository handles the sales document. Records are append-only
// and kept newest first.
type SaleRepository struct {
	store kvstore.Store
}

func NewSaleRepository(store kvstore.Store) *SaleRepository {
	return &SaleRepository{store: store}
}

// All returns the full sale log, newest first.
func (r *SaleRepository) All() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.store.Get(KeySales, &sales); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []models.Sale{}, nil
		}
		return nil, err
	}
	return sales, nil
}

// Prepend inserts a new sale at the head of the log and saves it whole.
func (r *SaleRepository) Prepend(sale models.Sale) error {
	sales, err := r.All()
	if err != nil {
		return err
	}
	sales = append([]models.Sale{sale}, sales...)
	return r.store.Put(KeySales, sales)
}

// Find returns the sale with the given id.
func (r *SaleRepository) Find(id string) (models.Sale, error) {
	sales, err := r.All()
	if err != nil {
		return models.Sale{}, err
	}
	for _, s := range sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, kvstore.ErrNotFound
}
