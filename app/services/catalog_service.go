package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/event"
	"github.com/vendixlabs/vendix/pkg/validate"
)

// ErrProductNotFound is returned when an id matches nothing in the catalog.
var ErrProductNotFound = fmt.Errorf("catalog: product not found")

// ValidationError carries per-field messages from the validate package.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog: validation failed on %d field(s)", len(e.Fields))
}

// CatalogService manages the product catalog. Every mutation saves the
// whole products document back through the repository.
type CatalogService struct {
	repo *repositories.CatalogRepository
}

func NewCatalogService(repo *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns the catalog, optionally filtered by query. The query
// matches case-insensitive name substrings or barcode substrings.
func (s *CatalogService) List(query string) ([]models.Product, error) {
	products, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}
	q := strings.ToLower(query)
	out := []models.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(p.Barcode, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Find returns a single product by id.
func (s *CatalogService) Find(id string) (models.Product, error) {
	products, err := s.repo.All()
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Create validates and appends a product. An empty id is assigned from
// the creation timestamp.
func (s *CatalogService) Create(p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = fmt.Sprintf("P-%d", time.Now().UnixMilli())
	}
	if errs := validate.Struct(p); validate.HasErrors(errs) {
		return models.Product{}, &ValidationError{Fields: errs}
	}

	products, err := s.repo.All()
	if err != nil {
		return models.Product{}, err
	}
	products = append(products, p)
	if err := s.repo.SaveAll(products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update validates and replaces the product with p.ID.
func (s *CatalogService) Update(p models.Product) (models.Product, error) {
	if errs := validate.Struct(p); validate.HasErrors(errs) {
		return models.Product{}, &ValidationError{Fields: errs}
	}

	products, err := s.repo.All()
	if err != nil {
		return models.Product{}, err
	}
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			return p, s.repo.SaveAll(products)
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes the product with the given id.
func (s *CatalogService) Delete(id string) error {
	products, err := s.repo.All()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return s.repo.SaveAll(products)
		}
	}
	return ErrProductNotFound
}

// Export renders the catalog as pretty-printed JSON. Importing an
// unmodified export restores the catalog byte for byte.
func (s *CatalogService) Export() ([]byte, error) {
	products, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(products, "", "  ")
}

// Import replaces the whole catalog from a JSON payload. The only shape
// check is that the payload is a JSON array.
func (s *CatalogService) Import(payload []byte) (int, error) {
	var products []models.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return 0, fmt.Errorf("catalog: import payload is not a product array: %w", err)
	}
	// Unmarshal accepts a bare `null` and leaves the slice nil; only a
	// real array may replace the catalog.
	if products == nil {
		return 0, fmt.Errorf("catalog: import payload is not a product array")
	}
	if err := s.repo.SaveAll(products); err != nil {
		return 0, err
	}
	event.Fire("catalog.imported", len(products))
	return len(products), nil
}
