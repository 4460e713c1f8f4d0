package services

import (
	"strings"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
)

// SalesStats summarises a filtered slice of the sale log.
type SalesStats struct {
	Count  int                         `json:"count"`
	Totals map[models.Currency]float64 `json:"totals"`
}

// SalesService reads the immutable sale log.
type SalesService struct {
	repo *repositories.SaleRepository
}

func NewSalesService(repo *repositories.SaleRepository) *SalesService {
	return &SalesService{repo: repo}
}

// List returns sales newest first, filtered by receipt-id substring
// and/or date prefix (YYYY-MM-DD). Empty filters match everything.
func (s *SalesService) List(idQuery, datePrefix string) ([]models.Sale, error) {
	sales, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	if idQuery == "" && datePrefix == "" {
		return sales, nil
	}

	idQ := strings.ToLower(idQuery)
	out := []models.Sale{}
	for _, sale := range sales {
		if idQ != "" && !strings.Contains(strings.ToLower(sale.ID), idQ) {
			continue
		}
		if datePrefix != "" && !strings.HasPrefix(sale.Date, datePrefix) {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

// Find returns one sale by receipt id.
func (s *SalesService) Find(id string) (models.Sale, error) {
	return s.repo.Find(id)
}

// Stats returns the count and per-currency totals over the same
// filtered set List would return.
func (s *SalesService) Stats(idQuery, datePrefix string) (SalesStats, error) {
	sales, err := s.List(idQuery, datePrefix)
	if err != nil {
		return SalesStats{}, err
	}
	stats := SalesStats{
		Count: len(sales),
		Totals: map[models.Currency]float64{
			models.USD: 0,
			models.HTG: 0,
		},
	}
	for _, sale := range sales {
		stats.Totals[sale.Currency] += sale.Total
	}
	return stats, nil
}
