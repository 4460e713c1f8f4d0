package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

func newSalesLog(t *testing.T) (*SalesService, *repositories.SaleRepository) {
	t.Helper()
	repo := repositories.NewSaleRepository(kvstore.NewMemory())
	for _, s := range []models.Sale{
		{ID: "REC-100", Date: "2026-08-28T09:00:00-05:00", Total: 500, Currency: models.HTG},
		{ID: "REC-200", Date: "2026-08-28T15:30:00-05:00", Total: 12.5, Currency: models.USD},
		{ID: "REC-300", Date: "2026-08-29T10:00:00-05:00", Total: 910, Currency: models.HTG},
	} {
		require.NoError(t, repo.Prepend(s))
	}
	return NewSalesService(repo), repo
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newSalesLog(t)

	sales, err := svc.List("", "")
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, "REC-300", sales[0].ID)
	assert.Equal(t, "REC-100", sales[2].ID)
}

func TestListFilters(t *testing.T) {
	svc, _ := newSalesLog(t)

	byID, err := svc.List("rec-2", "")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "REC-200", byID[0].ID)

	byDate, err := svc.List("", "2026-08-28")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	both, err := svc.List("REC-1", "2026-08-28")
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "REC-100", both[0].ID)
}

func TestFindSale(t *testing.T) {
	svc, _ := newSalesLog(t)

	sale, err := svc.Find("REC-200")
	require.NoError(t, err)
	assert.Equal(t, models.USD, sale.Currency)

	_, err = svc.Find("REC-404")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestStatsPerCurrencyTotals(t *testing.T) {
	svc, _ := newSalesLog(t)

	stats, err := svc.Stats("", "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 1410.0, stats.Totals[models.HTG])
	assert.Equal(t, 12.5, stats.Totals[models.USD])

	filtered, err := svc.Stats("", "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 2, filtered.Count)
	assert.Equal(t, 500.0, filtered.Totals[models.HTG])
}
