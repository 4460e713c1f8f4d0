package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

func newCatalog(t *testing.T) *CatalogService {
	t.Helper()
	return NewCatalogService(repositories.NewCatalogRepository(kvstore.NewMemory()))
}

func TestCreateAssignsID(t *testing.T) {
	svc := newCatalog(t)

	created, err := svc.Create(models.Product{Name: "Cola", Price: 100, Stock: 5})
	require.NoError(t, err)
	assert.Contains(t, created.ID, "P-")

	products, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)
}

func TestCreateKeepsProvidedID(t *testing.T) {
	svc := newCatalog(t)

	created, err := svc.Create(models.Product{ID: "P-42", Name: "Rice", Price: 650})
	require.NoError(t, err)
	assert.Equal(t, "P-42", created.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.Create(models.Product{Name: "", Price: 10})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	_, err = svc.Create(models.Product{Name: "Bad", Price: -1})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")

	_, err = svc.Create(models.Product{Name: "Bad", Price: 1, Stock: -3})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "stock")
}

func TestListSearchByNameAndBarcode(t *testing.T) {
	svc := newCatalog(t)
	seed := []models.Product{
		{ID: "P-1", Name: "Coca-Cola 500ml", Barcode: "789490001", Price: 125},
		{ID: "P-2", Name: "Prestige 330ml", Barcode: "746100100", Price: 150},
		{ID: "P-3", Name: "Cola Couronne", Barcode: "111222333", Price: 110},
	}
	for _, p := range seed {
		_, err := svc.Create(p)
		require.NoError(t, err)
	}

	// Case-insensitive name substring.
	hits, err := svc.List("cola")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// Barcode substring.
	hits, err = svc.List("746100")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "P-2", hits[0].ID)

	hits, err = svc.List("zzz")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newCatalog(t)
	created, err := svc.Create(models.Product{Name: "Cola", Price: 100, Stock: 5})
	require.NoError(t, err)

	created.Price = 120
	updated, err := svc.Update(created)
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Price)

	_, err = svc.Update(models.Product{ID: "P-404", Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, svc.Delete(created.ID))
	assert.ErrorIs(t, svc.Delete(created.ID), ErrProductNotFound)

	products, err := svc.List("")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestExportImportRoundTripIsIdentity(t *testing.T) {
	svc := newCatalog(t)
	for _, p := range []models.Product{
		{ID: "P-1", Name: "Cola", Price: 125, Barcode: "789", Stock: 48},
		{ID: "P-2", Name: "Rice", Price: 650, Stock: 20},
	} {
		_, err := svc.Create(p)
		require.NoError(t, err)
	}

	exported, err := svc.Export()
	require.NoError(t, err)

	count, err := svc.Import(exported)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	again, err := svc.Export()
	require.NoError(t, err)
	assert.Equal(t, string(exported), string(again))
}

func TestImportOnlyChecksArrayShape(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.Import([]byte(`{"not":"an array"}`))
	assert.Error(t, err)

	// A bare null decodes without error but is not an array: it must be
	// rejected, not wipe the catalog.
	_, err = svc.Create(models.Product{ID: "P-1", Name: "Cola", Price: 125, Stock: 1})
	require.NoError(t, err)
	_, err = svc.Import([]byte(`null`))
	assert.Error(t, err)
	kept, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// An empty array is a valid import that clears the catalog.
	count, err := svc.Import([]byte(`[]`))
	require.NoError(t, err)
	assert.Zero(t, count)

	// Objects missing most fields still pass: the shape check is the
	// array, nothing deeper.
	count, err = svc.Import([]byte(`[{"name":"Mystery"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExportIsPrettyJSONArray(t *testing.T) {
	svc := newCatalog(t)
	_, err := svc.Create(models.Product{ID: "P-1", Name: "Cola", Price: 125})
	require.NoError(t, err)

	exported, err := svc.Export()
	require.NoError(t, err)

	var arr []json.RawMessage
	require.NoError(t, json.Unmarshal(exported, &arr))
	assert.Len(t, arr, 1)
	assert.Contains(t, string(exported), "\n  ")
}
