// Package seeders loads a demo catalog and the default settings into a
// fresh document store.
package seeders

import (
	"fmt"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/kvstore"
	"github.com/vendixlabs/vendix/pkg/logger"
)

// demoProducts is a small Haitian corner-shop catalog, priced in HTG
// (the default base currency).
var demoProducts = []models.Product{
	{ID: "P-1700000000001", Name: "Coca-Cola 500ml", Price: 125, Barcode: "7894900011517", Stock: 48},
	{ID: "P-1700000000002", Name: "Prestige 330ml", Price: 150, Barcode: "7461001002015", Stock: 36},
	{ID: "P-1700000000003", Name: "Riz 5lb", Price: 650, Barcode: "0123456789012", Stock: 20},
	{ID: "P-1700000000004", Name: "Spaghetti 400g", Price: 180, Barcode: "8076800195057", Stock: 30},
	{ID: "P-1700000000005", Name: "Savon Lavande", Price: 85, Barcode: "3600521234567", Stock: 60},
	{ID: "P-1700000000006", Name: "Carte Digicel 100", Price: 100, Barcode: "", Stock: 100},
}

// Run seeds the catalog and settings documents. Existing documents are
// left untouched so a re-run never clobbers live data.
func Run(store kvstore.Store) error {
	catalog := repositories.NewCatalogRepository(store)
	settings := repositories.NewSettingsRepository(store)

	if !store.Has(repositories.KeyProducts) {
		if err := catalog.SaveAll(demoProducts); err != nil {
			return fmt.Errorf("seeders: products: %w", err)
		}
		logger.Info("seeders: demo catalog loaded", "products", len(demoProducts))
	} else {
		logger.Info("seeders: products document exists, skipping")
	}

	if !store.Has(repositories.KeySettings) {
		if err := settings.Save(models.DefaultSettings()); err != nil {
			return fmt.Errorf("seeders: settings: %w", err)
		}
		logger.Info("seeders: default settings saved")
	} else {
		logger.Info("seeders: settings document exists, skipping")
	}

	return nil
}
