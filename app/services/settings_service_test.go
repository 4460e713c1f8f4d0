package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

func newSettings(t *testing.T) *SettingsService {
	t.Helper()
	return NewSettingsService(repositories.NewSettingsRepository(kvstore.NewMemory()))
}

func TestGetReturnsDefaultsOnFreshStore(t *testing.T) {
	svc := newSettings(t)

	cfg, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.HTG, cfg.DefaultCurrency)
	assert.Equal(t, 130.0, cfg.ConversionRate)
	assert.Equal(t, "#2563eb", cfg.PrimaryColor)
	assert.Equal(t, "Vendix POS", cfg.Name)
}

func TestUpdateSavesWholeDocument(t *testing.T) {
	svc := newSettings(t)

	cfg, err := svc.Get()
	require.NoError(t, err)
	cfg.Name = "Boutique Ti Kay"
	cfg.DefaultCurrency = models.USD
	cfg.ConversionRate = 132.5

	saved, err := svc.Update(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Boutique Ti Kay", saved.Name)

	reloaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.USD, reloaded.DefaultCurrency)
	assert.Equal(t, 132.5, reloaded.ConversionRate)
}

func TestUpdateValidation(t *testing.T) {
	svc := newSettings(t)
	base, err := svc.Get()
	require.NoError(t, err)

	var verr *ValidationError

	bad := base
	bad.DefaultCurrency = "EUR"
	_, err = svc.Update(bad)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "defaultCurrency")

	bad = base
	bad.ConversionRate = 0
	_, err = svc.Update(bad)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "conversionRate")

	bad = base
	bad.PrimaryColor = "blue"
	_, err = svc.Update(bad)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "primaryColor")
}

func TestThemeCSSUsesPrimaryColor(t *testing.T) {
	svc := newSettings(t)

	css, err := svc.ThemeCSS()
	require.NoError(t, err)
	assert.Contains(t, css, "--vendix-primary: #2563eb;")
	assert.Contains(t, css, "--vendix-primary-soft: #2563eb1a;")
	assert.Contains(t, css, ".bg-vendix")

	cfg, err := svc.Get()
	require.NoError(t, err)
	cfg.PrimaryColor = "#dc2626"
	_, err = svc.Update(cfg)
	require.NoError(t, err)

	css, err = svc.ThemeCSS()
	require.NoError(t, err)
	assert.Contains(t, css, "--vendix-primary: #dc2626;")
}
