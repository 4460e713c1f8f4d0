package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/event"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

func newLicenseService() (*LicenseService, *repositories.LicenseRepository) {
	repo := repositories.NewLicenseRepository(kvstore.NewMemory())
	return NewLicenseService(repo), repo
}

// at builds a mid-afternoon reference clock. UTC keeps the calendar
// arithmetic in the assertions independent of the host zone's DST.
func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 30, 0, 0, time.UTC)
}

func TestValidateAllowListedKeyBeforeExpiry(t *testing.T) {
	svc, _ := newLicenseService()

	status := svc.Validate("VENDIX-20261231-AB12", at(2026, time.June, 1))
	require.True(t, status.Valid)
	assert.Equal(t, "VENDIX-20261231-AB12", status.Key)
	assert.Equal(t, "2026-12-31", status.ExpiresDisplay)
	// 2026-06-01 → 2026-12-31 is 213 calendar days.
	assert.Equal(t, 213, status.DaysRemaining)
	assert.Empty(t, status.Warning)
}

func TestValidateNormalizesInput(t *testing.T) {
	svc, _ := newLicenseService()

	status := svc.Validate("  vendix-20261231-ab12  ", at(2026, time.June, 1))
	require.True(t, status.Valid)
	assert.Equal(t, "VENDIX-20261231-AB12", status.Key)
}

func TestValidateUnknownKeyRegardlessOfDate(t *testing.T) {
	svc, _ := newLicenseService()

	// Well-formed, far-future date, but not in the allow-list.
	status := svc.Validate("FAKE-20300101-ZZ99", at(2026, time.January, 1))
	require.False(t, status.Valid)
	assert.Equal(t, ReasonInvalidKey, status.Reason)
}

func TestValidateExpiredKeyPurgesStoredKey(t *testing.T) {
	svc, repo := newLicenseService()
	require.NoError(t, repo.Save("VENDIX-20261231-AB12"))

	status := svc.Validate("VENDIX-20261231-AB12", at(2027, time.January, 1))
	require.False(t, status.Valid)
	assert.Equal(t, ReasonExpired, status.Reason)

	_, err := repo.Get()
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestValidateOnExpiryDayStillValid(t *testing.T) {
	svc, _ := newLicenseService()

	status := svc.Validate("VENDIX-20261231-AB12", at(2026, time.December, 31))
	require.True(t, status.Valid)
	assert.Equal(t, 0, status.DaysRemaining)
	assert.NotEmpty(t, status.Warning)

	// The zero still appears on the wire: "expires today" must be
	// distinguishable from an absent field.
	body, err := json.Marshal(status)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"daysRemaining":0`)
}

func TestValidateWarnsInsideSevenDays(t *testing.T) {
	svc, _ := newLicenseService()

	status := svc.Validate("VENDIX-20261231-AB12", at(2026, time.December, 26))
	require.True(t, status.Valid)
	assert.Equal(t, 5, status.DaysRemaining)
	assert.Contains(t, status.Warning, "5 day")

	status = svc.Validate("VENDIX-20261231-AB12", at(2026, time.December, 1))
	require.True(t, status.Valid)
	assert.Equal(t, 30, status.DaysRemaining)
	assert.Empty(t, status.Warning)
}

func TestRecheckWithoutStoredKey(t *testing.T) {
	svc, _ := newLicenseService()

	status := svc.Status()
	require.False(t, status.Valid)
	assert.Equal(t, ReasonNoKey, status.Reason)
	assert.False(t, svc.Licensed())
}

func TestActivatePersistsAndUnlocks(t *testing.T) {
	event.Flush()
	defer event.Flush()

	svc, repo := newLicenseService()

	status, err := svc.Activate("vendix-20280630-ef56")
	require.NoError(t, err)
	require.True(t, status.Valid)
	assert.True(t, svc.Licensed())

	stored, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "VENDIX-20280630-EF56", stored)
}

func TestActivateRejectionDoesNotPersist(t *testing.T) {
	svc, repo := newLicenseService()

	status, err := svc.Activate("FAKE-20300101-ZZ99")
	require.NoError(t, err)
	require.False(t, status.Valid)
	assert.Equal(t, ReasonInvalidKey, status.Reason)
	assert.False(t, svc.Licensed())

	_, err = repo.Get()
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestRecheckFindsExpiredStoredKey(t *testing.T) {
	store := kvstore.NewMemory()
	repo := repositories.NewLicenseRepository(store)
	require.NoError(t, repo.Save("TRIAL-20260301-ZZ01"))

	svc := NewLicenseService(repo)
	status := svc.Status()
	require.False(t, status.Valid)
	assert.Equal(t, ReasonExpired, status.Reason)
	assert.False(t, store.Has(repositories.KeyLicense))
}
