package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/event"
	"github.com/vendixlabs/vendix/pkg/kvstore"
	"github.com/vendixlabs/vendix/pkg/logger"
)

// allowedKeys is the static license allow-list. There is no server call
// and no signature check: this is a deterrent, not a security boundary.
var allowedKeys = map[string]bool{
	"VENDIX-20261231-AB12": true,
	"VENDIX-20271130-CD34": true,
	"VENDIX-20280630-EF56": true,
	"TRIAL-20260301-ZZ01":  true,
}

// Rejection reasons, in the order the checks run.
const (
	ReasonInvalidKey = "invalid key"
	ReasonBadFormat  = "bad format"
	ReasonExpired    = "expired"
	ReasonNoKey      = "no key"
)

// warnWithinDays is the expiry window that triggers renewal warnings.
const warnWithinDays = 7

// LicenseStatus is the outcome of validating a key.
type LicenseStatus struct {
	Valid          bool   `json:"valid"`
	Key            string `json:"key,omitempty"`
	Reason         string `json:"reason,omitempty"`
	// No omitempty: a key on its expiry day legitimately has 0 days left.
	DaysRemaining  int    `json:"daysRemaining"`
	ExpiresDisplay string `json:"expires,omitempty"`
	Warning        string `json:"warning,omitempty"`
}

// LicenseService gates the register behind a valid license key.
type LicenseService struct {
	repo *repositories.LicenseRepository

	mu     sync.RWMutex
	status LicenseStatus
}

func NewLicenseService(repo *repositories.LicenseRepository) *LicenseService {
	s := &LicenseService{repo: repo}
	s.Recheck()
	return s
}

// Licensed reports whether the register currently holds a valid key.
// Satisfies middleware.LicenseChecker.
func (s *LicenseService) Licensed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Valid
}

// Status returns the current license state.
func (s *LicenseService) Status() LicenseStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Activate validates key and, on success, persists the normalized key
// and unlocks the register.
func (s *LicenseService) Activate(key string) (LicenseStatus, error) {
	status := s.Validate(key, time.Now())
	if !status.Valid {
		return status, nil
	}
	if err := s.repo.Save(status.Key); err != nil {
		return LicenseStatus{}, fmt.Errorf("license: persist key: %w", err)
	}
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()

	logger.Info("license: activated", "key", status.Key, "days_remaining", status.DaysRemaining)
	event.Fire("license.activated", status)
	return status, nil
}

// Recheck reloads the stored key and re-validates it. Runs at boot and
// once a day from the scheduler so an expiry is caught on a terminal
// that never restarts.
func (s *LicenseService) Recheck() LicenseStatus {
	var status LicenseStatus

	key, err := s.repo.Get()
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		status = LicenseStatus{Valid: false, Reason: ReasonNoKey}
	case err != nil:
		logger.Error("license: load stored key", "error", err)
		status = LicenseStatus{Valid: false, Reason: ReasonNoKey}
	default:
		status = s.Validate(key, time.Now())
	}

	if status.Valid && status.Warning != "" {
		logger.Warn("license: expiring soon", "days_remaining", status.DaysRemaining)
	}
	if !status.Valid {
		logger.Warn("license: register locked", "reason", status.Reason)
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	return status
}

// Validate checks key against the allow-list, shape and expiry, in that
// order. now anchors "today" so the calendar math is testable. An
// expired key also purges whatever key is persisted.
func (s *LicenseService) Validate(key string, now time.Time) LicenseStatus {
	normalized := strings.ToUpper(strings.TrimSpace(key))

	if !allowedKeys[normalized] {
		return LicenseStatus{Valid: false, Reason: ReasonInvalidKey}
	}

	segments := strings.Split(normalized, "-")
	if len(segments) != 3 {
		return LicenseStatus{Valid: false, Reason: ReasonBadFormat}
	}

	expiry, err := time.ParseInLocation("20060102", segments[1], now.Location())
	if err != nil {
		return LicenseStatus{Valid: false, Reason: ReasonBadFormat}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if today.After(expiry) {
		if err := s.repo.Purge(); err != nil {
			logger.Error("license: purge expired key", "error", err)
		}
		event.Fire("license.expired", normalized)
		return LicenseStatus{Valid: false, Reason: ReasonExpired}
	}

	days := int(math.Ceil(expiry.Sub(today).Hours() / 24))
	status := LicenseStatus{
		Valid:          true,
		Key:            normalized,
		DaysRemaining:  days,
		ExpiresDisplay: expiry.Format("2006-01-02"),
	}
	if days <= warnWithinDays {
		status.Warning = fmt.Sprintf("license expires in %d day(s)", days)
	}
	return status
}
