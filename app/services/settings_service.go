package services

import (
	"fmt"
	"time"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/cache"
	"github.com/vendixlabs/vendix/pkg/metrics"
	"github.com/vendixlabs/vendix/pkg/validate"
)

// themeCacheKey holds the rendered stylesheet in redis when one is
// around; offline the cache no-ops and every request re-renders.
const themeCacheKey = "vendix:theme.css"

// SettingsService manages the shop's singleton configuration.
type SettingsService struct {
	repo *repositories.SettingsRepository
}

func NewSettingsService(repo *repositories.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the effective settings (stored values over defaults).
func (s *SettingsService) Get() (models.BusinessSettings, error) {
	return s.repo.Get()
}

// Update validates and saves the whole settings document.
func (s *SettingsService) Update(cfg models.BusinessSettings) (models.BusinessSettings, error) {
	if errs := validate.Struct(cfg); validate.HasErrors(errs) {
		return models.BusinessSettings{}, &ValidationError{Fields: errs}
	}
	if cfg.PrimaryColor == "" {
		cfg.PrimaryColor = models.DefaultSettings().PrimaryColor
	}
	if err := s.repo.Save(cfg); err != nil {
		return models.BusinessSettings{}, err
	}
	cache.Forget(themeCacheKey)
	return cfg, nil
}

// ThemeCSS renders the custom-property block the UI links as
// /theme.css, derived from the configured primary color.
func (s *SettingsService) ThemeCSS() (string, error) {
	var cached string
	if cache.Get(themeCacheKey, &cached) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	cfg, err := s.repo.Get()
	if err != nil {
		return "", err
	}
	color := cfg.PrimaryColor
	if color == "" {
		color = models.DefaultSettings().PrimaryColor
	}
	css := fmt.Sprintf(`:root {
  --vendix-primary: %[1]s;
  --vendix-primary-soft: %[1]s1a; /* 10%% opacity */
  --vendix-primary-glow: %[1]s4d; /* 30%% opacity */
}
.bg-vendix { background-color: var(--vendix-primary) !important; }
.bg-vendix-soft { background-color: var(--vendix-primary-soft) !important; }
.text-vendix { color: var(--vendix-primary) !important; }
.border-vendix { border-color: var(--vendix-primary) !important; }
.shadow-vendix { box-shadow: 0 10px 15px -3px var(--vendix-primary-glow), 0 4px 6px -4px rgba(0,0,0,0.1) !important; }
.focus-vendix:focus { border-color: var(--vendix-primary) !important; box-shadow: 0 0 0 4px var(--vendix-primary-glow) !important; }
`, color)
	cache.Set(themeCacheKey, css, time.Hour)
	return css, nil
}
