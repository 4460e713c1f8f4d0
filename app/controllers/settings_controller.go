package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/pkg/response"
)

type SettingsController struct {
	service *services.SettingsService
}

func NewSettingsController(service *services.SettingsService) *SettingsController {
	return &SettingsController{service: service}
}

// Show returns the effective settings.
func (c *SettingsController) Show(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.service.Get()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	response.Success(w, cfg)
}

// Update validates and saves the whole settings document.
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var cfg models.BusinessSettings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	saved, err := c.service.Update(cfg)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(w, verr.Fields)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not save settings")
		return
	}
	response.Success(w, saved)
}

// ThemeCSS serves the theme stylesheet derived from the primary color.
func (c *SettingsController) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	css, err := c.service.ThemeCSS()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not render theme")
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(css))
}
