package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/pkg/response"
)

type LicenseController struct {
	service *services.LicenseService
}

func NewLicenseController(service *services.LicenseService) *LicenseController {
	return &LicenseController{service: service}
}

// Status returns the current license state, including the renewal
// warning when the key expires within a week.
func (c *LicenseController) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.service.Status())
}

// Activate validates a key and, on success, persists it and unlocks the
// register. An invalid key comes back 422 with the rejection reason.
func (c *LicenseController) Activate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	status, err := c.service.Activate(body.Key)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not persist license")
		return
	}
	if !status.Valid {
		response.Error(w, http.StatusUnprocessableEntity, status.Reason)
		return
	}
	response.Success(w, status)
}
