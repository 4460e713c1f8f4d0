// Package controllers holds the thin HTTP layer: decode the request,
// call the service, write the response envelope.
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login authenticates the operator. On a fresh install the first login
// creates the account.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, created, err := c.service.Login(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":   token,
		"created": created,
	})
}

// Logout closes the session.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Logout(); err != nil {
		response.Error(w, http.StatusInternalServerError, "logout failed")
		return
	}
	response.Success(w, nil)
}
