package middleware

import (
	"net/http"
	"strings"

	"github.com/vendixlabs/vendix/pkg/auth"
	"github.com/vendixlabs/vendix/pkg/response"
)

// Auth requires a valid operator JWT in the Authorization header.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := strings.Replace(r.Header.Get("Authorization"), "Bearer ", "", 1)

		if token == "" {
			response.Unauthorized(w)
			return
		}

		if _, err := auth.ValidateToken(token); err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
