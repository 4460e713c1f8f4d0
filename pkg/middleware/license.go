package middleware

import (
	"net/http"

	"github.com/vendixlabs/vendix/pkg/response"
)

// LicenseChecker reports whether the terminal currently holds a usable
// license. Implemented by the license service; declared here so the
// middleware stack does not import application code.
type LicenseChecker interface {
	Licensed() bool
}

// LicenseGate blocks every request with 403 until a license has been
// activated. Activation endpoints themselves must be mounted outside
// this middleware, or nobody could ever get in.
func LicenseGate(lic LicenseChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lic.Licensed() {
				response.Error(w, http.StatusForbidden, "License required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
