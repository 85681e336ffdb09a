// Package middleware provides HTTP middleware for the planner companion API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler lets the app's web view call the companion API from the
// origins in allowedOrigins, written as "http://localhost:8081" with no path.
// Form edits use PATCH and PUT, and clients may send and read X-Request-Id to
// correlate with the request log. With no origins nothing cross-origin passes.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
