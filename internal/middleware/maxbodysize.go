package middleware

import (
	"net/http"
)

// tooLargeBody is the companion API error envelope for a rejected body.
const tooLargeBody = `{"error":{"code":"request_too_large","message":"request body is too large"}}` + "\n"

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. A request whose Content-Length exceeds the limit is
// rejected with 413 before the next handler runs. Otherwise the body is wrapped
// in http.MaxBytesReader, so a streaming body fails on read once it passes the
// limit and the handler answers 413 itself.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(tooLargeBody))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
