package request

import (
	"net/http"
)

// DefaultMaxBodyBytes bounds JSON request bodies; the largest accepted body is a hostname.
const DefaultMaxBodyBytes int64 = 16 << 10

// BodyLimit caps request bodies with http.MaxBytesReader, which answers 413
// on overflow. Apply it before any JSON decoding.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
