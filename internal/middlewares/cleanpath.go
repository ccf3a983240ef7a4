package middlewares

import (
	"net/http"
	"path"
)

// CleanPath normalizes the request path before routing so patterns match
// regardless of duplicate or trailing slashes.
func CleanPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = path.Clean(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
