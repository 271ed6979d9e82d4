package middleware

import (
	"log"
	"net/http"
)

// CORS allows the configured frontend origin to call the API and
// answers preflight requests directly.
func CORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Access-Control-Allow-Headers, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			log.Printf("[CORS] Handled OPTIONS preflight request for %s", r.URL.Path)
			return
		}

		next.ServeHTTP(w, r)
	})
}
