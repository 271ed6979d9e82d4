package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the auth endpoints. Register and login are
// open; /me requires the auth middleware so it can read the resolved
// account id.
func RegisterRoutes(r *mux.Router, handler *Handler) {
	r.HandleFunc("/api/v1/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/login", handler.Login).Methods(http.MethodPost)

	protected := r.PathPrefix("/api/v1/auth").Subrouter()
	protected.Use(handler.Tokens.Middleware)
	protected.HandleFunc("/me", handler.Me).Methods(http.MethodGet)
}
