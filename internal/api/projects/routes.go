package projects

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/just-abdullah-dev/pixel-art/internal/auth"
)

// RegisterRoutes mounts the project endpoints behind the auth
// middleware.
func RegisterRoutes(r *mux.Router, handler *Handler, tokens *auth.TokenManager) {
	protected := r.PathPrefix("/api/v1/projects").Subrouter()
	protected.Use(tokens.Middleware)

	protected.HandleFunc("", handler.List).Methods(http.MethodGet)
	protected.HandleFunc("", handler.Save).Methods(http.MethodPost)
	protected.HandleFunc("/{id}", handler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/{id}", handler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/{id}/export", handler.Export).Methods(http.MethodGet)
}
