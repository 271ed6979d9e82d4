package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	apiauth "github.com/just-abdullah-dev/pixel-art/internal/api/auth"
	"github.com/just-abdullah-dev/pixel-art/internal/api/projects"
	"github.com/just-abdullah-dev/pixel-art/internal/auth"
	"github.com/just-abdullah-dev/pixel-art/internal/config"
	"github.com/just-abdullah-dev/pixel-art/internal/middleware"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
	"github.com/just-abdullah-dev/pixel-art/internal/storage/memory"
	"github.com/just-abdullah-dev/pixel-art/internal/storage/sqlite"
	"github.com/just-abdullah-dev/pixel-art/internal/storage/valkey"
	"github.com/just-abdullah-dev/pixel-art/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	projectStore, userStore, err := buildStores(cfg)
	if err != nil {
		log.Fatal(err)
	}

	hub := ws.NewHub()
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	router := mux.NewRouter()
	apiauth.RegisterRoutes(router, &apiauth.Handler{Users: userStore, Tokens: tokens})
	projects.RegisterRoutes(router, &projects.Handler{Store: projectStore}, tokens)
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	log.Printf("Server started at %s (store: %s)", cfg.Addr, cfg.StoreDriver)
	log.Fatal(http.ListenAndServe(cfg.Addr, middleware.CORS(cfg.CORSOrigin, router)))
}

// buildStores selects the persistence backends for the configured
// driver. Accounts stay in SQLite when projects live in Valkey; the
// Valkey backend only stores project documents.
func buildStores(cfg config.Config) (storage.ProjectStore, storage.UserStore, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memory.NewProjectStore(), memory.NewUserStore(), nil
	case config.StoreValkey:
		projectStore, err := valkey.NewProjectStore(cfg.ValkeyAddr)
		if err != nil {
			return nil, nil, err
		}
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return projectStore, sqlite.NewUserStore(db), nil
	default:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewProjectStore(db), sqlite.NewUserStore(db), nil
	}
}
