// Package config loads server configuration from a .env file (if
// present) and environment variables.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Store driver names accepted by PIXELART_STORE.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreValkey = "valkey"
)

// Config holds everything the process needs at startup.
type Config struct {
	Addr        string // listen address
	StoreDriver string // memory, sqlite, or valkey
	SQLitePath  string
	ValkeyAddr  string
	JWTSecret   string
	CORSOrigin  string
}

// Load reads configuration with defaults suitable for development.
// A .env file in the working directory is applied first; real
// environment variables win over it.
func Load() (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("[Config] Loaded .env file")
	}

	cfg := Config{
		Addr:        ":8080",
		StoreDriver: StoreSQLite,
		SQLitePath:  "pixelart.db",
		ValkeyAddr:  "127.0.0.1:6379",
		JWTSecret:   "dev-secret-change-me",
		CORSOrigin:  "http://127.0.0.1:5173",
	}

	if v := os.Getenv("PIXELART_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PIXELART_STORE"); v != "" {
		cfg.StoreDriver = v
	}
	if v := os.Getenv("PIXELART_SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("PIXELART_VALKEY_ADDR"); v != "" {
		cfg.ValkeyAddr = v
	}
	if v := os.Getenv("PIXELART_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("PIXELART_CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite, StoreValkey:
	default:
		return Config{}, fmt.Errorf("invalid PIXELART_STORE %q (want %s, %s, or %s)",
			cfg.StoreDriver, StoreMemory, StoreSQLite, StoreValkey)
	}
	return cfg, nil
}
