// Package config provides runtime configuration for the server.
package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds configuration knobs for the HTTP server, the record store and
// the sign-in gate.
type Config struct {
	HTTPAddr string

	// DBDriver selects the record-store backend: "memory", "postgres" or
	// "mysql".
	DBDriver string
	DBDSN    string

	AuthEmail    string
	AuthPassword string

	CORSOrigin string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DBDriver:     getenv("DB_DRIVER", "memory"),
		DBDSN:        getenv("DB_DSN", ""),
		AuthEmail:    getenv("AUTH_EMAIL", "admin@example.com"),
		AuthPassword: getenv("AUTH_PASSWORD", "admin"),
		CORSOrigin:   getenv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

// InitDB opens the relational backend named by DBDriver. Not called when the
// driver is "memory".
func InitDB(cfg Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
