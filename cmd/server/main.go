package main

import (
	"log"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hoangducbinh/duckgoose/internal/config"
	"github.com/hoangducbinh/duckgoose/internal/obs"
	"github.com/hoangducbinh/duckgoose/internal/routes"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	obs.InitLogger(slog.LevelInfo)
	cfg := config.Load()

	var st store.Store
	if cfg.DBDriver == "memory" {
		st = store.NewMemory()
	} else {
		db, err := config.InitDB(cfg)
		if err != nil {
			log.Fatalf("opening %s database: %v", cfg.DBDriver, err)
		}
		gs := store.NewGorm(db)
		if err := gs.Migrate(); err != nil {
			log.Fatalf("migrating records table: %v", err)
		}
		st = gs
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, st, cfg)

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
