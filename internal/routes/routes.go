package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hoangducbinh/duckgoose/internal/auth"
	"github.com/hoangducbinh/duckgoose/internal/config"
	handler "github.com/hoangducbinh/duckgoose/internal/handlers"
	"github.com/hoangducbinh/duckgoose/internal/services/billing"
	"github.com/hoangducbinh/duckgoose/internal/services/catalog"
	"github.com/hoangducbinh/duckgoose/internal/services/directory"
	"github.com/hoangducbinh/duckgoose/internal/store"
)

func RegisterRoutes(r *gin.Engine, st store.Store, cfg config.Config) {
	directoryService := directory.NewService(st)
	catalogService := catalog.NewService(st)
	billingService := billing.NewService(st)

	provider := auth.NewStaticProvider(cfg.AuthEmail, cfg.AuthPassword)
	sessions := auth.NewSessions()

	authHandler := handler.NewAuthHandler(provider, sessions)
	customerHandler := handler.NewCustomerHandler(directoryService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	invoiceHandler := handler.NewInvoiceHandler(billingService, catalogService)

	r.POST("/api/login", authHandler.Login)

	api := r.Group("/api")
	api.Use(handler.RequireSession(sessions))

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	customers := api.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.POST("", customerHandler.Create)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", catalogHandler.ListCategories)
		categories.POST("", catalogHandler.CreateCategory)
	}

	products := api.Group("/products")
	{
		products.GET("", catalogHandler.ListProducts)
		products.POST("", catalogHandler.CreateProduct)
		products.PUT("/:id", catalogHandler.UpdateProduct)
		products.DELETE("/:id", catalogHandler.DeleteProduct)
	}

	invoices := api.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.List)
		invoices.POST("", invoiceHandler.Create)
	}
}
