package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoangducbinh/duckgoose/internal/models"
	"github.com/hoangducbinh/duckgoose/internal/services/billing"
	"github.com/hoangducbinh/duckgoose/internal/services/catalog"
)

type InvoiceHandler struct {
	billing *billing.Service
	catalog *catalog.Service
}

func NewInvoiceHandler(b *billing.Service, cat *catalog.Service) *InvoiceHandler {
	return &InvoiceHandler{billing: b, catalog: cat}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.billing.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// Create assembles the invoice server-side from product references: each item
// is snapshotted from the current product record, duplicates merge by
// quantity, and the total is recomputed before the save.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload struct {
		CustomerID string `json:"customerId"`
		Note       string `json:"note"`
		Items      []struct {
			ProductID string `json:"productId"`
			Quantity  int64  `json:"quantity"`
		} `json:"items"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx := c.Request.Context()
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	invoice := models.Invoice{CustomerID: payload.CustomerID, Note: payload.Note}
	for _, item := range payload.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			writeError(c, &models.ReferenceError{Entity: "product", Name: item.ProductID})
			return
		}
		billing.AddLineItem(&invoice, product, item.Quantity)
	}

	saved, err := h.billing.Save(ctx, invoice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "invoice saved",
		"invoice": saved,
		"total":   models.FormatAmount(saved.Total),
	})
}
