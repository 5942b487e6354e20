package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoangducbinh/duckgoose/internal/services/directory"
)

type CustomerHandler struct {
	service *directory.Service
}

func NewCustomerHandler(service *directory.Service) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if term := c.Query("search"); term != "" {
		customers = h.service.Search(term)
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var payload directory.CustomerInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customer, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "customer created", "customer": customer})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var payload directory.CustomerInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.service.Update(c.Request.Context(), c.Param("id"), payload); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer updated"})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
