package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ken-eddy/salesApp/models"
)

func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.Repo.ListProducts(c.Request.Context())
	if err != nil {
		handleStoreError(c, "Products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, err := h.Repo.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, "Product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductByBarcode backs the scanner input of the sales screen.
func (h *Handler) GetProductByBarcode(c *gin.Context) {
	product, err := h.Repo.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		handleStoreError(c, "Product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input struct {
		Name       string          `json:"name" binding:"required"`
		Barcode    string          `json:"barcode"`
		Price      decimal.Decimal `json:"price"`
		Quantity   int             `json:"stock_quantity" binding:"min=0"`
		SupplierID uint            `json:"supplier_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be >= 0"})
		return
	}

	product := models.Product{
		Name:          strings.TrimSpace(input.Name),
		Price:         models.RoundPrice(input.Price),
		StockQuantity: input.Quantity,
		SupplierID:    input.SupplierID,
	}
	if barcode := strings.TrimSpace(input.Barcode); barcode != "" {
		product.Barcode = &barcode
	}

	if err := h.Repo.CreateProduct(c.Request.Context(), &product); err != nil {
		handleStoreError(c, "Product", err)
		return
	}
	h.invalidateDashboard(c)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

func (h *Handler) RestockProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Repo.Restock(c.Request.Context(), id, input.Quantity)
	if err != nil {
		handleStoreError(c, "Product", err)
		return
	}
	h.invalidateDashboard(c)
	c.JSON(http.StatusOK, product)
}

func (h *Handler) LowStockItems(c *gin.Context) {
	products, err := h.Repo.LowStock(c.Request.Context(), h.LowStockThreshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch low stock items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"threshold": h.LowStockThreshold, "count": len(products), "products": products})
}
