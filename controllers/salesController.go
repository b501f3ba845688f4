package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ken-eddy/salesApp/checkout"
	"github.com/ken-eddy/salesApp/middleware"
	"github.com/ken-eddy/salesApp/models"
)

const defaultRecentOrders = 5

type checkoutRequest struct {
	Items []checkout.CartItem `json:"items"`
}

type checkoutResponse struct {
	*checkout.Invoice
	LineCount int    `json:"line_count"`
	Message   string `json:"message,omitempty"`
}

// CreateSale checks out a whole cart under one invoice number.
func (h *Handler) CreateSale(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_REQUEST"})
		return
	}

	inv, err := h.Checkout.Checkout(c.Request.Context(), req.Items, middleware.SalesPerson(c))
	if err != nil {
		writeCheckoutError(c, req.Items, err)
		return
	}

	h.invalidateDashboard(c)

	resp := checkoutResponse{Invoice: inv, LineCount: inv.LineCount()}
	if inv.Skipped > 0 {
		resp.Message = fmt.Sprintf("Sale completed with %d unknown product line(s) omitted", inv.Skipped)
	} else {
		resp.Message = "Sale completed successfully"
	}
	c.JSON(http.StatusCreated, resp)
}

func writeCheckoutError(c *gin.Context, items []checkout.CartItem, err error) {
	var invalid *checkout.InvalidQuantityError
	var insufficient *checkout.InsufficientStockError
	var commitFailed *checkout.CommitFailedError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please add at least one product.",
			"code":  "EMPTY_CART",
		})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      err.Error(),
			"code":       "INVALID_QUANTITY",
			"product_id": invalid.ProductID,
			"quantity":   invalid.Quantity,
			"items":      items,
		})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":      fmt.Sprintf("Not enough stock for %s. Available: %d", insufficient.ProductName, insufficient.Available),
			"code":       "INSUFFICIENT_STOCK",
			"product_id": insufficient.ProductID,
			"available":  insufficient.Available,
			"requested":  insufficient.Requested,
			"items":      items,
		})
	case errors.As(err, &commitFailed):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "The sale could not be saved, please resubmit.",
			"code":      "COMMIT_FAILED",
			"conflict":  commitFailed.Conflict(),
			"retryable": true,
			"items":     items,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) GetSales(c *gin.Context) {
	lines, err := h.Repo.ListLines(c.Request.Context())
	if err != nil {
		handleStoreError(c, "sales", err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *Handler) GetOrder(c *gin.Context) {
	lines, err := h.Repo.LinesByInvoice(c.Request.Context(), c.Param("invoice"))
	if err != nil {
		handleStoreError(c, "Order", err)
		return
	}
	c.JSON(http.StatusOK, models.GroupOrders(lines)[0])
}

// GetRecentOrders returns the newest orders, grouped by invoice number.
func (h *Handler) GetRecentOrders(c *gin.Context) {
	limit := defaultRecentOrders
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	lines, err := h.Repo.ListLines(c.Request.Context())
	if err != nil {
		handleStoreError(c, "sales", err)
		return
	}
	orders := models.GroupOrders(lines)
	if len(orders) > limit {
		orders = orders[:limit]
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetSaleLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	line, err := h.Repo.GetLine(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, "Sale line", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// UpdateSaleLine is an administrative correction of a ledger line. Stock is
// not adjusted.
func (h *Handler) UpdateSaleLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Quantity  int             `json:"quantity" binding:"required,min=1,max=1000"`
		UnitPrice decimal.Decimal `json:"unit_price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.UnitPrice.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit_price must be >= 0"})
		return
	}

	line, err := h.Repo.UpdateLine(c.Request.Context(), id, input.Quantity, models.RoundPrice(input.UnitPrice))
	if err != nil {
		handleStoreError(c, "Sale line", err)
		return
	}
	h.invalidateDashboard(c)
	c.JSON(http.StatusOK, line)
}

func (h *Handler) DeleteSaleLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteLine(c.Request.Context(), id); err != nil {
		handleStoreError(c, "Sale line", err)
		return
	}
	h.invalidateDashboard(c)
	c.JSON(http.StatusOK, gin.H{"message": "Sale line deleted successfully"})
}
