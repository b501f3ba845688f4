package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ken-eddy/salesApp/cache"
	"github.com/ken-eddy/salesApp/checkout"
	"github.com/ken-eddy/salesApp/database"
	"github.com/ken-eddy/salesApp/logging"
	"github.com/ken-eddy/salesApp/models"
)

// Checkouter is the checkout operation the sales routes call.
type Checkouter interface {
	Checkout(ctx context.Context, items []checkout.CartItem, salesPersonID string) (*checkout.Invoice, error)
}

type Handler struct {
	Repo              database.Repository
	Checkout          Checkouter
	Dashboard         *cache.SummaryCache
	LowStockThreshold int
}

func NewHandler(repo database.Repository, engine Checkouter, dashboard *cache.SummaryCache, lowStockThreshold int) *Handler {
	if dashboard == nil {
		dashboard = cache.NewSummaryCache(nil, "", 0)
	}
	return &Handler{
		Repo:              repo,
		Checkout:          engine,
		Dashboard:         dashboard,
		LowStockThreshold: lowStockThreshold,
	}
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.Repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func handleStoreError(c *gin.Context, what string, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, database.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": what + " already exists"})
	default:
		logging.Log(logging.Fields{
			Service:   "api",
			RequestID: c.GetString("request_id"),
			Step:      c.FullPath(),
			Status:    "error",
			Error:     err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) dashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	products, err := h.Repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := h.Repo.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	summary := models.BuildDashboard(products, lines, h.LowStockThreshold)
	return &summary, nil
}

// invalidateDashboard drops the cached dashboard after a ledger or stock
// change. Failures only delay freshness until the cache TTL expires.
func (h *Handler) invalidateDashboard(c *gin.Context) {
	if err := h.Dashboard.Invalidate(c.Request.Context()); err != nil {
		logging.Log(logging.Fields{
			Service:   "api",
			RequestID: c.GetString("request_id"),
			Step:      "dashboard_invalidate",
			Status:    "error",
			Error:     err.Error(),
		})
	}
}
