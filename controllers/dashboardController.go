package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	summary, err := h.Dashboard.Get(c.Request.Context(), h.dashboardSummary)
	if err != nil {
		handleStoreError(c, "Dashboard", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
