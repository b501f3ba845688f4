package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ken-eddy/salesApp/models"
)

func (h *Handler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.Repo.ListSuppliers(c.Request.Context())
	if err != nil {
		handleStoreError(c, "Suppliers", err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *Handler) CreateSupplier(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"omitempty,email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier := models.Supplier{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := h.Repo.CreateSupplier(c.Request.Context(), &supplier); err != nil {
		handleStoreError(c, "Supplier", err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}
