package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ken-eddy/salesApp/controllers"
	"github.com/ken-eddy/salesApp/middleware"
)

func SetupRoutes(router *gin.Engine, h *controllers.Handler) {
	router.GET("/health", h.Health)

	api := router.Group("/api")

	// Product routes
	products := api.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.POST("", h.CreateProduct)
		products.GET("/low-stock", h.LowStockItems)
		products.GET("/barcode/:barcode", h.GetProductByBarcode)
		products.GET("/:id", h.GetProduct)
		products.POST("/:id/restock", h.RestockProduct)
	}

	// Supplier routes
	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", h.GetSuppliers)
		suppliers.POST("", h.CreateSupplier)
	}

	// Sales routes
	sales := api.Group("/sales")
	{
		sales.POST("/checkout", h.CreateSale)
		sales.GET("", h.GetSales)
		sales.GET("/orders/recent", h.GetRecentOrders)
		sales.GET("/orders/:invoice", h.GetOrder)
		sales.GET("/lines/:id", h.GetSaleLine)
		sales.PUT("/lines/:id", middleware.RoleMiddleware("admin"), h.UpdateSaleLine)
		sales.DELETE("/lines/:id", middleware.RoleMiddleware("admin"), h.DeleteSaleLine)
	}

	api.GET("/dashboard", h.GetDashboard)
}
