package httpserver

import (
	"net/http"
	"strconv"

	"harvest-direct/internal/domain"
	"github.com/gin-gonic/gin"
)

type validateStockRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type setStockRequest struct {
	StockQuantity *int `json:"stockQuantity" binding:"required"`
}

type decrementStockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func validateStockHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId is required")
			return
		}
		check, err := svc.ValidateStock(c.Request.Context(), req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, check)
	}
}

func setStockHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req setStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "stockQuantity is required")
			return
		}
		product, err := svc.SetStock(c.Request.Context(), id, *req.StockQuantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func decrementStockHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req decrementStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity is required")
			return
		}
		product, err := svc.Decrement(c.Request.Context(), id, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func lowStockHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := 10
		if raw := c.Query("threshold"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(c, "threshold must be an integer")
				return
			}
			threshold = parsed
		}
		products, err := svc.ListLowStock(c.Request.Context(), threshold)
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.LowStockProduct{}
		}
		c.JSON(http.StatusOK, gin.H{"lowStockProducts": products})
	}
}
