package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const sessionHeader = "X-Session-Id"

const sessionTokenKey = "sessionToken"

// sessionMiddleware guarantees every cart request carries exactly one
// token. A generated token is echoed back via the same header so the
// client can persist and resend it.
func sessionMiddleware(resolver sessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := resolver.Resolve(c.GetHeader(sessionHeader))
		c.Set(sessionTokenKey, token)
		c.Header(sessionHeader, token)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}

type addItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), sessionToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId and quantity are required")
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), sessionToken(c), req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func updateCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathID(c, "productId")
		if !ok {
			return
		}
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity is required")
			return
		}
		cart, err := svc.UpdateItemQuantity(c.Request.Context(), sessionToken(c), productID, *req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathID(c, "productId")
		if !ok {
			return
		}
		cart, err := svc.RemoveItem(c.Request.Context(), sessionToken(c), productID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
