package httpserver

import (
	"context"
	"log"

	"harvest-direct/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router depends on. Handlers talk to these
// interfaces only; wiring happens in cmd/api.
type Deps struct {
	SessionSvc   sessionResolver
	CartSvc      cartService
	InventorySvc inventoryService
	ProductSvc   productService
	CORSOrigins  []string
}

type sessionResolver interface {
	Resolve(incoming string) (token string, created bool)
}

type cartService interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
	AddItem(ctx context.Context, token string, productID int64, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, token string, productID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, token string, productID int64) (*domain.Cart, error)
}

type inventoryService interface {
	ValidateStock(ctx context.Context, productID int64, quantity int) (*domain.StockCheck, error)
	SetStock(ctx context.Context, productID int64, quantity int) (*domain.Product, error)
	Decrement(ctx context.Context, productID int64, quantity int) (*domain.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockProduct, error)
}

type productService interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 0 || (len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/featured", listFeaturedProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))

	cartGroup := router.Group("/cart", sessionMiddleware(deps.SessionSvc))
	cartGroup.GET("", getCartHandler(deps.CartSvc))
	cartGroup.POST("/items", addCartItemHandler(deps.CartSvc))
	cartGroup.PUT("/items/:productId", updateCartItemHandler(deps.CartSvc))
	cartGroup.DELETE("/items/:productId", removeCartItemHandler(deps.CartSvc))

	admin := router.Group("/admin")
	admin.POST("/validate-stock", validateStockHandler(deps.InventorySvc))
	admin.PUT("/products/:id/stock", setStockHandler(deps.InventorySvc))
	admin.POST("/products/:id/decrement", decrementStockHandler(deps.InventorySvc))
	admin.GET("/low-stock", lowStockHandler(deps.InventorySvc))

	return router, nil
}
