package router

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ghorerbazar.top/organic/storefront/pkg/cart"
	"ghorerbazar.top/organic/storefront/pkg/catalog"
	"ghorerbazar.top/organic/storefront/pkg/checkout"
	"ghorerbazar.top/organic/storefront/pkg/models"
)

// Store is the session persistence the router needs: the cart snapshot plus
// the last confirmed order.
type Store interface {
	cart.Store
	SaveLastOrder(ctx context.Context, sessionID string, order *models.OrderConfirmation) error
	LoadLastOrder(ctx context.Context, sessionID string) (*models.OrderConfirmation, error)
}

// ProductCache keeps product-detail lookups warm. Optional; nil disables
// caching.
type ProductCache interface {
	CacheProduct(ctx context.Context, product *models.Product) error
	GetCachedProduct(ctx context.Context, productID int) (*models.Product, error)
}

// API bundles everything the handlers reach for.
type API struct {
	Catalog  *catalog.Client
	Store    Store
	Cache    ProductCache
	Checkout *checkout.Manager
}

func NewEngine(api *API) *gin.Engine {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "https://organicbazar.top"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(SessionMiddleware())

	registerRoutes(engine, api)
	return engine
}

func registerRoutes(engine *gin.Engine, api *API) {
	engine.GET("/health", api.HealthCheck)

	engine.GET("/", api.Home)
	engine.GET("/products", api.Products)
	engine.GET("/products/:id", api.ProductDetail)
	engine.GET("/categories", api.Categories)
	engine.GET("/category/:slug", api.CategoryProducts)
	engine.GET("/search", api.Search)
	engine.GET("/search/autocomplete", api.Autocomplete)

	cartGroup := engine.Group("/cart")
	{
		cartGroup.GET("", api.GetCart)
		cartGroup.POST("/items", api.AddToCart)
		cartGroup.PUT("/items/:id", api.UpdateCartLine)
		cartGroup.DELETE("/items/:id", api.RemoveCartLine)
		cartGroup.DELETE("/clear", api.ClearCart)
	}

	checkoutGroup := engine.Group("/checkout")
	{
		checkoutGroup.POST("", api.BeginCheckout)
		checkoutGroup.POST("/customer", api.SubmitCustomerInfo)
		checkoutGroup.GET("/payment", api.PaymentInstructions)
		checkoutGroup.POST("/payment", api.ConfirmPayment)
		checkoutGroup.POST("/cancel", api.CancelCheckout)
		checkoutGroup.GET("/confirmation", api.Confirmation)
	}

	engine.NoRoute(api.NotFound)
}
