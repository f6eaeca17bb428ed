package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/domain"
	authsvc "storefront-api/internal/service/auth"
	ordersvc "storefront-api/internal/service/order"
	productsvc "storefront-api/internal/service/product"
)

// Service interfaces consumed by the handlers; kept narrow so tests stub
// them without real dependencies.

type authService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
	VerifyCredential(ctx context.Context, token string) (*authsvc.Identity, error)
}

type cartService interface {
	AddItem(ctx context.Context, userID, itemID, size string) error
	SetQuantity(ctx context.Context, userID, itemID, size string, quantity int) error
	Get(ctx context.Context, userID string) (domain.CartData, error)
}

type orderService interface {
	PlaceCOD(ctx context.Context, userID string, in ordersvc.PlaceInput) (*domain.Order, error)
	PlaceCheckout(ctx context.Context, userID string, in ordersvc.PlaceInput, origin string) (string, error)
	VerifyCheckout(ctx context.Context, userID, orderID string, success bool) error
	PlaceIntent(ctx context.Context, userID string, in ordersvc.PlaceInput) (*ordersvc.IntentResult, error)
	VerifyIntent(ctx context.Context, userID, intentID string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type productService interface {
	Add(ctx context.Context, in productsvc.AddInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Remove(ctx context.Context, id string) error
}

// Deps carries the services the router needs.
type Deps struct {
	AuthSvc    authService
	CartSvc    cartService
	OrderSvc   orderService
	ProductSvc productService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "token")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	users := api.Group("/user")
	users.POST("/register", registerHandler(deps.AuthSvc))
	users.POST("/login", loginHandler(deps.AuthSvc))
	users.POST("/admin", adminLoginHandler(deps.AuthSvc))

	products := api.Group("/product")
	products.GET("/list", listProductsHandler(deps.ProductSvc))
	products.POST("/single", singleProductHandler(deps.ProductSvc))
	products.POST("/add", authAdmin(deps.AuthSvc), addProductHandler(deps.ProductSvc))
	products.POST("/remove", authAdmin(deps.AuthSvc), removeProductHandler(deps.ProductSvc))

	carts := api.Group("/cart", authUser(deps.AuthSvc))
	carts.POST("/add", addToCartHandler(deps.CartSvc))
	carts.POST("/update", updateCartHandler(deps.CartSvc))
	carts.POST("/get", getCartHandler(deps.CartSvc))

	orders := api.Group("/order")
	orders.POST("/list", authAdmin(deps.AuthSvc), listOrdersHandler(deps.OrderSvc))
	orders.POST("/status", authAdmin(deps.AuthSvc), orderStatusHandler(deps.OrderSvc))

	userOrders := orders.Group("", authUser(deps.AuthSvc))
	userOrders.POST("/place", placeOrderHandler(deps.OrderSvc))
	userOrders.POST("/checkout", checkoutHandler(deps.OrderSvc))
	userOrders.POST("/verify-checkout", verifyCheckoutHandler(deps.OrderSvc))
	userOrders.POST("/intent", intentHandler(deps.OrderSvc))
	userOrders.POST("/verify-intent", verifyIntentHandler(deps.OrderSvc))
	userOrders.POST("/userorders", userOrdersHandler(deps.OrderSvc))

	return router, nil
}
