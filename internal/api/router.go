package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/palengke/marketplace-api/internal/api/handler"
	"github.com/palengke/marketplace-api/internal/api/middleware"
	"github.com/palengke/marketplace-api/internal/core/ports"
	"github.com/palengke/marketplace-api/pkg/logger"
)

// RouterDeps carries everything the route table needs. Services are built in
// main so the router stays a pure wiring layer.
type RouterDeps struct {
	Mongo *mongo.Database
	Redis *redis.Client

	AuthService    ports.AuthService
	UserService    ports.UserService
	ProductService ports.ProductService
	CartService    ports.CartService
	OrderService   ports.OrderService

	Users  ports.UserRepository
	Images ports.ImageStore

	JWTSecret string
	UploadDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	authRequired := middleware.Auth(deps.JWTSecret)
	sellerOnly := middleware.RequireSeller(deps.Users)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	productHandler := handler.NewProductHandler(deps.ProductService, deps.Images)
	cartHandler := handler.NewCartHandler(deps.CartService)
	orderHandler := handler.NewOrderHandler(deps.OrderService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.GET("/auth/verify-email", authHandler.VerifyEmail)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.GET("/auth/account", authHandler.GetAccount, authRequired)
	e.DELETE("/auth/account", authHandler.DeleteAccount, authRequired)
	e.PUT("/auth/account/change-password", authHandler.ChangePassword, authRequired)

	// --- Profile routes ---
	e.GET("/userinfo", userHandler.GetProfile, authRequired)
	e.PUT("/userinfo", userHandler.UpdateProfile, authRequired)

	// --- Catalog routes. Reads are public, writes are seller-gated. ---
	e.GET("/products", productHandler.List)
	e.GET("/products/search", productHandler.Search)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, authRequired, sellerOnly)
	e.PUT("/products/:id", productHandler.Update, authRequired, sellerOnly)
	e.DELETE("/products/:id", productHandler.Delete, authRequired, sellerOnly)
	e.POST("/products/:id/order", productHandler.Decrement, authRequired)

	// --- Cart routes ---
	e.POST("/cart", cartHandler.AddItem, authRequired)
	e.GET("/cart", cartHandler.GetCart, authRequired)
	e.DELETE("/cart/:productId", cartHandler.RemoveItem, authRequired)

	// --- Order routes ---
	e.POST("/order/order", orderHandler.PlaceOrder, authRequired)
	e.GET("/order/orders", orderHandler.ListOrders, authRequired)

	// --- Uploaded product images ---
	e.Static("/uploads", deps.UploadDir)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
