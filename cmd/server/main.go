package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/palengke/marketplace-api/internal/api"
	"github.com/palengke/marketplace-api/internal/core/service"
	"github.com/palengke/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/palengke/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/palengke/marketplace-api/internal/infrastructure/db/redis"
	"github.com/palengke/marketplace-api/internal/infrastructure/email"
	"github.com/palengke/marketplace-api/internal/infrastructure/storage"
	"github.com/palengke/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	// --- Email delivery ---
	mailer := email.NewMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	dispatcher := email.NewDispatcher(cfg.EmailWorkers, mailer, logger.Component("email"))
	dispatcher.Start(ctx)

	// --- Uploaded images ---
	images, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload directory unavailable")
	}

	// --- Repositories and services ---
	users := mongodb.NewUserRepository(db)
	products := mongodb.NewProductRepository(db)
	carts := mongodb.NewCartRepository(db)
	orders := mongodb.NewOrderRepository(db)
	idempotency := redisdb.NewIdempotencyStore(redisClient)

	authService := service.NewAuthService(users, dispatcher, service.AuthConfig{
		JWTSecret:   cfg.JWTSecret,
		EmailSecret: cfg.JWTEmailSecret,
		FrontendURL: cfg.FrontendURL,
	}, logger.Component("auth"))
	userService := service.NewUserService(users, dispatcher, logger.Component("user"))
	productService := service.NewProductService(products, users, dispatcher, logger.Component("product"))
	cartService := service.NewCartService(carts, products, logger.Component("cart"))
	orderService := service.NewOrderService(orders, carts, products, idempotency, logger.Component("order"))

	e := api.NewRouter(api.RouterDeps{
		Mongo:          db,
		Redis:          redisClient,
		AuthService:    authService,
		UserService:    userService,
		ProductService: productService,
		CartService:    cartService,
		OrderService:   orderService,
		Users:          users,
		Images:         images,
		JWTSecret:      cfg.JWTSecret,
		UploadDir:      cfg.UploadDir,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// Drain in-flight requests before the deferred teardown of Mongo and
	// Redis; the email workers stop with the signal context.
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(drainCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
