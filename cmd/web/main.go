package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mistica/api/handlers"
	"mistica/internal/config"
	"mistica/internal/jobs"
	"mistica/internal/services"
	"mistica/internal/store"
)

func main() {
	configPath := flag.String("config", "mistica.yml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	initLogger(cfg.Logger.Mode)
	defer func() { _ = zap.L().Sync() }()

	// Storage and services
	memory := store.NewMemory()
	if cfg.Store.Seed {
		memory.Seed()
	}

	notificationService := services.NewNotificationService(memory)
	cartService := services.NewCartService(memory)
	couponService := services.NewCouponService(memory)
	catalogService := services.NewCatalogService(memory, memory)
	userService := services.NewUserService(memory, memory, memory)
	reviewService := services.NewReviewService(memory, memory)
	chatService := services.NewChatService(memory)
	orderService := services.NewOrderService(memory, memory, cartService, couponService, notificationService, cfg.Store.Currency)

	router := setupRouter(
		handlers.NewAuthHandler(userService),
		handlers.NewProductHandler(catalogService),
		handlers.NewCartHandler(cartService, catalogService),
		handlers.NewCouponHandler(couponService),
		handlers.NewOrderHandler(orderService),
		handlers.NewUserHandler(userService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewChatHandler(chatService),
	)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runner := jobs.NewRunner(cfg.Jobs, couponService, chatService)
	if err := runner.Start(); err != nil {
		zap.L().Fatal("starting background jobs", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		zap.L().Info("server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		zap.L().Info("shutting down")
		runner.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		zap.L().Fatal("server error", zap.Error(err))
	}
	zap.L().Info("server stopped")
}

func initLogger(mode string) {
	var zapConfig zap.Config
	if mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	logger, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

func setupRouter(
	authHandler *handlers.AuthHandler,
	productHandler *handlers.ProductHandler,
	cartHandler *handlers.CartHandler,
	couponHandler *handlers.CouponHandler,
	orderHandler *handlers.OrderHandler,
	userHandler *handlers.UserHandler,
	reviewHandler *handlers.ReviewHandler,
	notificationHandler *handlers.NotificationHandler,
	chatHandler *handlers.ChatHandler,
) *gin.Engine {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeatured)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id/stock", productHandler.UpdateStock)
		}

		api.GET("/categories", productHandler.GetCategories)

		cart := api.Group("/cart")
		{
			cart.GET("/:userId", cartHandler.GetCart)
			cart.POST("/add", cartHandler.AddToCart)
			cart.PUT("/update/:id", cartHandler.UpdateCartItem)
			cart.DELETE("/remove/:id", cartHandler.RemoveCartItem)
		}

		coupons := api.Group("/coupons")
		{
			coupons.POST("/validate", couponHandler.Validate)
			coupons.POST("/apply", couponHandler.Apply)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.Checkout)
			orders.GET("/:userId", orderHandler.GetUserOrders)
			orders.GET("/detail/:id", orderHandler.GetOrder)
			orders.PUT("/:id/status", orderHandler.UpdateStatus)
		}

		addresses := api.Group("/addresses")
		{
			addresses.GET("/:userId", userHandler.GetAddresses)
			addresses.POST("", userHandler.CreateAddress)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("/:userId", userHandler.GetFavorites)
			favorites.POST("", userHandler.AddFavorite)
			favorites.DELETE("/:userId/:productId", userHandler.RemoveFavorite)
		}

		reviews := api.Group("/reviews")
		{
			reviews.POST("", reviewHandler.AddReview)
			reviews.POST("/:id/helpful", reviewHandler.MarkHelpful)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("/:userId", notificationHandler.List)
			notifications.POST("", notificationHandler.Create)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.PUT("/read-all/:userId", notificationHandler.MarkAllRead)
		}

		chat := api.Group("/chat/sessions")
		{
			chat.POST("", chatHandler.OpenSession)
			chat.GET("", chatHandler.ListSessions)
			chat.GET("/:id/messages", chatHandler.ListMessages)
			chat.POST("/:id/messages", chatHandler.PostMessage)
			chat.PUT("/:id/close", chatHandler.CloseSession)
		}

		api.GET("/health", productHandler.HealthCheck)
	}

	return router
}
