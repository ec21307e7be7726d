package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunrisestore/storefront-backend/internal/api/handlers"
	"github.com/sunrisestore/storefront-backend/internal/api/middleware"
	"github.com/sunrisestore/storefront-backend/internal/config"
	"github.com/sunrisestore/storefront-backend/internal/health"
	"github.com/sunrisestore/storefront-backend/internal/metrics"
	repository "github.com/sunrisestore/storefront-backend/internal/repositories"
	service "github.com/sunrisestore/storefront-backend/internal/services"
	"github.com/sunrisestore/storefront-backend/pkg/affirm"
	"github.com/sunrisestore/storefront-backend/pkg/email"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Redis setup (only server-side state: guest carts)
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Provider clients per environment. A missing credential pair leaves the
	// client nil and the affected endpoints answer with a config error.
	clientFor := func(env string) (affirm.Client, error) {

		keys := cfg.Affirm.Keys(env)
		if keys.PublicKey == "" || keys.PrivateKey == "" {
			return nil, fmt.Errorf("affirm credentials not configured for env %q", env)
		}

		return affirm.NewClient(affirm.Options{
			BaseURL:    cfg.Affirm.BaseURL(env),
			PublicKey:  keys.PublicKey,
			PrivateKey: keys.PrivateKey,
		})
	}

	defaultClient, err := clientFor(cfg.Affirm.Env)
	if err != nil {
		slog.Warn("Affirm credentials missing for default environment; checkout is disabled",
			slog.String("env", cfg.Affirm.Env),
			slog.String("public_key", config.Redact(cfg.Affirm.PublicKey)),
			slog.String("private_key", config.Redact(cfg.Affirm.PrivateKey)))
	} else {
		slog.Info("Affirm client configured",
			slog.String("env", cfg.Affirm.Env),
			slog.String("api", cfg.Affirm.BaseURL(cfg.Affirm.Env)),
			slog.String("public_key", config.Redact(cfg.Affirm.PublicKey)),
			slog.String("private_key", config.Redact(cfg.Affirm.PrivateKey)),
			slog.String("site", cfg.Store.SiteBaseURL))
	}

	emailService := email.NewService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	cartRepo := repository.NewCartRepository(redisClient, cfg.Store.CartTTL)
	cartService := service.NewCartService(cartRepo)
	cartHandler := handlers.NewCartHandler(cartService)
	productService := service.NewProductService(service.Catalog())
	productHandler := handlers.NewProductHandler(productService)
	notificationService := service.NewNotificationService(emailService, cfg.SendGrid, cfg.Store.Name)
	contactHandler := handlers.NewContactHandler(notificationService)
	checkoutService := service.NewCheckoutService(defaultClient, cfg.Store)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cartService)
	captureService := service.NewCaptureService(defaultClient, clientFor, cfg.Affirm.Env, cartService, notificationService)
	captureHandler := handlers.NewCaptureHandler(captureService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error building health checks", "error", err.Error())
		os.Exit(1)
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/checkout/sessions", checkoutHandler.CreateSession())
	routerMux.HandleFunc("POST /api/v1/checkout/capture", captureHandler.AuthorizeAndCapture())
	routerMux.HandleFunc("POST /api/v1/charges/capture", captureHandler.CaptureOnly())
	routerMux.HandleFunc("POST /api/v1/carts", cartHandler.CreateCart())
	routerMux.HandleFunc("GET /api/v1/carts/{id}", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/carts/{id}/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/carts/{id}/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}/items/{sku}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/carts/{id}/checkout", checkoutHandler.CheckoutCart())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{slug}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/contact", contactHandler.SubmitContact())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = middleware.CORS(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
