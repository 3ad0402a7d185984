package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/sofialindqvist/garmentry/internal/catalog"
	"github.com/sofialindqvist/garmentry/internal/config"
	"github.com/sofialindqvist/garmentry/internal/handlers"
	"github.com/sofialindqvist/garmentry/internal/store"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init snapshot store
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to init schema", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Kick off the one catalog fetch. The API serves a loading state
	// until it lands; a failure leaves the grid empty until restart.
	cat := &catalog.Catalog{}
	go cat.Load(context.Background(), catalog.NewClient(cfg.CatalogURL))

	// 5. Setup Handlers
	shop := &handlers.ShopHandler{
		Store:        db,
		Catalog:      cat,
		SessionStore: sessionStore,
		Visitors:     handlers.NewVisitors(db),
	}

	mux := http.NewServeMux()

	// Rate limit order completion (1 per source per 10s)
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	mux.HandleFunc("GET /api/csrf", shop.CSRFToken)

	mux.HandleFunc("GET /api/products", shop.Products)
	mux.HandleFunc("GET /api/products/{id}", shop.ProductByID)
	mux.HandleFunc("GET /api/categories", shop.Categories)
	mux.HandleFunc("DELETE /api/filters", shop.ClearFilters)

	mux.HandleFunc("GET /api/cart", shop.Cart)
	mux.HandleFunc("POST /api/cart/add", shop.AddToCart)
	mux.HandleFunc("POST /api/cart/quantity", shop.UpdateQuantity)
	mux.HandleFunc("POST /api/cart/remove", shop.RemoveFromCart)

	mux.HandleFunc("GET /api/wishlist", shop.Wishlist)
	mux.HandleFunc("POST /api/wishlist/toggle", shop.ToggleWishlist)

	mux.HandleFunc("GET /api/checkout", shop.Checkout)
	mux.HandleFunc("POST /api/checkout/field", shop.CheckoutField)
	mux.HandleFunc("POST /api/checkout/next", shop.CheckoutNext)
	mux.HandleFunc("POST /api/checkout/back", shop.CheckoutBack)
	mux.HandleFunc("POST /api/checkout/cancel", shop.CheckoutCancel)
	mux.HandleFunc("POST /api/checkout/complete", rateLimiter.Middleware(shop.CheckoutComplete))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "catalog", cfg.CatalogURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	if err := db.Close(); err != nil {
		slog.Error("Failed to close store", "error", err)
	}

	slog.Info("Server exited gracefully.")
}
