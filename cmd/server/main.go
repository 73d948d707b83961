package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/checkout"
	"github.com/ashrithps/BrekkieBowlz/internal/config"
	"github.com/ashrithps/BrekkieBowlz/internal/handlers"
	"github.com/ashrithps/BrekkieBowlz/internal/images"
	"github.com/ashrithps/BrekkieBowlz/internal/menu"
	"github.com/ashrithps/BrekkieBowlz/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
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

	// 1. Load Configuration (.env first, then the environment)
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment", "error", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init customer-info store
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to initialize schema", "error", err)
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

	// 4. Domain services
	menuService := menu.NewService(cfg.MenuWebhookURL)
	var notifier *checkout.Notifier
	if cfg.OrderWebhookURL != "" {
		notifier = checkout.NewNotifier(cfg.OrderWebhookURL, nil)
	}
	var blobClient *images.Client
	if cfg.BlobEndpoint != "" {
		blobClient = images.NewClient(cfg.BlobEndpoint, cfg.BlobToken, nil)
	}

	// 5. Setup Handlers
	menuHandler := &handlers.MenuHandler{
		Menu:   menuService,
		Config: cfg,
	}
	cartHandler := &handlers.CartHandler{
		Menu:         menuService,
		SessionStore: sessionStore,
	}
	customerHandler := &handlers.CustomerHandler{
		Store:        db,
		SessionStore: sessionStore,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		Menu:         menuService,
		Notifier:     notifier,
		Store:        db,
		SessionStore: sessionStore,
		Config:       cfg,
	}
	imagesHandler := &handlers.ImagesHandler{
		Blob: blobClient,
	}
	mux := http.NewServeMux()

	// Rate Limiter (1 checkout per 10 seconds per address)
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Storefront
	mux.HandleFunc("GET /api/menu", menuHandler.Catalog)
	mux.HandleFunc("GET /api/customer", customerHandler.Get)
	mux.HandleFunc("PUT /api/customer", customerHandler.Put)

	// Cart
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("POST /api/cart/ops", cartHandler.ApplyOp)

	// Checkout
	mux.HandleFunc("POST /api/checkout/upi", rateLimiter.Middleware(checkoutHandler.UPI))
	mux.HandleFunc("GET /api/checkout/upi/qr", checkoutHandler.UPIQRCode)
	mux.HandleFunc("POST /api/checkout/upi/confirm", checkoutHandler.Confirm)
	mux.HandleFunc("POST /api/checkout/whatsapp", rateLimiter.Middleware(checkoutHandler.WhatsApp))

	// Menu image management (blob store proxy)
	mux.HandleFunc("POST /api/images", imagesHandler.Upload)
	mux.HandleFunc("GET /api/images", imagesHandler.List)
	mux.HandleFunc("DELETE /api/images", imagesHandler.Delete)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"X-CSRF-Token"},
		AllowCredentials: true,
	}

	// Wrap the router with middleware chain
	// Chain: Logger -> Security Headers -> CORS -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			cors.New(corsOptions).Handler(
				CSRF(mux),
			),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Goroutine to start the server
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	if err := db.Close(); err != nil {
		slog.Warn("Failed to close store", "error", err)
	}

	slog.Info("Server exited gracefully.")
}
