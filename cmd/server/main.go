package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/cache"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/config"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/database"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/handlers"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/logging"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/middleware"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/realtime"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
	}

	logger.Info("Starting connection service...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()

	dbAdapter := repository.NewPoolAdapter(db.Pool)
	connectionRepo := repository.NewConnectionRepository(dbAdapter)
	notificationRepo := repository.NewNotificationRepository(dbAdapter)

	cacheStore := cache.NewStore(cache.NewRedisKV(redisDB.Client))
	projectCache := cache.NewProjectCache(cacheStore).
		WithTTLs(cfg.Cache.EntityTTL, cfg.Cache.ListTTL, cfg.Cache.RecommendationTTL)

	hub := realtime.NewHub()
	notificationService := services.NewNotificationService(notificationRepo)
	dispatcher := services.NewDispatcher(notificationService)
	connectionService := services.NewConnectionService(connectionRepo, dispatcher, hub, projectCache)

	healthHandler := handlers.NewHealthHandler(db, redisDB)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	identity := middleware.NewIdentityMiddleware()
	requestLogger := middleware.NewRequestLogger(logger)
	requireUser := func(h http.HandlerFunc) http.Handler {
		return identity.Require(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	mux.Handle("POST /api/connections", requireUser(connectionHandler.Create))
	mux.Handle("GET /api/connections/received", requireUser(connectionHandler.ListReceived))
	mux.Handle("GET /api/connections/sent", requireUser(connectionHandler.ListSent))
	mux.Handle("GET /api/connections/accepted", requireUser(connectionHandler.ListAccepted))
	mux.Handle("GET /api/connections/stats", requireUser(connectionHandler.Stats))
	mux.Handle("GET /api/connections/{id}", requireUser(connectionHandler.Get))
	mux.Handle("POST /api/connections/{id}/accept", requireUser(connectionHandler.Accept))
	mux.Handle("POST /api/connections/{id}/reject", requireUser(connectionHandler.Reject))
	mux.Handle("POST /api/connections/{id}/block", requireUser(connectionHandler.Block))
	mux.Handle("DELETE /api/connections/{id}", requireUser(connectionHandler.Delete))

	mux.Handle("GET /api/notifications", requireUser(notificationHandler.List))
	mux.Handle("GET /api/notifications/unread-count", requireUser(notificationHandler.UnreadCount))
	mux.Handle("PUT /api/notifications/{id}/read", requireUser(notificationHandler.MarkRead))
	mux.Handle("PUT /api/notifications/read-all", requireUser(notificationHandler.MarkAllRead))
	mux.Handle("DELETE /api/notifications/{id}", requireUser(notificationHandler.Delete))

	mux.Handle("GET /ws", requireUser(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := handlers.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		hub.ServeWS(w, r, userID)
	}))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      requestLogger.Apply(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{"addr": addr})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
