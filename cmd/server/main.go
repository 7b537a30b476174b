package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resumequiz/internal/catalog"
	"resumequiz/internal/config"
	"resumequiz/internal/database"
	"resumequiz/internal/extractor"
	"resumequiz/internal/handlers"
	"resumequiz/internal/logger"
	"resumequiz/internal/repository"
	"resumequiz/internal/service"
	"resumequiz/internal/session"
	"resumequiz/internal/storage"
	"resumequiz/internal/templates"
)

func main() {
	host := flag.String("host", "", "Listen host (overrides SERVER_HOST)")
	port := flag.String("port", "", "Listen port (overrides SERVER_PORT)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *debug {
		cfg.Server.Debug = true
	}

	level := cfg.Log.Level
	if cfg.Server.Debug {
		level = "debug"
	}
	appLogger, err := logger.NewStructured(level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	// Initialize database (sqlite, postgres or mysql)
	db, err := database.InitializeWithConfig(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	applied, err := db.RunMigrations(ctx)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	appLogger.Info("database ready", map[string]interface{}{
		"type":       cfg.Database.Type,
		"migrations": applied,
	})

	cat, err := catalog.Default()
	if err != nil {
		log.Fatalf("Failed to load skill catalog: %v", err)
	}

	tmpl, err := templates.Load()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	files, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}
	archiver, err := storage.NewArchiver(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to configure upload archive: %v", err)
	}

	store, closeStore := newSessionStore(ctx, cfg, appLogger)
	defer closeStore()
	sessions := service.NewSessionManager(store, cfg.Session.Duration)

	// Initialize services
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, sessions, appLogger)
	workflowService := service.NewWorkflowService(cat, extractor.New(), files, archiver, sessions, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessions, tmpl, cfg.Session.CookieName, appLogger)
	workflowHandler := handlers.NewWorkflowHandler(workflowService, sessions, tmpl, cfg.Session.CookieName, cfg.Storage.MaxUploadSize, appLogger)

	mux := handlers.NewRouter(authHandler, workflowHandler, promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handlers.Logging(appLogger)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("server starting", map[string]interface{}{
			"addr":    server.Addr,
			"skills":  len(cat.Keys()),
			"backend": cfg.Session.Backend,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", map[string]interface{}{"error": err})
	}
}

// newSessionStore picks the configured session backend. The returned func
// releases it.
func newSessionStore(ctx context.Context, cfg *config.Config, appLogger logger.Logger) (session.Store, func()) {
	if strings.EqualFold(cfg.Session.Backend, "redis") {
		store, err := session.NewRedisStore(ctx, session.NewRedisClient(cfg.Redis))
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		return store, func() { store.Close() }
	}

	store := session.NewMemoryStore()
	done := make(chan struct{})
	go cleanupExpiredSessions(store, appLogger, done)
	return store, func() { close(done) }
}

// cleanupExpiredSessions periodically removes expired in-memory sessions
func cleanupExpiredSessions(store *session.MemoryStore, appLogger logger.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if removed := store.DeleteExpired(); removed > 0 {
				appLogger.Debug("expired sessions cleaned up", map[string]interface{}{"removed": removed})
			}
		}
	}
}
