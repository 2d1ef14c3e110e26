package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mari/gift-list-website/internal/api"
	"github.com/mari/gift-list-website/internal/config"
	"github.com/mari/gift-list-website/internal/live"
	"github.com/mari/gift-list-website/internal/logging"
	"github.com/mari/gift-list-website/internal/media"
	"github.com/mari/gift-list-website/internal/ratelimit"
	"github.com/mari/gift-list-website/internal/repository/postgres"
	"github.com/mari/gift-list-website/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFile)

	// With incomplete configuration the server still starts, but every route
	// answers with the configuration warning instead of content.
	if missing := cfg.MissingValues(); len(missing) > 0 {
		log.WithField("missing", missing).Error("backend configuration incomplete")
		runServer(cfg, log, api.NewConfigWarningRouter(missing), func() {})
		return
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	repos := postgres.NewRepositories(db)

	// Media storage for profile and gift images
	mediaStore, err := media.NewStore(context.Background(), media.Options{
		Endpoint:  cfg.MediaEndpoint,
		AccessKey: cfg.MediaAccessKey,
		SecretKey: cfg.MediaSecretKey,
		Bucket:    cfg.MediaBucket,
		UseSSL:    cfg.MediaUseSSL,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize media storage")
	}

	// Shared request guard: rate limiter and cache
	limiter := ratelimit.NewLimiter()
	cache := ratelimit.NewCache()

	services := service.NewServices(repos, limiter, cache, cfg, log)

	// Live update hub for open public pages
	hub := live.NewHub(log)
	go hub.Run()

	router := api.NewRouter(services, hub, mediaStore, log)
	runServer(cfg, log, router, hub.Stop)
}

func runServer(cfg *config.Config, log *logrus.Logger, handler http.Handler, onShutdown func()) {
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("shutting down server")
	onShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Printf("server stopped")
}
