package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"scankey-catalog/internal/catalog"
	"scankey-catalog/internal/config"
	"scankey-catalog/internal/database"
	"scankey-catalog/internal/handler"
	"scankey-catalog/internal/repository"
	"scankey-catalog/internal/service"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	slog.Info("starting scankey-catalog")

	ctx := context.Background()

	// Catalog blobs: local files or redis
	var blobs catalog.BlobReader = catalog.FileBlobs{Root: cfg.Catalog.Dir}
	var rdb *redis.Client
	if cfg.Catalog.BlobBackend == "redis" {
		client, err := catalog.NewRedisClient(ctx, cfg.Redis.Client())
		if err != nil {
			slog.Warn("redis unavailable, catalog blobs will be skipped", "error", err)
		} else {
			rdb = client
			defer rdb.Close()
			slog.Info("connected to redis", "host", cfg.Redis.Host, "port", cfg.Redis.Port)
		}
		blobs = redisOrEmpty(rdb, cfg.Redis.KeyPrefix)
	}
	sources := cfg.Catalog.Layout().Sources(blobs)

	// Optional Postgres source
	var db *pgxpool.Pool
	if cfg.Catalog.DBEnabled {
		slog.Info("connecting to database", "host", cfg.Database.Host, "database", cfg.Database.Name)
		pool, err := database.Connect(ctx, cfg.Database.Connection())
		if err != nil {
			slog.Warn("database unavailable, postgres catalog source disabled", "error", err)
		} else {
			db = pool
			defer db.Close()
			if err := database.RunMigrations(ctx, db); err != nil {
				slog.Warn("catalog migrations failed", "error", err)
			}
			sources = append(sources, repository.NewCatalogRepo(db))
		}
	}

	store := catalog.NewStore(logger, sources...)
	catalogSvc := service.NewCatalogService(store, cfg.Match.Options())

	// Warm the catalog; requests arriving first wait for the same load
	go catalogSvc.Engine(ctx)

	healthHandler := handler.NewHealthHandler(catalogSvc, db)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Post("/match", catalogHandler.Match)
		r.Post("/hint", catalogHandler.Hint)
		r.Get("/display/{ref}", catalogHandler.Display)
		r.Get("/stats", catalogHandler.Stats)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server started", "port", cfg.APIPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down server", "error", err)
	}

	slog.Info("server stopped")
}

// redisOrEmpty keeps the source list intact when redis is down; every read
// then reports the source as absent
func redisOrEmpty(rdb *redis.Client, prefix string) catalog.BlobReader {
	if rdb == nil {
		return missingBlobs{}
	}
	return catalog.NewRedisBlobs(rdb, prefix)
}

type missingBlobs struct{}

func (missingBlobs) ReadBlob(_ context.Context, key string) ([]byte, error) {
	return nil, catalog.ErrSourceNotFound
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
