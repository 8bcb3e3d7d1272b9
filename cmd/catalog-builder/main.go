package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"scankey-catalog/internal/catalog"
	"scankey-catalog/internal/database"
	"scankey-catalog/internal/model"
	"scankey-catalog/internal/repository"
	"scankey-catalog/internal/seed"
)

func main() {
	var (
		seedPath    = flag.String("seed", "", "Seed CSV (refs/catalog_seed_common.csv)")
		outPath     = flag.String("out", "", "Output refs document (refs/catalog_refs.json)")
		merge       = flag.Bool("merge", false, "Merge with an existing output, preserving enriched fields")
		canonOut    = flag.String("canon-out", "", "Also write the canonical list to this file")
		variantsOut = flag.String("variants-out", "", "Also write the variants map to this file")

		// Postgres import
		dbImport   = flag.Bool("db", false, "Upsert the references into Postgres")
		dbHost     = flag.String("db-host", getEnv("DB_HOST", "localhost"), "Database host")
		dbPort     = flag.Int("db-port", getEnvInt("DB_PORT", 5432), "Database port")
		dbName     = flag.String("db-name", getEnv("DB_NAME", "scankey"), "Database name")
		dbUser     = flag.String("db-user", getEnv("DB_USER", "scankey"), "Database user")
		dbPassword = flag.String("db-password", getEnv("DB_PASSWORD", ""), "Database password")
		dbSSLMode  = flag.String("db-sslmode", getEnv("DB_SSLMODE", "disable"), "Database SSL mode")

		// Redis publish
		redisPublish = flag.Bool("redis", false, "Publish the documents to Redis")
		redisHost    = flag.String("redis-host", getEnv("REDIS_HOST", "localhost"), "Redis host")
		redisPort    = flag.Int("redis-port", getEnvInt("REDIS_PORT", 6379), "Redis port")
		redisPrefix  = flag.String("redis-prefix", getEnv("REDIS_KEY_PREFIX", "scankey:catalog:"), "Redis key prefix")

		logLevel = flag.String("log-level", getEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	)

	flag.Parse()

	if *seedPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -seed and -out are required")
		flag.Usage()
		os.Exit(2)
	}

	logger := setupLogger(*logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	f, err := os.Open(*seedPath)
	if err != nil {
		logger.Error("failed to open seed", "seed", *seedPath, "error", err)
		os.Exit(1)
	}
	rows, err := seed.ParseCSV(f)
	f.Close()
	if err != nil {
		logger.Error("invalid seed", "seed", *seedPath, "error", err)
		os.Exit(1)
	}

	var existing map[string]model.RichData
	if *merge {
		existing = loadExisting(*outPath, logger)
	}

	doc := seed.Build(rows, existing, filepath.Base(*seedPath), time.Now())
	canon := seed.CanonList(doc)
	variants := seed.Variants(rows)

	if err := writeJSON(*outPath, doc); err != nil {
		logger.Error("failed to write refs", "out", *outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("wrote refs", "out", *outPath, "refs_count", doc.RefsCount)

	if *canonOut != "" {
		if err := writeJSON(*canonOut, canon); err != nil {
			logger.Error("failed to write canonical list", "out", *canonOut, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote canonical list", "out", *canonOut, "count", len(canon))
	}

	if *variantsOut != "" {
		if err := writeJSON(*variantsOut, variants); err != nil {
			logger.Error("failed to write variants", "out", *variantsOut, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote variants", "out", *variantsOut, "count", len(variants))
	}

	if *dbImport {
		pool, err := database.Connect(ctx, database.ConnectionConfig{
			Host:     *dbHost,
			Port:     *dbPort,
			Database: *dbName,
			User:     *dbUser,
			Password: *dbPassword,
			SSLMode:  *dbSSLMode,
			MaxConns: 2,
		})
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := database.RunMigrations(ctx, pool); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		if err := repository.NewCatalogRepo(pool).Upsert(ctx, doc.Refs, variants); err != nil {
			logger.Error("failed to import references", "error", err)
			os.Exit(1)
		}
		logger.Info("imported references into database", "count", doc.RefsCount)
	}

	if *redisPublish {
		rdb, err := catalog.NewRedisClient(ctx, catalog.RedisConfig{
			Host:     *redisHost,
			Port:     *redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		})
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()

		blobs := catalog.NewRedisBlobs(rdb, *redisPrefix)
		docs := map[string]any{filepath.Base(*outPath): doc}
		if *canonOut != "" {
			docs[filepath.Base(*canonOut)] = canon
		}
		if *variantsOut != "" {
			docs[filepath.Base(*variantsOut)] = variants
		}
		for key, v := range docs {
			data, err := json.Marshal(v)
			if err != nil {
				logger.Error("failed to encode document", "key", key, "error", err)
				os.Exit(1)
			}
			if err := blobs.WriteBlob(ctx, key, data); err != nil {
				logger.Error("failed to publish document", "key", key, "error", err)
				os.Exit(1)
			}
			logger.Info("published document", "key", *redisPrefix+key, "bytes", len(data))
		}
	}
}

// loadExisting reads the refs of a previous build; any problem means start fresh
func loadExisting(path string, logger *slog.Logger) map[string]model.RichData {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring unreadable existing refs", "out", path, "error", err)
		}
		return nil
	}

	var doc model.RefsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("ignoring malformed existing refs", "out", path, "error", err)
		return nil
	}
	return doc.Refs
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// setupLogger creates a structured logger with the specified level
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
