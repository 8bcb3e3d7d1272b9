package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"scankey-catalog/internal/catalog"
	"scankey-catalog/internal/database"
	"scankey-catalog/internal/matching"
)

type Config struct {
	Catalog  CatalogConfig
	Match    MatchConfig
	Database DatabaseConfig
	Redis    RedisConfig
	APIPort  string
	LogLevel string
}

type CatalogConfig struct {
	Dir           string
	CanonOverride string
	CanonClean    string
	CanonFull     string
	Variants      string
	RichDB        string
	// BlobBackend is "file" or "redis"
	BlobBackend string
	DBEnabled   bool
}

type MatchConfig struct {
	MaxFlips          int
	VariantCap        int
	HintMinConfidence float64
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// Load reads configuration from the environment, after an optional .env file
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Catalog: CatalogConfig{
			Dir:           getEnv("CATALOG_DIR", "resources/catalog"),
			CanonOverride: strings.TrimSpace(os.Getenv("SCN_CATALOG_CANON")),
			CanonClean:    getEnv("CATALOG_CANON_CLEAN", "jma_catalog_refs_canon.clean.json"),
			CanonFull:     getEnv("CATALOG_CANON_FULL", "jma_catalog_refs_canon.json"),
			Variants:      getEnv("CATALOG_VARIANTS", "jma_catalog_refs_variants.json"),
			RichDB:        strings.TrimSpace(os.Getenv("SCN_REF_DB_PATH")),
			BlobBackend:   strings.ToLower(getEnv("CATALOG_BLOB_BACKEND", "file")),
			DBEnabled:     getEnvBool("CATALOG_DB_ENABLED", false),
		},
		Match: MatchConfig{
			MaxFlips:          getEnvInt("MATCH_MAX_FLIPS", matching.DefaultMaxFlips),
			VariantCap:        getEnvInt("MATCH_VARIANT_CAP", matching.DefaultVariantCap),
			HintMinConfidence: getEnvFloat("HINT_MIN_CONFIDENCE", matching.DefaultHintMinConfidence),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "scankey"),
			User:     getEnv("DB_USER", "scankey"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 4),
			MinConns: getEnvInt("DB_MIN_CONNS", 0),
		},
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnvInt("REDIS_PORT", 6379),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "scankey:catalog:"),
		},
		APIPort:  getEnv("API_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Layout maps the catalog settings onto document keys
func (c CatalogConfig) Layout() catalog.Layout {
	return catalog.Layout{
		CanonOverride: c.CanonOverride,
		CanonClean:    c.CanonClean,
		CanonFull:     c.CanonFull,
		Variants:      c.Variants,
		RichDB:        c.RichDB,
	}
}

func (m MatchConfig) Options() matching.Options {
	return matching.Options{
		MaxFlips:          m.MaxFlips,
		VariantCap:        m.VariantCap,
		HintMinConfidence: m.HintMinConfidence,
	}
}

func (d DatabaseConfig) Connection() database.ConnectionConfig {
	return database.ConnectionConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Name,
		User:     d.User,
		Password: d.Password,
		SSLMode:  d.SSLMode,
		MaxConns: d.MaxConns,
		MinConns: d.MinConns,
	}
}

func (r RedisConfig) Client() catalog.RedisConfig {
	return catalog.RedisConfig{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
