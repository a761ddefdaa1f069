package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Embeddings: "files" reads MATRIX_PATH/IDS_PATH, "catalog" reads the
	// artist_embedding table.
	EmbeddingSource string `env:"EMBEDDING_SOURCE" envDefault:"files"`
	MatrixPath      string `env:"MATRIX_PATH" envDefault:"data/matrix.json"`
	IDsPath         string `env:"IDS_PATH" envDefault:"data/ids.json"`

	// Index and normalization
	IndexKind       string  `env:"INDEX_KIND" envDefault:"auto"`                // auto, kdtree, cover or brute
	ClampK          float64 `env:"CLAMP_K" envDefault:"25"`                     // 0 disables clamping
	NormalizeScale  string  `env:"NORMALIZE_SCALE" envDefault:"per-dimension"` // per-dimension or proportional
	RecommendPoints string  `env:"RECOMMEND_POINTS" envDefault:"external"`     // external or internal

	// Catalog
	CatalogDSN string `env:"CATALOG_DSN" envDefault:"reco.db"`

	// Cover art; lookups are disabled without a key.
	DiscogsBaseURL   string `env:"DISCOGS_BASE_URL" envDefault:"https://api.discogs.com"`
	DiscogsKey       string `env:"DISCOGS_CONSUMER_KEY"`
	DiscogsSecret    string `env:"DISCOGS_CONSUMER_SECRET"`
	DiscogsUserAgent string `env:"DISCOGS_USER_AGENT" envDefault:"reco/1.0"`
	CoverCount       int    `env:"COVER_COUNT" envDefault:"3"`

	// Cover cache
	CacheProvider string        `env:"CACHE_PROVIDER" envDefault:"lru"` // lru or redis
	CacheSize     int           `env:"CACHE_SIZE" envDefault:"1024"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"24h"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
