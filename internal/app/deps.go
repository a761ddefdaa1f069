package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/reco/catalog"
	"github.com/viant/reco/coverart"
	"github.com/viant/reco/embedding"
	"github.com/viant/reco/internal/config"
	"github.com/viant/reco/internal/logger"
	"github.com/viant/reco/normalize"
	"github.com/viant/reco/recommender"
)

// CoverSource looks up cover thumbnails for an artist display name.
type CoverSource interface {
	Covers(ctx context.Context, artist string, n int) ([]string, error)
}

// Deps bundles the runtime dependencies shared by handlers.
type Deps struct {
	Config      config.Config
	Log         *slog.Logger
	Catalog     *catalog.Catalog
	Recommender *recommender.Provider
	// Covers is nil when no Discogs key is configured.
	Covers CoverSource

	closers []func() error
}

// Close releases the catalog and cache connections.
func (d Deps) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Build loads config and logger from the environment, then wires the rest.
func Build(ctx context.Context) (Deps, error) {
	cfg := config.Load()
	return BuildWith(ctx, cfg, logger.New(cfg.LogLevel))
}

// BuildWith wires the catalog, recommender and cover client. The recommender
// is constructed before returning, so a bad dataset fails startup with an
// *embedding.DataLoadError.
func BuildWith(ctx context.Context, cfg config.Config, log *slog.Logger) (Deps, error) {
	deps := Deps{Config: cfg, Log: log}

	cat, err := catalog.Open(ctx, cfg.CatalogDSN)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize catalog: %w", err)
	}
	deps.Catalog = cat
	deps.closers = append(deps.closers, cat.Close)

	opts, err := recommenderOptions(cfg)
	if err != nil {
		_ = deps.Close()
		return Deps{}, err
	}
	deps.Recommender = recommender.NewProvider(func() (*recommender.Recommender, error) {
		store, err := loadStore(ctx, cfg, cat)
		if err != nil {
			return nil, err
		}
		return recommender.New(store, opts...)
	})
	rec, err := deps.Recommender.Get()
	if err != nil {
		_ = deps.Close()
		return Deps{}, fmt.Errorf("failed to build recommender: %w", err)
	}
	log.Info("recommender ready", "artists", rec.Len(), "dim", rec.Dim(), "index", string(rec.Kind()), "source", cfg.EmbeddingSource)

	covers, closer, err := buildCovers(ctx, cfg, log)
	if err != nil {
		_ = deps.Close()
		return Deps{}, fmt.Errorf("failed to initialize cover art: %w", err)
	}
	if closer != nil {
		deps.closers = append(deps.closers, closer)
	}
	deps.Covers = covers
	return deps, nil
}

func loadStore(ctx context.Context, cfg config.Config, cat *catalog.Catalog) (*embedding.Store, error) {
	switch cfg.EmbeddingSource {
	case "files", "":
		return embedding.Load(cfg.MatrixPath, cfg.IDsPath)
	case "catalog":
		return cat.LoadEmbeddings(ctx)
	default:
		return nil, fmt.Errorf("invalid EMBEDDING_SOURCE: %s (valid options: files, catalog)", cfg.EmbeddingSource)
	}
}

func recommenderOptions(cfg config.Config) ([]recommender.Option, error) {
	kind, err := recommender.ParseKind(cfg.IndexKind)
	if err != nil {
		return nil, fmt.Errorf("invalid INDEX_KIND: %w", err)
	}
	points, err := recommender.ParsePoints(cfg.RecommendPoints)
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMMEND_POINTS: %w", err)
	}
	var norm []normalize.Option
	switch strings.ToLower(cfg.NormalizeScale) {
	case "", "per-dimension":
	case "proportional":
		norm = append(norm, normalize.WithScaling(normalize.ScaleProportional))
	default:
		return nil, fmt.Errorf("invalid NORMALIZE_SCALE: %s (valid options: per-dimension, proportional)", cfg.NormalizeScale)
	}
	if cfg.ClampK > 0 {
		norm = append(norm, normalize.WithClamp(cfg.ClampK))
	}
	return []recommender.Option{
		recommender.WithIndexKind(kind),
		recommender.WithRecommendPoints(points),
		recommender.WithNormalize(norm...),
	}, nil
}

func buildCovers(ctx context.Context, cfg config.Config, log *slog.Logger) (CoverSource, func() error, error) {
	if cfg.DiscogsKey == "" {
		log.Info("cover art disabled; DISCOGS_CONSUMER_KEY not set")
		return nil, nil, nil
	}
	var (
		cache  coverart.Cache
		closer func() error
	)
	switch cfg.CacheProvider {
	case "lru", "":
		lru, err := coverart.NewLRUCache(cfg.CacheSize)
		if err != nil {
			return nil, nil, err
		}
		cache = lru
		log.Info("using in-process cover cache", "size", cfg.CacheSize)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		redis, err := coverart.NewRedisCache(ctx, cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			return nil, nil, err
		}
		cache, closer = redis, redis.Close
		log.Info("using Redis cover cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
	default:
		return nil, nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: lru, redis)", cfg.CacheProvider)
	}
	client, err := coverart.New(coverart.Config{
		BaseURL:   cfg.DiscogsBaseURL,
		Key:       cfg.DiscogsKey,
		Secret:    cfg.DiscogsSecret,
		UserAgent: cfg.DiscogsUserAgent,
	}, coverart.WithCache(cache), coverart.WithLogger(log))
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, nil, err
	}
	return client, closer, nil
}
