package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-translate/internal/domain/faq"
	"github.com/yanqian/faq-translate/internal/domain/translation"
	"github.com/yanqian/faq-translate/internal/infra/config"
	"github.com/yanqian/faq-translate/internal/infra/faqrepo"
	"github.com/yanqian/faq-translate/internal/infra/llm/chatgpt"
	"github.com/yanqian/faq-translate/internal/infra/translationcache"
	"github.com/yanqian/faq-translate/internal/infra/translator"
	"github.com/yanqian/faq-translate/pkg/metrics"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		MaxConcurrency: cfg.Translation.MaxConcurrency,
		MaxQuestionLen: cfg.FAQ.MaxQuestionLen,
		MaxAnswerLen:   cfg.FAQ.MaxAnswerLen,
	}
}

func provideTranslationConfig(cfg *config.Config) translation.Config {
	return translation.Config{
		CacheTTL: cfg.Cache.TTL,
		Timeout:  cfg.Translation.Timeout,
	}
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

func provideFAQRepository(cfg *config.Config, logger *slog.Logger) (faq.Repository, func()) {
	fallback := faqrepo.NewMemoryRepository()
	noop := func() {}

	switch cfg.Store.Driver {
	case config.StorePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pool, err := openPostgresPool(ctx, cfg.Store.Postgres)
		if err != nil {
			logger.Error("postgres unavailable, using memory repository", "error", err)
			return fallback, noop
		}
		repo := faqrepo.NewPostgresRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("postgres migration failed, using memory repository", "error", err)
			pool.Close()
			return fallback, noop
		}
		logger.Info("faq postgres repository enabled")
		return repo, func() { _ = repo.Close() }
	case config.StoreSQLite:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		repo, err := faqrepo.OpenSQLite(ctx, cfg.Store.SQLite.Path)
		if err != nil {
			logger.Error("sqlite unavailable, using memory repository", "path", cfg.Store.SQLite.Path, "error", err)
			return fallback, noop
		}
		logger.Info("faq sqlite repository enabled", "path", cfg.Store.SQLite.Path)
		return repo, func() { _ = repo.Close() }
	default:
		logger.Info("using memory faq repository")
		return fallback, noop
	}
}

func openPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func provideTranslationCache(cfg *config.Config, logger *slog.Logger) (translation.Cache, func()) {
	noop := func() {}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	switch cfg.Cache.Driver {
	case config.CacheValkey:
		opt, err := buildValkeyOptions(cfg.Cache.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return translationcache.NewMemoryStore(), noop
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return translationcache.NewMemoryStore(), noop
		}
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
			return translationcache.NewMemoryStore(), noop
		}
		logger.Info("translation valkey cache enabled", "addr", cfg.Cache.Addr)
		store := translationcache.NewValkeyStore(client, cfg.Cache.KeyPrefix)
		return store, func() { _ = store.Close() }
	case config.CacheRedis:
		store, err := openRedisStore(ctx, cfg.Cache)
		if err != nil {
			logger.Error("redis unavailable, falling back to memory cache", "error", err)
			return translationcache.NewMemoryStore(), noop
		}
		logger.Info("translation redis cache enabled", "addr", cfg.Cache.Addr)
		return store, func() { _ = store.Close() }
	default:
		logger.Info("using memory translation cache")
		return translationcache.NewMemoryStore(), noop
	}
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func openRedisStore(ctx context.Context, cfg config.CacheConfig) (*translationcache.RedisStore, error) {
	if strings.Contains(cfg.Addr, "://") {
		return translationcache.NewRedisStoreFromURL(ctx, cfg.Addr, cfg.KeyPrefix)
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return translationcache.NewRedisStore(client, cfg.KeyPrefix), nil
}

func provideTranslationProvider(cfg *config.Config, logger *slog.Logger) translation.Provider {
	tc := cfg.Translation
	settings := translator.Config{
		APIKey:      tc.APIKey,
		BaseURL:     tc.BaseURL,
		Model:       tc.Model,
		Temperature: tc.Temperature,
		SourceLang:  tc.SourceLang,
	}

	switch tc.Provider {
	case config.ProviderOpenAI:
		if strings.TrimSpace(tc.APIKey) == "" {
			logger.Warn("translation api key not set, translations disabled")
			return translator.NewDisabledProvider()
		}
		logger.Info("openai translation provider enabled", "model", settings.Model)
		return translator.NewOpenAIProvider(settings)
	case config.ProviderChatGPT:
		client, err := chatgpt.NewClient(tc.APIKey, tc.BaseURL)
		if err != nil {
			logger.Warn("chatgpt client unavailable, translations disabled", "error", err)
			return translator.NewDisabledProvider()
		}
		logger.Info("chatgpt translation provider enabled", "model", settings.Model)
		return translator.NewChatGPTProvider(client, settings)
	default:
		logger.Info("translation provider disabled")
		return translator.NewDisabledProvider()
	}
}
