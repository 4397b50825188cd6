package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"lexsum/internal/cache"
	"lexsum/internal/config"
	"lexsum/internal/logger"
	"lexsum/internal/queue"
	"lexsum/internal/sentence"
	"lexsum/internal/store"
	"lexsum/internal/summarizer"
	"lexsum/internal/vectorizer"
)

// Deps bundles common runtime dependencies for services.
type Deps struct {
	Config     config.Config
	Log        *slog.Logger
	Store      store.Store
	Queue      queue.Queue
	Cache      cache.Cache
	Summarizer *summarizer.Summarizer
	Lang       sentence.Language
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	vec, err := buildVectorizer(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize vectorizer: %w", err)
	}
	return Deps{
		Config:     cfg,
		Log:        log,
		Store:      st,
		Queue:      q,
		Cache:      c,
		Summarizer: summarizer.New(vec, log),
		Lang:       sentence.English(),
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid option: postgres)", cfg.StoreProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	switch cfg.QueueProvider {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL is required when QUEUE_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS queue")
		return queue.NewNATS(log, nc), nil
	default:
		return nil, fmt.Errorf("invalid QUEUE_PROVIDER: %s (valid option: nats)", cfg.QueueProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis cache")
		return c, nil
	case "noop":
		log.Info("caching disabled")
		return cache.NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, noop)", cfg.CacheProvider)
	}
}

func buildVectorizer(cfg config.Config, log *slog.Logger) (vectorizer.Vectorizer, error) {
	switch cfg.VectorizerProvider {
	case "tfidf":
		log.Info("using TF-IDF vectorizer")
		return vectorizer.NewTFIDF(sentence.English()), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when VECTORIZER_PROVIDER=openai")
		}
		vec, err := vectorizer.NewOpenAI(cfg.OpenAIKey, openai.EmbeddingModel(cfg.EmbeddingModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI vectorizer: %w", err)
		}
		log.Info("using OpenAI embedding vectorizer", "model", cfg.EmbeddingModel)
		return vec, nil
	default:
		return nil, fmt.Errorf("invalid VECTORIZER_PROVIDER: %s (valid options: tfidf, openai)", cfg.VectorizerProvider)
	}
}
