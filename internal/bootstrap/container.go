package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"movie-match-be/internal/config"
	"movie-match-be/internal/constant"
	"movie-match-be/internal/controller"
	"movie-match-be/internal/pkg/logger"
	"movie-match-be/internal/repository/contract"
	"movie-match-be/internal/repository/implementation"
	"movie-match-be/internal/repository/memory"
	"movie-match-be/internal/repository/redisstore"
	"movie-match-be/internal/service"
	"movie-match-be/internal/view"
	"movie-match-be/pkg/embedding"
	"movie-match-be/pkg/llm/factory"
	"movie-match-be/pkg/resilience"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PageController      controller.IPageController
	RecommendController controller.IRecommendController
	AdminController     controller.IAdminController

	// Exposed for the maintenance CLI
	MaintenanceService service.IMaintenanceService
	SessionService     service.ISessionService

	Logger *logger.ZapLogger

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// the movies column has a fixed vector size
	embeddingModel := EmbeddingModel(cfg)
	if err := embedding.CheckDimensions(embeddingModel, constant.EmbeddingDimensions); err != nil {
		return nil, err
	}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	movieRepo := implementation.NewMovieRepository(db)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, sysLogger.Sync)

	// 2. Session store
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	sessions, healthChecks, err := c.sessionStore(cfg, sessionTTL)
	if err != nil {
		return nil, err
	}
	healthChecks["database"] = func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}

	// 3. Event Bus
	// publishing blocks until the consumer acked, so seed and backfill rows are strictly sequential
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	// 4. Upstream clients
	if _, known := embedding.Dimensions(embeddingModel); !known {
		sysLogger.Warn("Container", "Unknown embedding model, vector size not checked", map[string]interface{}{
			"model": embeddingModel, "expected_dimensions": constant.EmbeddingDimensions,
		})
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmBaseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL,
		APIKey:   cfg.Keys.OpenAI,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	onStateChange := func(name, from, to string) {
		sysLogger.Warn("Breaker", "Circuit breaker state changed", map[string]interface{}{
			"breaker": name, "from": from, "to": to,
		})
	}
	breakerTimeout := time.Duration(cfg.Breaker.TimeoutSeconds) * time.Second
	embeddingBreaker := resilience.NewBreaker[[]float32](resilience.BreakerConfig{
		Name:             "embedding",
		FailureThreshold: uint32(cfg.Breaker.FailureThreshold),
		Timeout:          breakerTimeout,
		OnStateChange:    onStateChange,
	})
	completionBreaker := resilience.NewBreaker[string](resilience.BreakerConfig{
		Name:             "completion",
		FailureThreshold: uint32(cfg.Breaker.FailureThreshold),
		Timeout:          breakerTimeout,
		OnStateChange:    onStateChange,
	})

	embedder := service.NewEmbeddingClient(embeddingProvider, embeddingBreaker)
	completer := service.NewCompletionClient(llmProvider, cfg.Ai.LLMModel, completionBreaker)

	// 5. Services
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	matchService := service.NewMatchService(movieRepo, sysLogger)
	c.SessionService = service.NewSessionService(sessions, embedder, completer, matchService, renderer, sysLogger)
	c.MaintenanceService = service.NewMaintenanceService(pubSub, cfg.App.EmbedMovieTopic, movieRepo, embedder, nil, sysLogger)

	// 6. Controllers
	c.PageController = controller.NewPageController(c.SessionService, renderer, healthChecks)
	c.RecommendController = controller.NewRecommendController(c.SessionService)
	c.AdminController = controller.NewAdminController(c.MaintenanceService, sysLogger, cfg.App.JwtSecret)

	return c, nil
}

func (c *Container) sessionStore(cfg *config.Config, ttl time.Duration) (contract.SessionRepository, map[string]controller.HealthCheck, error) {
	checks := map[string]controller.HealthCheck{}

	switch cfg.Session.Store {
	case "memory", "":
		return memory.NewSessionRepository(ttl), checks, nil
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, rdb.Close)
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		return redisstore.NewSessionRepository(rdb, ttl), checks, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session store: %s", cfg.Session.Store)
	}
}

// Close releases the event bus, the redis client and flushes the logger.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
}

// EmbeddingModel is the model name the configured embedding provider uses.
func EmbeddingModel(cfg *config.Config) string {
	if cfg.Ai.EmbeddingProvider == "ollama" {
		return cfg.Ai.OllamaModel
	}
	return cfg.Ai.EmbeddingModel
}
