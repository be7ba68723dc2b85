package main

import (
	"fmt"
	"log"
	"log/slog"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/lumiai/lumi-router/internal/config"
	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/http"
	"github.com/lumiai/lumi-router/internal/http/middleware"
	"github.com/lumiai/lumi-router/internal/observability"
	"github.com/lumiai/lumi-router/internal/provider/groq"
	"github.com/lumiai/lumi-router/internal/provider/ollama"
	"github.com/lumiai/lumi-router/internal/provider/openrouter"
	"github.com/lumiai/lumi-router/internal/provider/registry"
	"github.com/lumiai/lumi-router/internal/provider/userkey"
	"github.com/lumiai/lumi-router/internal/ratelimit"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return observability.InitLogger(cfg.Development())
	}); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func() domain.EventPublisher {
		return observability.NewEventBus(slog.Default())
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Rate limiter
	if err := container.Provide(func(cfg *ratelimit.Config) domain.RateLimiter {
		return ratelimit.NewLimiter(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide rate limiter: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (domain.ProviderRegistry, error) {
		return buildRegistry(cfg, logger)
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Router Service
	if err := container.Provide(func(
		reg domain.ProviderRegistry,
		limiter domain.RateLimiter,
		events domain.EventPublisher,
		cfg *config.Config,
	) *domain.RouterService {
		timeout := time.Duration(cfg.Router.UpstreamTimeout) * time.Second
		return domain.NewRouterService(reg, limiter, events, timeout, cfg.Development())
	}); err != nil {
		log.Fatalf("Failed to provide router service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.NewMiddleware); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// buildRegistry registers every configured backend. The local and user-key
// backends need no server-held secret, so they are always present; hosted
// backends without a key are skipped and stay out of the catalogue.
func buildRegistry(cfg *config.Config, logger *zap.Logger) (*registry.Registry, error) {
	reg := registry.NewRegistry()

	if err := reg.Register(ollama.Descriptor(), ollama.NewAdapter(cfg.Ollama)); err != nil {
		return nil, fmt.Errorf("failed to register ollama provider: %w", err)
	}

	if cfg.Groq.APIKey != "" {
		adapter, err := groq.NewAdapter(cfg.Groq)
		if err != nil {
			return nil, fmt.Errorf("failed to build groq adapter: %w", err)
		}
		if err := reg.Register(groq.Descriptor(), adapter); err != nil {
			return nil, fmt.Errorf("failed to register groq provider: %w", err)
		}
	} else {
		logger.Info("groq provider not configured, skipping")
	}

	if cfg.OpenRouter.APIKey != "" {
		adapter, err := openrouter.NewAdapter(cfg.OpenRouter)
		if err != nil {
			return nil, fmt.Errorf("failed to build openrouter adapter: %w", err)
		}
		if err := reg.Register(openrouter.Descriptor(), adapter); err != nil {
			return nil, fmt.Errorf("failed to register openrouter provider: %w", err)
		}
	} else {
		logger.Info("openrouter provider not configured, skipping")
	}

	if err := reg.Register(userkey.Descriptor(), userkey.NewAdapter(cfg.UserKey)); err != nil {
		return nil, fmt.Errorf("failed to register user-key provider: %w", err)
	}

	return reg, nil
}
