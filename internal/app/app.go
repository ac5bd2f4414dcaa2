// Package app wires configuration to the orchestration pipelines.
package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"bloomcore/internal/config"
	"bloomcore/internal/domain"
	"bloomcore/internal/geo"
	"bloomcore/internal/infrastructure/geocode"
	"bloomcore/internal/infrastructure/llm"
	"bloomcore/internal/infrastructure/providers"
	"bloomcore/internal/logging"
	"bloomcore/internal/metrics"
	"bloomcore/internal/ports"
	"bloomcore/internal/regions"
	"bloomcore/internal/search"
	"bloomcore/internal/synthesis"
	"bloomcore/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg          config.Config
	orchestrator *usecase.Orchestrator
	regionFinder *usecase.RegionFinder
}

// New builds a runnable application instance. A nil registerer skips metrics
// registration, which keeps repeated construction in tests collision-free.
func New(cfg config.Config, baseLogger *slog.Logger, registerer prometheus.Registerer) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	recorder := metrics.NewRecorder(registerer)

	registry := search.NewRegistry()
	registry.Register(providers.NewSerpAPI(cfg.Search.SerpEndpoint, cfg.Search.SerpAPIKey))
	registry.Register(providers.NewNewsAPI(cfg.Search.NewsEndpoint, cfg.Search.NewsAPIKey))
	registry.Register(providers.NewGoogleNews(cfg.Search.NewsFeedEndpoint))

	var active []ports.SearchProvider
	for _, name := range cfg.Search.Providers {
		provider, err := registry.Resolve(name)
		if err != nil {
			baseLogger.Warn("skipping unknown search provider", "provider", name)
			continue
		}
		active = append(active, provider)
	}

	gatherer := search.NewGatherer(active, cfg.Search.MaxResults,
		logging.Component(baseLogger, "gatherer"), recorder)

	var geocodeClient ports.GeocodeClient
	if cfg.Geocoding.Endpoint != "" {
		geocodeClient = geocode.NewClient(cfg.Geocoding.Endpoint)
	}
	resolver := geo.NewResolver(geocodeClient, cfg.Geocoding.CacheSize,
		logging.Component(baseLogger, "geo"))

	var chatClient ports.ChatClient
	if cfg.Synthesis.APIKey != "" {
		chatClient = llm.NewOpenAIClient(cfg.Synthesis.Endpoint, cfg.Synthesis.Model, cfg.Synthesis.APIKey)
	}
	engine := synthesis.NewEngine(chatClient,
		logging.Component(baseLogger, "synthesis"), recorder)

	orchestrator := usecase.NewOrchestrator(
		gatherer,
		providers.NewMockGatherer(),
		engine,
		resolver,
		cfg.LiveProvidersConfigured(),
		cfg.Orchestration.Timeout,
		cfg.Orchestration.DefaultVegetation,
		logging.Component(baseLogger, "orchestrator"),
		recorder,
	)

	regionFinder := usecase.NewRegionFinder(
		gatherer,
		regions.NewRanker(),
		resolver,
		cfg.Orchestration.Timeout,
		logging.Component(baseLogger, "regions"),
	)

	return &Application{
		cfg:          cfg,
		orchestrator: orchestrator,
		regionFinder: regionFinder,
	}
}

// Explain runs one bloom explanation request.
func (a *Application) Explain(ctx context.Context, req usecase.Request) (domain.OrchestrationResponse, error) {
	return a.orchestrator.Orchestrate(ctx, req)
}

// TopRegions runs one region-ranking request.
func (a *Application) TopRegions(ctx context.Context, country, flower string) (domain.TopRegionsResult, error) {
	return a.regionFinder.TopRegions(ctx, country, flower)
}
