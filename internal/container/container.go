package container

import (
	"fmt"
	"net/http"

	"go-photo-critique/internal/analyzer"
	"go-photo-critique/internal/config"
	"go-photo-critique/internal/factory"
	"go-photo-critique/internal/logger"
	"go-photo-critique/internal/observer"
	"go-photo-critique/internal/repository"
	"go-photo-critique/internal/scoring"
	"go-photo-critique/internal/service"
	"go-photo-critique/internal/storage"
	"go-photo-critique/internal/transport"
	"go-photo-critique/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	imageFetcher    storage.ImageFetcher
	imageRepository repository.ImageRepository
	critiqueService service.CritiqueService
	metrics         *observer.MetricsObserver
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Scoring overrides are optional unless a file was named explicitly
	overrides, err := config.ResolveScoringFile(cfg.ScoringConfigPath)
	if err != nil {
		return nil, err
	}

	// Build dependency graph
	imageFetcher, err := factory.NewStorageFactory(cfg).CreateStorage(factory.StorageType(cfg.StorageBackend))
	if err != nil {
		return nil, err
	}

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(metrics)

	imageRepository := repository.NewImageRepository(imageFetcher, nil)
	critiqueService := service.NewCritiqueService(
		imageRepository,
		analyzer.NewExposureAnalyzer(overrides.ApplyExposure(analyzer.DefaultExposureTunables())),
		analyzer.NewSharpnessAnalyzer(overrides.ApplySharpness(analyzer.DefaultSharpnessTunables())),
		analyzer.NewColorAnalyzer(overrides.ApplyColor(analyzer.DefaultColorTunables())),
		overrides.ApplyWeights(scoring.DefaultWeights()),
		publisher,
	)
	handler := transport.NewHandler(
		critiqueService,
		metrics,
		validation.NewUploadValidator(cfg.MaxRequestBodySize),
		cfg,
	)

	return &Container{
		config:          cfg,
		imageFetcher:    imageFetcher,
		imageRepository: imageRepository,
		critiqueService: critiqueService,
		metrics:         metrics,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
