// Package app wires the application's dependencies in one explicit place.
// Construction order: config -> logger -> AWS clients -> repository ->
// generator -> services -> bulk load -> router. Both entrypoints (local
// server and Lambda) share this container.
package app

import (
	"context"
	"fmt"
	"net/http"

	"themefinder-backend/internal/config"
	"themefinder-backend/internal/handlers"
	"themefinder-backend/internal/loader"
	"themefinder-backend/internal/observability"
	"themefinder-backend/internal/repository/ddb"
	"themefinder-backend/internal/service/llm"
	"themefinder-backend/internal/service/movies"
	"themefinder-backend/internal/service/summary"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Container holds the fully constructed application.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Movies  *movies.Service
	Summary *summary.Service
	Metrics *observability.Collector
	Handler http.Handler
}

// NewContainer builds every dependency and runs the bulk loader before the
// router starts accepting traffic.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	repo := ddb.NewRepository(dynamodb.NewFromConfig(awsCfg), cfg.MovieTable)

	provider := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout, logger)
	generator := llm.NewGenerator(provider)

	var metrics *observability.Collector
	if cfg.EnableMetrics {
		metrics = observability.NewCollector("themefinder")
	}

	moviesSvc := movies.NewService(repo)
	summarySvc := summary.NewService(repo, generator, metrics, logger)

	// Seed the store before serving; per-item failures are logged and
	// skipped, a missing dataset degrades to an empty store.
	loader.New(repo, logger).Load(ctx, cfg.DatasetPath)

	handler := handlers.NewMovieHandler(moviesSvc, summarySvc, logger)
	router := handlers.NewRouter(handler, metrics, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Movies:  moviesSvc,
		Summary: summarySvc,
		Metrics: metrics,
		Handler: router.Setup(),
	}, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
