package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/classify"
	"github.com/joojungwoo/yakson/internal/config"
	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/factory"
	"github.com/joojungwoo/yakson/internal/logging"
	"github.com/joojungwoo/yakson/internal/normalize"
	"github.com/joojungwoo/yakson/internal/ports"
	"github.com/joojungwoo/yakson/internal/trust"
	"github.com/joojungwoo/yakson/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := registerCore(container); err != nil {
		return nil, err
	}

	// Register analysis server
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.ServerFactory) (ports.AnalysisServer, error) {
		return f.CreateAnalysisServer()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// registerCore registers everything from the text processor up to the
// analysis service. Shared between the server and CLI containers.
func registerCore(container *dig.Container) error {
	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewExtractorFactory); err != nil {
		return err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return err
	}

	// Register extractors and the evidence cache behind them
	if err := container.Provide(func(f *factory.ExtractorFactory) (*factory.Extractors, error) {
		return f.CreateExtractors()
	}); err != nil {
		return err
	}

	// Register classifier
	if err := container.Provide(func() core.Classifier {
		return classify.New(classify.DefaultDomains())
	}); err != nil {
		return err
	}

	// Register trust resolver and normalizer
	if err := container.Provide(trust.NewDefaultResolver); err != nil {
		return err
	}
	if err := container.Provide(func(resolver *trust.Resolver, logger *zap.Logger) core.Normalizer {
		return normalize.NewDefault(resolver, logger)
	}); err != nil {
		return err
	}

	// Register analysis service
	if err := container.Provide(func(
		llmClient core.LLMClient,
		classifier core.Classifier,
		extractors *factory.Extractors,
		normalizer core.Normalizer,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.AnalysisService, error) {
		llmTimeout, err := cfg.GetDuration("llm.timeout")
		if err != nil {
			return nil, err
		}
		return core.NewAnalysisService(
			llmClient,
			classifier,
			extractors.Video,
			extractors.Commerce,
			normalizer,
			logger,
			llmTimeout,
		), nil
	}); err != nil {
		return err
	}

	return nil
}
