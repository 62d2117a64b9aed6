package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/adapters/cache"
	"github.com/joojungwoo/yakson/internal/config"
	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/extract"
	"github.com/joojungwoo/yakson/internal/fetch"
	"github.com/joojungwoo/yakson/internal/utils"
)

// ExtractorFactory creates the video and commerce evidence extractors from
// configuration, sharing one fetch client and one evidence cache.
type ExtractorFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	cacheFactory  *CacheFactory
	textProcessor *utils.TextProcessor
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(
	cfg *config.Config,
	logger *zap.Logger,
	cacheFactory *CacheFactory,
	textProcessor *utils.TextProcessor,
) *ExtractorFactory {
	return &ExtractorFactory{
		cfg:           cfg,
		logger:        logger,
		cacheFactory:  cacheFactory,
		textProcessor: textProcessor,
	}
}

// Extractors bundles the two extractors so the DI container can provide them
// with distinct roles.
type Extractors struct {
	Video    core.Extractor
	Commerce core.Extractor
	Cache    core.EvidenceCache
}

// CreateExtractors creates the configured extractors.
func (f *ExtractorFactory) CreateExtractors() (*Extractors, error) {
	var evidenceCache core.EvidenceCache
	if f.cacheFactory.IsCacheEnabled() {
		c, err := f.cacheFactory.CreateEvidenceCache()
		if err != nil {
			return nil, err
		}
		evidenceCache = c
	} else {
		evidenceCache = cache.NewNopCache()
	}

	defaultTTL, err := f.cacheFactory.GetCacheTTL()
	if err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}
	fallbackTTL, err := f.cacheFactory.GetFallbackTTL()
	if err != nil {
		return nil, fmt.Errorf("invalid cache fallback ttl: %w", err)
	}

	fetchTimeout, err := f.cfg.GetDuration("fetch.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid fetch timeout: %w", err)
	}
	oembedTimeout, err := f.cfg.GetDuration("fetch.oembed_timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid oembed timeout: %w", err)
	}
	retries := f.cfg.GetInt("fetch.retries")

	fetcher := fetch.NewClient(f.logger)

	video := extract.NewVideoExtractor(
		fetcher,
		evidenceCache,
		f.textProcessor,
		f.logger,
		oembedTimeout,
		fetchTimeout,
		defaultTTL,
	)
	commerce := extract.NewCommerceExtractor(
		fetcher,
		evidenceCache,
		f.textProcessor,
		f.logger,
		fetchTimeout,
		retries,
		defaultTTL,
		fallbackTTL,
	)

	return &Extractors{
		Video:    video,
		Commerce: commerce,
		Cache:    evidenceCache,
	}, nil
}
