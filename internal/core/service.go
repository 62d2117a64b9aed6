package core

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AnalysisService is the core service for product-trust analysis. It wires
// the classifier, the content extractors, the LLM client, and the score
// normalizer into one pipeline.
type AnalysisService struct {
	llmClient         LLMClient
	classifier        Classifier
	videoExtractor    Extractor
	commerceExtractor Extractor
	normalizer        Normalizer
	logger            *zap.Logger
	llmTimeout        time.Duration
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	llmClient LLMClient,
	classifier Classifier,
	videoExtractor Extractor,
	commerceExtractor Extractor,
	normalizer Normalizer,
	logger *zap.Logger,
	llmTimeout time.Duration,
) *AnalysisService {
	return &AnalysisService{
		llmClient:         llmClient,
		classifier:        classifier,
		videoExtractor:    videoExtractor,
		commerceExtractor: commerceExtractor,
		normalizer:        normalizer,
		logger:            logger,
		llmTimeout:        llmTimeout,
	}
}

// Analyze runs the full pipeline for one input: classify, extract evidence,
// score with the LLM, normalize. Extraction and LLM failures degrade to
// default evidence and an error-shaped candidate; the call itself only fails
// on an empty input.
func (s *AnalysisService) Analyze(ctx context.Context, input, lang string) (*AnalysisResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	contentType := s.classifier.Classify(input)
	s.logger.Debug("Classified input",
		zap.String("content_type", string(contentType)),
		zap.String("lang", lang))

	evidence := s.gatherEvidence(ctx, input, lang, contentType)

	llmCtx := ctx
	if s.llmTimeout > 0 {
		var cancel context.CancelFunc
		llmCtx, cancel = context.WithTimeout(ctx, s.llmTimeout)
		defer cancel()
	}

	cand, err := s.llmClient.AnalyzeProduct(llmCtx, &AnalysisRequest{
		Input:       input,
		ContentType: contentType,
		Lang:        lang,
		Evidence:    evidence,
	})
	if err != nil {
		s.logger.Warn("LLM analysis failed, substituting error candidate", zap.Error(err))
		cand = ErrorCandidate(lang)
	}

	result := s.normalizer.Normalize(cand, evidence, contentType, input, lang)
	s.logger.Info("Analysis complete",
		zap.String("content_type", string(contentType)),
		zap.Int("total_score", result.TotalScore),
		zap.String("safety", string(result.Safety)))

	return result, nil
}

// gatherEvidence picks the extractor for the content category. Extraction is
// best-effort: on failure the bundle degrades to the raw input text.
func (s *AnalysisService) gatherEvidence(ctx context.Context, input, lang string, contentType ContentType) *EvidenceBundle {
	var (
		bundle *EvidenceBundle
		err    error
	)

	switch contentType {
	case ContentVideo:
		bundle, err = s.videoExtractor.Extract(ctx, input, lang)
	case ContentCommerce:
		bundle, err = s.commerceExtractor.Extract(ctx, input, lang)
	}
	if err != nil {
		s.logger.Warn("Evidence extraction failed, degrading to raw input",
			zap.String("content_type", string(contentType)),
			zap.Error(err))
		bundle = nil
	}

	if bundle == nil {
		bundle = &EvidenceBundle{
			ProductName: input,
			SourceText:  input,
			FetchedAt:   time.Now(),
		}
		if contentType == ContentVideo || contentType == ContentCommerce {
			bundle.URL = input
			bundle.ProductName = ""
		}
	}
	return bundle
}
