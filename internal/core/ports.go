package core

import (
	"context"
	"time"
)

// LLMClient defines the interface for interacting with generative-AI services.
type LLMClient interface {
	// AnalyzeProduct scores one input along the eight evaluation dimensions.
	// The returned candidate is untrusted and must be normalized before use.
	AnalyzeProduct(ctx context.Context, req *AnalysisRequest) (*Candidate, error)
}

// EvidenceCache defines the interface for caching extracted evidence bundles.
type EvidenceCache interface {
	// Get retrieves a cached bundle. Expired entries are treated as absent.
	Get(ctx context.Context, key string) (*EvidenceBundle, error)

	// Set stores a bundle with the given TTL.
	Set(ctx context.Context, key string, bundle *EvidenceBundle, ttl time.Duration) error

	// Delete removes a cache entry.
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}

// Classifier decides which content category an input string belongs to.
type Classifier interface {
	Classify(input string) ContentType
}

// Extractor turns a reference into an evidence bundle. Implementations are
// best-effort: failures degrade to thinner bundles, never to errors that
// abort the request.
type Extractor interface {
	Extract(ctx context.Context, input, lang string) (*EvidenceBundle, error)
}

// Normalizer converts an untrusted candidate plus evidence into a finalized,
// cap-compliant AnalysisResult. It never fails on malformed input.
type Normalizer interface {
	Normalize(cand *Candidate, evidence *EvidenceBundle, contentType ContentType, input, lang string) *AnalysisResult
}
