package core

import (
	"encoding/json"
	"time"
)

// ContentType classifies what kind of reference the user submitted.
type ContentType string

const (
	ContentVideo       ContentType = "video"
	ContentCommerce    ContentType = "commerce"
	ContentProductName ContentType = "product_name"
	ContentFreeform    ContentType = "freeform"
)

// AdType selects which floor/cap tables apply during normalization.
type AdType string

const (
	AdProductItself AdType = "product_itself"
	AdBrandAd       AdType = "brand_ad"
	AdProductAd     AdType = "product_ad"
	AdUnknown       AdType = "unknown"
)

// Tier is the trust classification of a brand. Higher tiers receive higher
// score floors during normalization.
type Tier string

const (
	TierTopCorp  Tier = "top_corp"
	TierOTC      Tier = "otc"
	TierKnownMid Tier = "known_mid"
	TierUnknown  Tier = "unknown"
)

// Safety is the overall verdict derived from the total score.
type Safety string

const (
	SafetySafe    Safety = "safe"
	SafetyCaution Safety = "caution"
	SafetyRisk    Safety = "risk"
)

// NumSteps is the number of evaluation dimensions in every analysis.
const NumSteps = 8

// Step keys, in scoring order. The order is load-bearing: floor and cap
// tables are indexed by position.
const (
	StepIdentification = "identification"
	StepBrand          = "brand"
	StepSeller         = "seller"
	StepExpression     = "expression"
	StepEfficacy       = "efficacy"
	StepCallToAction   = "call_to_action"
	StepVisual         = "visual"
	StepConsistency    = "consistency"
)

// StepKeys lists the eight step keys in scoring order.
var StepKeys = [NumSteps]string{
	StepIdentification,
	StepBrand,
	StepSeller,
	StepExpression,
	StepEfficacy,
	StepCallToAction,
	StepVisual,
	StepConsistency,
}

// EvidenceBundle holds everything extracted from a third-party source about
// the submitted reference. SourceText is the only material the LLM sees and
// is truncated to a hard maximum before the bundle is constructed.
type EvidenceBundle struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Seller      string    `json:"seller,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	ProductID   string    `json:"product_id,omitempty"`
	Description string    `json:"description,omitempty"`
	SourceText  string    `json:"source_text"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// TrustFlags are derived per normalization call from the evidence text.
// They are never persisted.
type TrustFlags struct {
	CanonicalBrand    string
	Tier              Tier
	IsOfficialChannel bool
	IsTrustedSeller   bool
}

// StepResult is one finalized evaluation dimension.
type StepResult struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Score    int      `json:"score"`
	Reason   string   `json:"reason"`
	Evidence []string `json:"evidence"`
}

// AnalysisResult is the finalized, bounded outcome of one analysis request.
// It is constructed once from an untrusted candidate and never mutated after
// being returned.
type AnalysisResult struct {
	Input       string               `json:"input"`
	ProductName string               `json:"product_name"`
	ContentType ContentType          `json:"content_type"`
	AdType      AdType               `json:"ad_type"`
	Brand       string               `json:"brand,omitempty"`
	Tier        Tier                 `json:"tier"`
	Steps       [NumSteps]StepResult `json:"steps"`
	TotalScore  int                  `json:"total_score"`
	Safety      Safety               `json:"safety"`
	Badges      []string             `json:"badges,omitempty"`
	Lang        string               `json:"lang"`
	AnalyzedAt  time.Time            `json:"analyzed_at"`
	ModelUsed   string               `json:"model_used,omitempty"`
}

// Candidate is the raw, untrusted shape recovered from an LLM response.
// Every field may be missing or malformed; the normalizer coerces it into an
// AnalysisResult without ever failing.
type Candidate struct {
	ProductName string          `json:"product_name"`
	AdType      string          `json:"ad_type"`
	Steps       []CandidateStep `json:"steps"`
}

// CandidateStep is one unvalidated step from the LLM. Score and Evidence are
// kept loose on purpose so schema-violating responses still decode.
type CandidateStep struct {
	Key      string          `json:"key"`
	Score    json.Number     `json:"score"`
	Reason   string          `json:"reason"`
	Evidence json.RawMessage `json:"evidence"`
}

// AnalysisRequest carries everything an LLM client needs to score one input.
type AnalysisRequest struct {
	Input       string
	ContentType ContentType
	Lang        string
	Evidence    *EvidenceBundle
}

// ErrorCandidate is the fixed substitute used when the LLM response cannot be
// recovered. It flows through the same normalization path as a valid
// candidate, so no special-case branch is needed downstream.
func ErrorCandidate(lang string) *Candidate {
	reason := "analysis unavailable"
	if lang == "ko" {
		reason = "분석 결과를 가져오지 못했습니다"
	}
	steps := make([]CandidateStep, NumSteps)
	for i, key := range StepKeys {
		steps[i] = CandidateStep{Key: key, Score: "0", Reason: reason}
	}
	return &Candidate{AdType: string(AdUnknown), Steps: steps}
}
