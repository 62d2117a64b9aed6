// Package normalize turns an untrusted, possibly malformed LLM candidate
// into a finalized, bounded AnalysisResult. The adjustment order is a
// correctness contract: blacklist, coercion, red-flag gate, trust flags,
// floors, caps, totals. The gate runs before floors so a trusted-brand floor
// can raise a gated score back up; caps run last so nothing escapes the
// per-category bounds.
package normalize

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/tables"
	"github.com/joojungwoo/yakson/internal/trust"
)

// gateCeiling is the maximum expression/efficacy score once the red-flag
// gate has fired.
const gateCeiling = 2

// timeNow allows test injection of time.
var timeNow = time.Now

// maxEvidenceLines bounds both LLM-provided evidence and the source-text
// fallback.
const maxEvidenceLines = 3

// evidenceLabels are the field labels a source-text line must start with to
// qualify as fallback evidence.
var evidenceLabels = []string{
	"제목:", "채널:", "설명:", "판매자:", "상품명:", "상품ID:", "URL:",
}

// ScoreNormalizer implements core.Normalizer over injected score tables.
type ScoreNormalizer struct {
	blacklist *trust.BlacklistFilter
	resolver  *trust.Resolver
	caps      map[core.AdType][core.NumSteps]int
	floors    map[core.AdType]map[core.Tier][core.NumSteps]int
	gateTerms []string
	logger    *zap.Logger
}

// New creates a normalizer over the given tables.
func New(
	blacklist *trust.BlacklistFilter,
	resolver *trust.Resolver,
	caps map[core.AdType][core.NumSteps]int,
	floors map[core.AdType]map[core.Tier][core.NumSteps]int,
	gateTerms []string,
	logger *zap.Logger,
) *ScoreNormalizer {
	return &ScoreNormalizer{
		blacklist: blacklist,
		resolver:  resolver,
		caps:      caps,
		floors:    floors,
		gateTerms: loweredTerms(gateTerms),
		logger:    logger,
	}
}

// NewDefault creates a normalizer over the built-in tables.
func NewDefault(resolver *trust.Resolver, logger *zap.Logger) *ScoreNormalizer {
	return New(
		trust.NewBlacklistFilter(tables.Blacklist()),
		resolver,
		tables.Caps(),
		tables.Floors(),
		tables.GateTerms(),
		logger,
	)
}

// Normalize converts cand plus evidence into a cap-compliant result. It
// never fails: every missing or malformed field has a deterministic default.
func (n *ScoreNormalizer) Normalize(
	cand *core.Candidate,
	evidence *core.EvidenceBundle,
	contentType core.ContentType,
	input, lang string,
) *core.AnalysisResult {
	if cand == nil {
		cand = core.ErrorCandidate(lang)
	}
	if evidence == nil {
		evidence = &core.EvidenceBundle{SourceText: input}
	}

	adType := resolveAdType(cand.AdType, contentType)
	labels := tables.StepLabels(lang)

	// 1. Blacklist short-circuit. Nothing, including brand floors, can
	// override this.
	screened := evidence.SourceText + "\n" + cand.ProductName + "\n" + evidence.ProductName
	if keyword, hit := n.blacklist.Match(screened); hit {
		n.logger.Info("Blacklist match, zeroing result", zap.String("keyword", keyword))
		return n.zeroedResult(input, lang, keyword, contentType, adType, labels)
	}

	// 2. Coerce every step to its expected shape.
	steps := n.coerceSteps(cand, evidence, labels)

	// 3. Red-flag gate over the combined step text.
	n.applyGate(&steps)

	// 4. Trust flags from the evidence text.
	flags := n.resolver.ResolveFlags(screened)

	// 5. Floors (with the product_itself override), then 6. caps.
	n.applyFloors(&steps, adType, flags)
	n.applyCaps(&steps, adType)

	// 7. Totals and safety.
	total := 0
	for _, s := range steps {
		total += s.Score
	}
	total = clamp(total, 0, 100)

	// 8. Product name fallback chain.
	productName := strings.TrimSpace(cand.ProductName)
	if productName == "" {
		productName = strings.TrimSpace(evidence.ProductName)
	}
	if productName == "" {
		productName = strings.TrimSpace(steps[0].Reason)
	}

	return &core.AnalysisResult{
		Input:       input,
		ProductName: productName,
		ContentType: contentType,
		AdType:      adType,
		Brand:       flags.CanonicalBrand,
		Tier:        flags.Tier,
		Steps:       steps,
		TotalScore:  total,
		Safety:      safetyOf(total),
		Badges:      badgesOf(flags),
		Lang:        lang,
		AnalyzedAt:  timeNow(),
	}
}

func loweredTerms(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ZeroResult is the best-effort body for responses where analysis could not
// run at all, e.g. an internal failure or a recovered panic. It keeps the
// full result shape with every score zeroed so clients never need to parse a
// separate error envelope.
func ZeroResult(input, lang string) *core.AnalysisResult {
	labels := tables.StepLabels(lang)
	reason := "분석 결과를 가져오지 못했습니다"
	if lang == "en" {
		reason = "analysis unavailable"
	}

	result := &core.AnalysisResult{
		Input:       input,
		ContentType: core.ContentFreeform,
		AdType:      core.AdUnknown,
		Tier:        core.TierUnknown,
		TotalScore:  0,
		Safety:      core.SafetyRisk,
		Lang:        lang,
		AnalyzedAt:  timeNow(),
	}
	for i, key := range core.StepKeys {
		result.Steps[i] = core.StepResult{
			Key:      key,
			Label:    labels[key],
			Score:    0,
			Reason:   reason,
			Evidence: []string{},
		}
	}
	return result
}

func safetyOf(total int) core.Safety {
	switch {
	case total >= 80:
		return core.SafetySafe
	case total >= 50:
		return core.SafetyCaution
	default:
		return core.SafetyRisk
	}
}

func badgesOf(flags core.TrustFlags) []string {
	var badges []string
	switch flags.Tier {
	case core.TierTopCorp:
		badges = append(badges, "top_corp_brand")
	case core.TierOTC:
		badges = append(badges, "otc_brand")
	case core.TierKnownMid:
		badges = append(badges, "known_brand")
	}
	if flags.IsOfficialChannel {
		badges = append(badges, "official_channel")
	}
	if flags.IsTrustedSeller {
		badges = append(badges, "trusted_seller")
	}
	return badges
}

func resolveAdType(raw string, contentType core.ContentType) core.AdType {
	switch core.AdType(raw) {
	case core.AdProductItself, core.AdBrandAd, core.AdProductAd, core.AdUnknown:
		return core.AdType(raw)
	}
	// The LLM did not commit to a category; derive a conservative default
	// from the content type.
	switch contentType {
	case core.ContentProductName, core.ContentCommerce:
		return core.AdProductItself
	case core.ContentVideo:
		return core.AdProductAd
	default:
		return core.AdUnknown
	}
}

func coerceScore(num json.Number) int {
	f, err := num.Float64()
	if err != nil {
		return 0
	}
	return clamp(int(f), 0, 100)
}
