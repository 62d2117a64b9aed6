package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/trust"
)

func newTestNormalizer() *ScoreNormalizer {
	return NewDefault(trust.NewDefaultResolver(), zap.NewNop())
}

// candidateWithScores builds a well-formed candidate with the given score for
// every step.
func candidateWithScores(adType string, score int) *core.Candidate {
	steps := make([]core.CandidateStep, core.NumSteps)
	for i, key := range core.StepKeys {
		steps[i] = core.CandidateStep{
			Key:      key,
			Score:    json.Number(jsonInt(score)),
			Reason:   "근거 있음",
			Evidence: json.RawMessage(`["인용구"]`),
		}
	}
	return &core.Candidate{ProductName: "테스트 제품", AdType: adType, Steps: steps}
}

func jsonInt(v int) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func sumScores(result *core.AnalysisResult) int {
	total := 0
	for _, s := range result.Steps {
		total += s.Score
	}
	return total
}

func TestNormalizeTotalEqualsStepSumAndRespectsCaps(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 100)

	result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "무명 브랜드 후기"}, core.ContentVideo, "input", "ko")

	wantCaps := [core.NumSteps]int{15, 15, 15, 10, 15, 10, 10, 10}
	for i, s := range result.Steps {
		assert.Equal(t, wantCaps[i], s.Score, "step %s must be clamped to its cap", s.Key)
	}
	assert.Equal(t, sumScores(result), result.TotalScore)
	assert.Equal(t, 100, result.TotalScore)
	assert.Equal(t, core.SafetySafe, result.Safety)
}

func TestNormalizeBlacklistZeroesEverything(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 15)
	evidence := &core.EvidenceBundle{SourceText: "제목: 정관장 홍삼\n설명: 마약 성분 포함"}

	result := n.Normalize(cand, evidence, core.ContentVideo, "input", "ko")

	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, core.SafetyRisk, result.Safety)
	assert.Equal(t, []string{"blacklisted"}, result.Badges)
	for _, s := range result.Steps {
		assert.Equal(t, 0, s.Score)
		assert.Equal(t, []string{"마약"}, s.Evidence)
	}
	// Brand floors must not resurrect a blacklisted result.
	assert.Equal(t, core.TierUnknown, result.Tier)
}

func TestNormalizeGateCapsExpressionAndEfficacy(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 10)
	cand.Steps[3].Reason = "만병통치라고 주장함"

	result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "무명 채널"}, core.ContentVideo, "input", "ko")

	assert.Equal(t, gateCeiling, result.Steps[3].Score, "expression must be gated")
	assert.Equal(t, gateCeiling, result.Steps[4].Score, "efficacy must be gated")
	assert.Equal(t, 10, result.Steps[0].Score, "other steps unaffected")
}

func TestNormalizeTrustedFloorRaisesGatedScore(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 10)
	cand.Steps[3].Reason = "100% 효과 보장이라는 표현 사용"

	evidence := &core.EvidenceBundle{SourceText: "채널: 정관장 공식 채널"}
	result := n.Normalize(cand, evidence, core.ContentVideo, "input", "ko")

	// product_ad TopCorp floor row: {12, 12, 12, 7, 10, 7, 7, 7}. The gate
	// fires first, then the floor lifts expression back to 7.
	assert.Equal(t, core.TierTopCorp, result.Tier)
	assert.Equal(t, 7, result.Steps[3].Score)
	assert.Equal(t, 10, result.Steps[4].Score)
	assert.Equal(t, 12, result.Steps[0].Score)
}

func TestNormalizeProductItselfZeroesInapplicableSteps(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductItself), 10)

	evidence := &core.EvidenceBundle{SourceText: "상품명: 정관장 홍삼정", ProductName: "정관장 홍삼정"}
	result := n.Normalize(cand, evidence, core.ContentCommerce, "input", "ko")

	// product_itself TopCorp floor row: {15, 18, 15, 10, 10, 0, 0, 7}, with
	// call_to_action and visual forced to zero regardless of LLM output.
	assert.Equal(t, 15, result.Steps[0].Score)
	assert.Equal(t, 18, result.Steps[1].Score)
	assert.Equal(t, 0, result.Steps[5].Score, "call_to_action is not applicable")
	assert.Equal(t, 0, result.Steps[6].Score, "visual is not applicable")
	assert.Equal(t, sumScores(result), result.TotalScore)
}

func TestNormalizeHeuristicOnlyFloorsAtKnownMid(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 0)

	evidence := &core.EvidenceBundle{SourceText: "채널: 무명브랜드 공식 채널"}
	result := n.Normalize(cand, evidence, core.ContentVideo, "input", "ko")

	// No brand tier resolved, but the official-channel heuristic floors at
	// the KnownMid row: {8, 8, 8, 5, 7, 5, 5, 5}.
	assert.Equal(t, core.TierUnknown, result.Tier)
	assert.Equal(t, 8, result.Steps[0].Score)
	assert.Equal(t, 5, result.Steps[3].Score)
	assert.Contains(t, result.Badges, "official_channel")
}

func TestNormalizeNoSignalsNoFloors(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 0)

	result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "그냥 후기"}, core.ContentVideo, "input", "ko")

	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, core.SafetyRisk, result.Safety)
	assert.Empty(t, result.Badges)
}

func TestNormalizeInvalidAdTypeDerivedFromContentType(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		contentType core.ContentType
		want        core.AdType
	}{
		{core.ContentCommerce, core.AdProductItself},
		{core.ContentProductName, core.AdProductItself},
		{core.ContentVideo, core.AdProductAd},
		{core.ContentFreeform, core.AdUnknown},
	}
	for _, tt := range tests {
		cand := candidateWithScores("광고같음", 5)
		result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "후기"}, tt.contentType, "input", "ko")
		assert.Equal(t, tt.want, result.AdType, "content type %s", tt.contentType)
	}
}

func TestNormalizeMalformedCandidate(t *testing.T) {
	n := newTestNormalizer()
	cand := &core.Candidate{
		AdType: string(core.AdProductAd),
		Steps: []core.CandidateStep{
			{Key: "identification", Score: "abc", Reason: "점수가 숫자가 아님"},
			{Key: "brand", Score: "-5"},
			{Key: "seller", Score: "7.9"},
		},
	}

	result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "후기"}, core.ContentVideo, "input", "ko")

	assert.Equal(t, 0, result.Steps[0].Score, "non-numeric score coerces to zero")
	assert.Equal(t, 0, result.Steps[1].Score, "negative score clamps to zero")
	assert.Equal(t, 7, result.Steps[2].Score, "fractional score truncates")
	for i := 3; i < core.NumSteps; i++ {
		assert.Equal(t, 0, result.Steps[i].Score, "missing step defaults to zero")
	}
}

func TestNormalizeKeylessStepsMatchedByPosition(t *testing.T) {
	n := newTestNormalizer()
	steps := make([]core.CandidateStep, core.NumSteps)
	for i := range steps {
		steps[i] = core.CandidateStep{Score: json.Number(jsonInt(i + 1)), Reason: "위치 기반"}
	}
	cand := &core.Candidate{AdType: string(core.AdProductAd), Steps: steps}

	result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "후기"}, core.ContentVideo, "input", "ko")

	for i := 0; i < core.NumSteps; i++ {
		assert.Equal(t, core.StepKeys[i], result.Steps[i].Key)
		assert.Equal(t, i+1, result.Steps[i].Score)
	}
}

func TestNormalizeEvidenceFallbackFromSourceText(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 5)
	for i := range cand.Steps {
		cand.Steps[i].Evidence = nil
	}

	evidence := &core.EvidenceBundle{
		SourceText: "제목: 홍삼 먹방\n채널: 먹방왕\n자유로운 한 줄\n설명: 맛있어요\nURL: https://example.com",
	}
	result := n.Normalize(cand, evidence, core.ContentVideo, "input", "ko")

	want := []string{"제목: 홍삼 먹방", "채널: 먹방왕", "설명: 맛있어요"}
	assert.Equal(t, want, result.Steps[0].Evidence, "labeled lines only, capped at three")
}

func TestNormalizeBareStringEvidenceAccepted(t *testing.T) {
	n := newTestNormalizer()
	cand := candidateWithScores(string(core.AdProductAd), 5)
	cand.Steps[0].Evidence = json.RawMessage(`"한 줄 인용"`)

	result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "후기"}, core.ContentVideo, "input", "ko")
	assert.Equal(t, []string{"한 줄 인용"}, result.Steps[0].Evidence)
}

func TestNormalizeProductNameFallbackChain(t *testing.T) {
	n := newTestNormalizer()

	// LLM name wins.
	cand := candidateWithScores(string(core.AdProductAd), 5)
	result := n.Normalize(cand, &core.EvidenceBundle{SourceText: "x", ProductName: "추출된 이름"}, core.ContentVideo, "input", "ko")
	assert.Equal(t, "테스트 제품", result.ProductName)

	// Evidence name next.
	cand.ProductName = ""
	result = n.Normalize(cand, &core.EvidenceBundle{SourceText: "x", ProductName: "추출된 이름"}, core.ContentVideo, "input", "ko")
	assert.Equal(t, "추출된 이름", result.ProductName)

	// Identification reason last.
	result = n.Normalize(cand, &core.EvidenceBundle{SourceText: "x"}, core.ContentVideo, "input", "ko")
	assert.Equal(t, result.Steps[0].Reason, result.ProductName)
}

func TestNormalizeNilCandidate(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(nil, &core.EvidenceBundle{SourceText: "후기"}, core.ContentFreeform, "input", "ko")
	require.NotNil(t, result)
	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, core.SafetyRisk, result.Safety)
}

func TestNormalizeUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = orig }()

	n := newTestNormalizer()
	result := n.Normalize(candidateWithScores(string(core.AdProductAd), 5), &core.EvidenceBundle{SourceText: "후기"}, core.ContentVideo, "input", "ko")
	assert.Equal(t, fixed, result.AnalyzedAt)
}

func TestSafetyOf(t *testing.T) {
	assert.Equal(t, core.SafetySafe, safetyOf(100))
	assert.Equal(t, core.SafetySafe, safetyOf(80))
	assert.Equal(t, core.SafetyCaution, safetyOf(79))
	assert.Equal(t, core.SafetyCaution, safetyOf(50))
	assert.Equal(t, core.SafetyRisk, safetyOf(49))
	assert.Equal(t, core.SafetyRisk, safetyOf(0))
}

func TestNormalizeIdempotentForSameInput(t *testing.T) {
	n := newTestNormalizer()
	evidence := &core.EvidenceBundle{SourceText: "제목: 정관장 홍삼정"}

	a := n.Normalize(candidateWithScores(string(core.AdProductAd), 9), evidence, core.ContentVideo, "input", "ko")
	b := n.Normalize(candidateWithScores(string(core.AdProductAd), 9), evidence, core.ContentVideo, "input", "ko")

	assert.Equal(t, a.TotalScore, b.TotalScore)
	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, a.Tier, b.Tier)
}

func TestZeroResultCarriesFullShape(t *testing.T) {
	result := ZeroResult("수상한 제품", "ko")

	assert.Equal(t, "수상한 제품", result.Input)
	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, core.SafetyRisk, result.Safety)
	assert.Equal(t, core.AdUnknown, result.AdType)
	assert.Equal(t, core.TierUnknown, result.Tier)
	assert.Equal(t, "ko", result.Lang)
	for i, step := range result.Steps {
		assert.Equal(t, core.StepKeys[i], step.Key)
		assert.Zero(t, step.Score)
		assert.NotEmpty(t, step.Label)
		assert.Contains(t, step.Reason, "가져오지 못했습니다")
	}

	en := ZeroResult("", "en")
	assert.Contains(t, en.Steps[0].Reason, "analysis unavailable")
	assert.Equal(t, "Product identification", en.Steps[0].Label)
}
