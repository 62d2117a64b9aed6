package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joojungwoo/yakson/internal/core"
)

func TestParseCandidateCleanJSON(t *testing.T) {
	cand, err := ParseCandidate(`{"product_name":"홍삼정","ad_type":"product_ad","steps":[{"key":"identification","score":10,"reason":"ok"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "홍삼정", cand.ProductName)
	assert.Equal(t, "product_ad", cand.AdType)
	require.Len(t, cand.Steps, 1)
	assert.Equal(t, "identification", cand.Steps[0].Key)
}

func TestParseCandidateRecoversFromProse(t *testing.T) {
	text := "Here is my analysis:\n```json\n{\"product_name\":\"홍삼정\",\"steps\":[]}\n```\nHope that helps!"
	cand, err := ParseCandidate(text)
	require.NoError(t, err)
	assert.Equal(t, "홍삼정", cand.ProductName)
}

func TestParseCandidateFractionalScoreTolerated(t *testing.T) {
	cand, err := ParseCandidate(`{"steps":[{"key":"brand","score":14.5,"reason":"ok"}]}`)
	require.NoError(t, err)
	require.Len(t, cand.Steps, 1)
	assert.Equal(t, "14.5", cand.Steps[0].Score.String())
}

func TestParseCandidateNoJSON(t *testing.T) {
	_, err := ParseCandidate("I cannot answer that.")
	assert.Error(t, err)
}

func TestParseCandidateMalformedJSON(t *testing.T) {
	_, err := ParseCandidate(`{"product_name": broken`)
	assert.Error(t, err)
}

func TestUserPromptEmbedsEvidenceAndStepKeys(t *testing.T) {
	req := &core.AnalysisRequest{
		Input:       "https://example.com/p/1",
		ContentType: core.ContentCommerce,
		Lang:        "ko",
		Evidence:    &core.EvidenceBundle{SourceText: "상품명: 정관장 홍삼정"},
	}
	got := User(req)

	assert.Contains(t, got, "상품명: 정관장 홍삼정")
	assert.Contains(t, got, "https://example.com/p/1")
	for _, key := range core.StepKeys {
		assert.Contains(t, got, key)
	}
}

func TestSystemPromptByLanguage(t *testing.T) {
	assert.Contains(t, System("ko"), "신뢰도")
	assert.Contains(t, System("en"), "trustworthiness")
}
