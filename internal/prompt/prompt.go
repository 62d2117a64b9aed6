// Package prompt builds the instruction strings and response schema shared
// by every LLM provider adapter, and recovers candidate objects from
// imperfect model output.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/tables"
)

// System returns the system instruction for the scoring call.
func System(lang string) string {
	if lang == "en" {
		return "You are a product trustworthiness analysis system. " +
			"You score the submitted product reference along eight fixed dimensions. " +
			"Respond only with a single JSON object and nothing else."
	}
	return "당신은 제품 신뢰도 분석 시스템입니다. " +
		"제출된 제품 정보를 여덟 가지 고정 항목으로 평가하세요. " +
		"JSON 객체 하나만으로 응답하세요."
}

// User returns the user instruction embedding the evidence source text, the
// resolved content category, and the step metadata.
func User(req *core.AnalysisRequest) string {
	labels := tables.StepLabels(req.Lang)

	var b strings.Builder
	fmt.Fprintf(&b, "콘텐츠 유형: %s\n", req.ContentType)
	fmt.Fprintf(&b, "입력: %s\n\n", req.Input)

	b.WriteString("평가 항목 (key 순서 고정):\n")
	for i, key := range core.StepKeys {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, key, labels[key])
	}

	b.WriteString("\n응답 JSON 형식:\n")
	b.WriteString(`{"product_name": string, "ad_type": "product_itself"|"brand_ad"|"product_ad"|"unknown", ` +
		`"steps": [{"key": string, "score": 0-20, "reason": string, "evidence": [string, ...]} x 8]}`)
	b.WriteString("\n\n수집된 근거:\n")
	b.WriteString(req.Evidence.SourceText)

	return b.String()
}

// ParseCandidate recovers a candidate object from model output. It first
// tries the text as-is, then the widest '{'..'}' slice, the same recovery
// the provider SDKs needed for models that wrap JSON in prose.
func ParseCandidate(text string) (*core.Candidate, error) {
	var cand core.Candidate
	if err := json.Unmarshal([]byte(text), &cand); err == nil {
		return &cand, nil
	}

	jsonStart := strings.IndexByte(text, '{')
	jsonEnd := strings.LastIndexByte(text, '}')
	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON object in LLM response")
	}

	if err := json.Unmarshal([]byte(text[jsonStart:jsonEnd+1]), &cand); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return &cand, nil
}
