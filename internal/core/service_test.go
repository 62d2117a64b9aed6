package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	cand    *Candidate
	err     error
	gotReq  *AnalysisRequest
	gotLang string
}

func (f *fakeLLM) AnalyzeProduct(ctx context.Context, req *AnalysisRequest) (*Candidate, error) {
	f.gotReq = req
	f.gotLang = req.Lang
	return f.cand, f.err
}

type fixedClassifier struct{ result ContentType }

func (f fixedClassifier) Classify(input string) ContentType { return f.result }

type fakeExtractor struct {
	bundle *EvidenceBundle
	err    error
	called bool
}

func (f *fakeExtractor) Extract(ctx context.Context, input, lang string) (*EvidenceBundle, error) {
	f.called = true
	return f.bundle, f.err
}

// passNormalizer records its inputs and returns a canned result.
type passNormalizer struct {
	gotCand     *Candidate
	gotEvidence *EvidenceBundle
}

func (p *passNormalizer) Normalize(cand *Candidate, evidence *EvidenceBundle, contentType ContentType, input, lang string) *AnalysisResult {
	p.gotCand = cand
	p.gotEvidence = evidence
	return &AnalysisResult{Input: input, ContentType: contentType, Lang: lang}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	svc := NewAnalysisService(&fakeLLM{}, fixedClassifier{ContentFreeform}, &fakeExtractor{}, &fakeExtractor{}, &passNormalizer{}, zap.NewNop(), time.Second)

	_, err := svc.Analyze(context.Background(), "   \n\t ", "ko")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAnalyzeRoutesVideoToVideoExtractor(t *testing.T) {
	video := &fakeExtractor{bundle: &EvidenceBundle{URL: "u", SourceText: "video evidence"}}
	commerce := &fakeExtractor{}
	norm := &passNormalizer{}
	llm := &fakeLLM{cand: &Candidate{}}

	svc := NewAnalysisService(llm, fixedClassifier{ContentVideo}, video, commerce, norm, zap.NewNop(), time.Second)
	_, err := svc.Analyze(context.Background(), "https://youtu.be/x", "ko")
	require.NoError(t, err)

	assert.True(t, video.called)
	assert.False(t, commerce.called)
	assert.Equal(t, "video evidence", norm.gotEvidence.SourceText)
	assert.Equal(t, norm.gotEvidence, llm.gotReq.Evidence)
}

func TestAnalyzeExtractionFailureDegradesToRawInput(t *testing.T) {
	commerce := &fakeExtractor{err: errors.New("blocked")}
	norm := &passNormalizer{}

	svc := NewAnalysisService(&fakeLLM{cand: &Candidate{}}, fixedClassifier{ContentCommerce}, &fakeExtractor{}, commerce, norm, zap.NewNop(), time.Second)
	_, err := svc.Analyze(context.Background(), "https://shop.example/p/1", "ko")
	require.NoError(t, err)

	require.NotNil(t, norm.gotEvidence)
	assert.Equal(t, "https://shop.example/p/1", norm.gotEvidence.URL)
	assert.Equal(t, "https://shop.example/p/1", norm.gotEvidence.SourceText)
}

func TestAnalyzeProductNameSkipsExtraction(t *testing.T) {
	video := &fakeExtractor{}
	commerce := &fakeExtractor{}
	norm := &passNormalizer{}

	svc := NewAnalysisService(&fakeLLM{cand: &Candidate{}}, fixedClassifier{ContentProductName}, video, commerce, norm, zap.NewNop(), time.Second)
	_, err := svc.Analyze(context.Background(), "정관장 홍삼정", "ko")
	require.NoError(t, err)

	assert.False(t, video.called)
	assert.False(t, commerce.called)
	assert.Equal(t, "정관장 홍삼정", norm.gotEvidence.ProductName)
	assert.Equal(t, "정관장 홍삼정", norm.gotEvidence.SourceText)
}

func TestAnalyzeLLMFailureSubstitutesErrorCandidate(t *testing.T) {
	norm := &passNormalizer{}
	llm := &fakeLLM{err: errors.New("model down")}

	svc := NewAnalysisService(llm, fixedClassifier{ContentFreeform}, &fakeExtractor{}, &fakeExtractor{}, norm, zap.NewNop(), time.Second)
	result, err := svc.Analyze(context.Background(), "이 제품 어때요", "ko")
	require.NoError(t, err, "an LLM failure must not fail the request")
	require.NotNil(t, result)

	require.NotNil(t, norm.gotCand)
	assert.Equal(t, string(AdUnknown), norm.gotCand.AdType)
	assert.Len(t, norm.gotCand.Steps, NumSteps)
	for _, s := range norm.gotCand.Steps {
		assert.Equal(t, "0", s.Score.String())
	}
}

func TestAnalyzePassesLangThrough(t *testing.T) {
	llm := &fakeLLM{cand: &Candidate{}}
	svc := NewAnalysisService(llm, fixedClassifier{ContentFreeform}, &fakeExtractor{}, &fakeExtractor{}, &passNormalizer{}, zap.NewNop(), time.Second)

	result, err := svc.Analyze(context.Background(), "some product", "en")
	require.NoError(t, err)
	assert.Equal(t, "en", llm.gotLang)
	assert.Equal(t, "en", result.Lang)
}
