package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/prompt"
)

// GeminiClient is an implementation of the LLMClient interface using Google
// Gemini.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    *zap.Logger
}

// NewGeminiClient creates a new Gemini client. When webSearch is enabled the
// model may ground its answer with a search tool; grounding cannot be
// combined with a strict response schema, so the JSON shape is then enforced
// by the prompt alone.
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	webSearch bool,
	logger *zap.Logger,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	if webSearch {
		model.Tools = []*genai.Tool{
			{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}},
		}
	} else {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = candidateSchema()
	}

	return &GeminiClient{
		client:    client,
		model:     model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Close closes the Gemini client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// AnalyzeProduct scores one input along the eight evaluation dimensions.
func (c *GeminiClient) AnalyzeProduct(ctx context.Context, req *core.AnalysisRequest) (*core.Candidate, error) {
	model := c.model
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompt.System(req.Lang))},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User(req)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	cand, err := prompt.ParseCandidate(responseText)
	if err != nil {
		c.logger.Warn("Gemini response was not recoverable JSON",
			zap.String("model", c.modelName), zap.Error(err))
		return nil, err
	}
	return cand, nil
}

// candidateSchema is the structured-response shape: eight step objects plus
// the top-level product name and ad-type fields.
func candidateSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"product_name": {Type: genai.TypeString},
			"ad_type": {
				Type: genai.TypeString,
				Enum: []string{"product_itself", "brand_ad", "product_ad", "unknown"},
			},
			"steps": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"key":      {Type: genai.TypeString},
						"score":    {Type: genai.TypeInteger},
						"reason":   {Type: genai.TypeString},
						"evidence": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					},
					Required: []string{"key", "score", "reason"},
				},
			},
		},
		Required: []string{"steps"},
	}
}
