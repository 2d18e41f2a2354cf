// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiCategorySuggester implements adapter.CategorySuggester using Google Gemini.
type GeminiCategorySuggester struct {
	apiKey    string
	modelName string
}

// NewGeminiCategorySuggester creates a new Gemini suggester. An empty model name
// selects the default model.
func NewGeminiCategorySuggester(apiKey, modelName string) *GeminiCategorySuggester {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiCategorySuggester{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiCategorySuggester) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini to pick one of the candidate categories for a transaction.
func (s *GeminiCategorySuggester) Suggest(ctx context.Context, request adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	suggestion, err := parseSuggestion(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestion, nil
}

// buildSuggestionPrompt creates the prompt for Gemini.
func buildSuggestionPrompt(request adapter.CategorySuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString(`You categorize personal finance transactions.
Pick exactly one category for the transaction below. The category MUST be one of the
allowed categories, spelled exactly as listed. Use "Other" when nothing fits.

ALLOWED CATEGORIES:
`)
	for _, c := range request.Candidates {
		sb.WriteString("- " + c + "\n")
	}

	sb.WriteString("\nTRANSACTION:\n")
	sb.WriteString(fmt.Sprintf("- Type: %s\n", request.Type))
	sb.WriteString(fmt.Sprintf("- Amount: %s\n", request.Amount.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("- Notes: %q\n", request.Notes))

	sb.WriteString(`
Respond with a single JSON object:
{"category": "one allowed category", "confidence": 0.0-1.0, "reasoning": "short explanation"}

RESPONSE FORMAT: Return only the JSON object, without additional text.
`)

	return sb.String()
}

// responseText extracts the first text part of a Gemini response.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseSuggestion decodes a Gemini reply, tolerating markdown code fences.
func parseSuggestion(text string) (*adapter.CategorySuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, text)
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		return nil, fmt.Errorf("response has no category")
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &adapter.CategorySuggestion{
		Category:   category,
		Confidence: confidence,
		Reasoning:  raw.Reasoning,
	}, nil
}
