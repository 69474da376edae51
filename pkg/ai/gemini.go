package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const systemInstruction = "You are an email auditing assistant. Respond strictly in the requested JSON schema."

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type schema struct {
	Type       string            `json:"type"`
	Required   []string          `json:"required,omitempty"`
	Properties map[string]schema `json:"properties,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"response_mime_type,omitempty"`
	ResponseSchema   *schema `json:"response_schema,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// outcomeSchema constrains the model to the passed/score/justification object.
// All three keys are required; a response that cannot satisfy the schema fails
// at the API instead of reaching the pipeline.
var outcomeSchema = schema{
	Type:     "OBJECT",
	Required: []string{"passed", "score", "justification"},
	Properties: map[string]schema{
		"passed":        {Type: "BOOLEAN"},
		"score":         {Type: "INTEGER"},
		"justification": {Type: "STRING"},
	},
}

// GeminiService implements ai.RuleEvaluator using the Gemini generateContent API
type GeminiService struct {
	ApiKey string
	Model  string
	http   *http.Client
}

func NewGeminiService(apiKey, model string) *GeminiService {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiService{
		ApiKey: apiKey,
		Model:  model,
		http:   &http.Client{},
	}
}

// EvaluateRule runs one structured-output call for a (rule, message) pair
func (g *GeminiService) EvaluateRule(ctx context.Context, ruleName, ruleDescription, emailContent string) (*RuleEvaluation, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", g.Model, g.ApiKey)

	userPrompt := fmt.Sprintf(
		"Rule: %s\nDefinition: %s\nEmail Content:\n%s\n\n"+
			"Evaluate this email against the rule and return JSON with keys "+
			"'passed' (bool), 'score' (int 0-100), and 'justification' (str).",
		ruleName, ruleDescription, emailContent,
	)

	reqBody := geminiRequest{
		SystemInstruction: &content{
			Parts: []part{{Text: systemInstruction}},
		},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: userPrompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   &outcomeSchema,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	text := result.Candidates[0].Content.Parts[0].Text

	var evaluation RuleEvaluation
	if err := json.Unmarshal([]byte(text), &evaluation); err != nil {
		return nil, fmt.Errorf("gemini returned non-schema output: %w", err)
	}

	return &evaluation, nil
}
