package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaService implements RuleEvaluator using a local Ollama instance
type OllamaService struct {
	getBaseURL func() string // Dynamic getter for BaseURL
	getModel   func() string // Dynamic getter for Model
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	// Use static values (for backward compatibility when no runtime config)
	return &OllamaService{
		getBaseURL: func() string { return baseURL },
		getModel:   func() string { return model },
	}
}

// NewOllamaServiceWithGetters creates a new Ollama service with dynamic getters
// so the settings API can swap the endpoint at runtime
func NewOllamaServiceWithGetters(getBaseURL, getModel func() string) *OllamaService {
	return &OllamaService{
		getBaseURL: getBaseURL,
		getModel:   getModel,
	}
}

// EvaluateRule implements RuleEvaluator. Ollama has no response-schema support,
// so the call uses format:"json" plus an explicit key instruction and treats
// any non-JSON output as a failed call.
func (o *OllamaService) EvaluateRule(ctx context.Context, ruleName, ruleDescription, emailContent string) (*RuleEvaluation, error) {
	url := o.getBaseURL() + "/api/generate"

	prompt := fmt.Sprintf(
		"You are an email auditing assistant. Respond strictly in the requested JSON schema.\n\n"+
			"Rule: %s\nDefinition: %s\nEmail Content:\n%s\n\n"+
			"Evaluate this email against the rule and return JSON with keys "+
			"'passed' (bool), 'score' (int 0-100), and 'justification' (str). "+
			"Return the JSON object only, no other text.",
		ruleName, ruleDescription, emailContent,
	)

	payload := map[string]interface{}{
		"model":  o.getModel(),
		"prompt": prompt,
		"stream": false,
		"format": "json",
		"options": map[string]interface{}{
			"temperature": 0.3,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var evaluation RuleEvaluation
	if err := json.Unmarshal([]byte(result.Response), &evaluation); err != nil {
		return nil, fmt.Errorf("ollama returned non-schema output: %w", err)
	}

	return &evaluation, nil
}
