package ai

import "context"

// RuleEvaluation is the schema-constrained result of evaluating one rule
// against one message. Fields are pointers so callers can distinguish a
// missing key in the provider's JSON from an explicit zero value.
type RuleEvaluation struct {
	Passed        *bool   `json:"passed"`
	Score         *int    `json:"score"`
	Justification *string `json:"justification"`
}

// RuleEvaluator is the interface for structured-output rule evaluation.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
// Implementations must either return JSON conforming to the
// passed/score/justification schema or an error; they never return free text.
type RuleEvaluator interface {
	EvaluateRule(ctx context.Context, ruleName, ruleDescription, content string) (*RuleEvaluation, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderStub   ProviderType = "stub"
	ProviderAuto   ProviderType = "auto"
)
