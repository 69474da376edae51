package ai

import "fmt"

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama", "stub" or "auto"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// DynamicConfig is like Config but with runtime getters for the Ollama
// endpoint, so the settings API can repoint a running server.
type DynamicConfig struct {
	Provider ProviderType

	GeminiAPIKey string
	GeminiModel  string

	GetOllamaBaseURL func() string
	GetOllamaModel   func() string
}

// NewRuleEvaluator creates a RuleEvaluator based on the config.
// This is the factory function - switch AI provider by changing config.Provider
func NewRuleEvaluator(cfg Config) (RuleEvaluator, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	case ProviderStub:
		return NewStubService(), nil

	default:
		// Default to Gemini if API key is available, otherwise Ollama
		if cfg.GeminiAPIKey != "" {
			return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
		}
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	}
}

// NewRuleEvaluatorWithDynamicConfig creates a RuleEvaluator whose Ollama
// endpoint follows the runtime settings getters
func NewRuleEvaluatorWithDynamicConfig(cfg DynamicConfig) (RuleEvaluator, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil

	case ProviderOllama:
		return NewOllamaServiceWithGetters(cfg.GetOllamaBaseURL, cfg.GetOllamaModel), nil

	case ProviderStub:
		return NewStubService(), nil

	default:
		if cfg.GeminiAPIKey != "" {
			return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
		}
		return NewOllamaServiceWithGetters(cfg.GetOllamaBaseURL, cfg.GetOllamaModel), nil
	}
}
