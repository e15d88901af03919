package llm

import (
	"fmt"
	"strings"

	"github.com/claimwise/claimwise/internal/model"
)

// NewCaller creates a model caller based on configuration
func NewCaller(config Config) (Caller, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai", "groq", "cerebras":
		return NewOpenAIProvider(provider, config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "mock":
		return NewMockProvider(""), nil

	case "":
		// No provider configured - return nil (model calls disabled,
		// pipeline runs on heuristics and deterministic fallback)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, groq, cerebras, anthropic, ollama, mock)", config.Provider)
	}
}

// ConfigFromModel converts a model.ProviderConfig to llm.Config
func ConfigFromModel(pc model.ProviderConfig, llmCfg model.LLMConfig) Config {
	return Config{
		Provider:  pc.Provider,
		Model:     pc.Model,
		APIKey:    pc.APIKey,
		BaseURL:   pc.BaseURL,
		Timeout:   llmCfg.Timeout,
		MaxTokens: llmCfg.ExtractMaxTokens,
	}
}

// NewCallerFromModel builds the complete caller chain from process
// configuration: primary provider, optional secondary failover.
func NewCallerFromModel(cfg model.LLMConfig) (Caller, error) {
	primary, err := NewCaller(ConfigFromModel(cfg.Primary, cfg))
	if err != nil {
		return nil, fmt.Errorf("primary provider: %w", err)
	}
	if primary == nil {
		return nil, nil
	}

	if cfg.Secondary.Provider == "" {
		return primary, nil
	}

	secondary, err := NewCaller(ConfigFromModel(cfg.Secondary, cfg))
	if err != nil {
		return nil, fmt.Errorf("secondary provider: %w", err)
	}

	return NewFailover(primary, secondary), nil
}
