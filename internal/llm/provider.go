package llm

import (
	"context"
	"regexp"
	"strings"
)

// Caller defines the interface for model backends. Implementations must
// return a distinguishable error on transport, auth, or non-2xx failure so
// callers can run their degrade paths (heuristic extraction, deterministic
// adjudication fallback).
type Caller interface {
	// Name returns the provider name
	Name() string

	// Call sends a single prompt and returns the raw response text
	Call(ctx context.Context, req Request) (string, error)
}

// Request contains the input for a model call
type Request struct {
	// Prompt is the user-role message content
	Prompt string

	// System is an optional system-role message
	System string

	// MaxTokens bounds the response length
	MaxTokens int

	// Temperature controls sampling; the pipeline always uses 0 for
	// deterministic decoding intent
	Temperature float32
}

// Config holds model provider configuration
type Config struct {
	// Provider name: "openai", "groq", "cerebras", "ollama", "anthropic", "mock", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (Groq, Cerebras, Ollama, proxies)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens default cap when the request does not set one
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 600,
	}
}

var codeFenceRE = regexp.MustCompile("^```(?:json)?\\s*|```$")

// StripCodeFence removes optional surrounding markdown code-fence markers.
// Models frequently wrap JSON output in ```json ... ``` despite instructions.
func StripCodeFence(s string) string {
	return strings.TrimSpace(codeFenceRE.ReplaceAllString(strings.TrimSpace(s), ""))
}
