package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Base URLs for hosted OpenAI-compatible backends
const (
	groqBaseURL     = "https://api.groq.com/openai/v1"
	cerebrasBaseURL = "https://api.cerebras.ai/v1"
)

// Default models per OpenAI-compatible backend
const (
	defaultOpenAIModel   = openai.GPT4oMini
	defaultGroqModel     = "llama-3.1-8b-instant"
	defaultCerebrasModel = "llama3.1-8b"
)

// OpenAIProvider implements Caller for OpenAI-compatible chat completion
// APIs. Groq and Cerebras expose the same wire protocol, so all three are
// served by one provider differing only in base URL and default model.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a provider for the OpenAI API or a compatible
// endpoint (name "openai", "groq", or "cerebras").
func NewOpenAIProvider(name string, config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	switch {
	case config.BaseURL != "":
		clientConfig.BaseURL = config.BaseURL
	case name == "groq":
		clientConfig.BaseURL = groqBaseURL
	case name == "cerebras":
		clientConfig.BaseURL = cerebrasBaseURL
	}

	return &OpenAIProvider{
		name:   name,
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Call sends a single chat completion request
func (p *OpenAIProvider) Call(ctx context.Context, req Request) (string, error) {
	model := p.config.Model
	if model == "" {
		switch p.name {
		case "groq":
			model = defaultGroqModel
		case "cerebras":
			model = defaultCerebrasModel
		default:
			model = defaultOpenAIModel
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 600
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", p.name)
	}

	return resp.Choices[0].Message.Content, nil
}
