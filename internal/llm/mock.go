package llm

import "context"

// MockProvider implements Caller with a canned response. Used for local
// development and demos without API keys (CLAIMWISE_LLM_PROVIDER=mock).
type MockProvider struct {
	Response string
	Err      error
}

// NewMockProvider creates a mock provider returning the given response
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{Response: response}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Call returns the canned response without any network activity
func (p *MockProvider) Call(ctx context.Context, req Request) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if p.Response == "" {
		return "Mock response for testing", nil
	}
	return p.Response, nil
}
