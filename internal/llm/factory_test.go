package llm

import (
	"testing"

	"github.com/claimwise/claimwise/internal/model"
)

func TestNewCaller_Providers(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{"openai", "openai"},
		{"groq", "groq"},
		{"cerebras", "cerebras"},
		{"anthropic", "anthropic"},
		{"ollama", "ollama"},
		{"mock", "mock"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			caller, err := NewCaller(Config{Provider: tt.provider, APIKey: "test-key"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if caller.Name() != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, caller.Name())
			}
		})
	}
}

func TestNewCaller_EmptyProviderDisabled(t *testing.T) {
	caller, err := NewCaller(Config{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if caller != nil {
		t.Error("expected nil caller when no provider is configured")
	}
}

func TestNewCaller_UnknownProvider(t *testing.T) {
	if _, err := NewCaller(Config{Provider: "watson"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewCallerFromModel_Failover(t *testing.T) {
	caller, err := NewCallerFromModel(model.LLMConfig{
		Primary:   model.ProviderConfig{Provider: "mock"},
		Secondary: model.ProviderConfig{Provider: "mock"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := caller.(*Failover); !ok {
		t.Errorf("expected failover wrapper, got %T", caller)
	}
}

func TestNewCallerFromModel_NoSecondary(t *testing.T) {
	caller, err := NewCallerFromModel(model.LLMConfig{
		Primary: model.ProviderConfig{Provider: "mock"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := caller.(*MockProvider); !ok {
		t.Errorf("expected bare provider without secondary, got %T", caller)
	}
}

func TestNewCallerFromModel_Disabled(t *testing.T) {
	caller, err := NewCallerFromModel(model.LLMConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if caller != nil {
		t.Errorf("expected nil caller, got %T", caller)
	}
}
