package llm

import (
	"context"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider("canned")

	if p.Name() != "mock" {
		t.Errorf("expected name 'mock', got %q", p.Name())
	}

	resp, err := p.Call(context.Background(), Request{Prompt: "anything"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp != "canned" {
		t.Errorf("expected canned response, got %q", resp)
	}
}

func TestMockProvider_DefaultResponse(t *testing.T) {
	p := NewMockProvider("")

	resp, err := p.Call(context.Background(), Request{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp == "" {
		t.Error("expected a non-empty default response")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "" {
		t.Errorf("expected provider disabled by default, got %q", cfg.Provider)
	}
	if cfg.Timeout != 30 {
		t.Errorf("expected 30s timeout, got %d", cfg.Timeout)
	}
}
