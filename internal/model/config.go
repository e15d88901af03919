package model

import (
	"runtime"
	"time"
)

// Config holds the complete process configuration
type Config struct {
	LLM          LLMConfig         `yaml:"llm"`
	Policies     PolicyConfig      `yaml:"policies"`
	Cache        CacheConfig       `yaml:"cache"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency"`
	Server       ServerConfig      `yaml:"server"`
}

// ProviderConfig identifies one model backend
type ProviderConfig struct {
	// Provider name: "openai", "groq", "cerebras", "ollama", "anthropic", "mock", ""
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// LLMConfig configures the model caller used by the extraction and
// adjudication engines. Secondary, when set, is tried after Primary fails.
type LLMConfig struct {
	Primary   ProviderConfig `yaml:"primary"`
	Secondary ProviderConfig `yaml:"secondary"`

	// Timeout for a single model call, in seconds
	Timeout int `yaml:"timeout"`

	// Output length caps for the two call sites
	ExtractMaxTokens int `yaml:"extract_max_tokens"`
	JudgeMaxTokens   int `yaml:"judge_max_tokens"`
}

// PolicyConfig locates the policy reference data.
// Path points to a JSON or YAML mapping; MySQLDSN, when set, loads the same
// mapping from a MySQL table instead. Both are load-once at startup.
type PolicyConfig struct {
	Path     string `yaml:"path"`
	MySQLDSN string `yaml:"mysql_dsn"`
	Table    string `yaml:"table"`
}

// CacheConfig controls the model-response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RateLimitConfig controls per-provider rate limiting of model calls
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Primary: ProviderConfig{
				Provider: "", // Disabled by default: pipeline degrades to heuristics
			},
			Timeout:          30,
			ExtractMaxTokens: 600,
			JudgeMaxTokens:   500,
		},
		Policies: PolicyConfig{
			Path:  "policies.json",
			Table: "policies",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".claimwise-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
