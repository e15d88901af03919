package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claimwise/claimwise/internal/model"
	"github.com/claimwise/claimwise/internal/policy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// loadAppConfig assembles process configuration: defaults, then the viper
// config file, then environment variables for credentials
func loadAppConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.primary.provider"); v != "" {
		cfg.LLM.Primary.Provider = v
	}
	if v := viper.GetString("llm.primary.model"); v != "" {
		cfg.LLM.Primary.Model = v
	}
	if v := viper.GetString("llm.primary.base_url"); v != "" {
		cfg.LLM.Primary.BaseURL = v
	}
	if v := viper.GetString("llm.secondary.provider"); v != "" {
		cfg.LLM.Secondary.Provider = v
	}
	if v := viper.GetString("llm.secondary.model"); v != "" {
		cfg.LLM.Secondary.Model = v
	}
	if v := viper.GetInt("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}

	if v := viper.GetString("policies.path"); v != "" {
		cfg.Policies.Path = v
	}
	if v := viper.GetString("policies.mysql_dsn"); v != "" {
		cfg.Policies.MySQLDSN = v
	}
	if v := viper.GetString("policies.table"); v != "" {
		cfg.Policies.Table = v
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}

	if v := viper.GetFloat64("rate_limiting.requests_per_second"); v > 0 {
		cfg.RateLimiting.RequestsPerSecond = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}

	applyCredentialEnv(&cfg.LLM.Primary)
	applyCredentialEnv(&cfg.LLM.Secondary)

	return cfg
}

// applyCredentialEnv fills provider credentials from the conventional
// environment variables when the config file left them empty
func applyCredentialEnv(pc *model.ProviderConfig) {
	if pc.Provider == "" {
		return
	}

	if pc.APIKey == "" {
		switch strings.ToLower(pc.Provider) {
		case "openai":
			pc.APIKey = os.Getenv("OPENAI_API_KEY")
		case "groq":
			pc.APIKey = os.Getenv("GROQ_API_KEY")
		case "cerebras":
			pc.APIKey = os.Getenv("CEREBRAS_API_KEY")
		case "anthropic", "claude":
			pc.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	if pc.BaseURL == "" && strings.ToLower(pc.Provider) == "ollama" {
		pc.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
}

// loadPolicyStore loads the policy reference data once, per configuration:
// MySQL when a DSN is set, a JSON/YAML file otherwise
func loadPolicyStore(ctx context.Context, cfg *model.Config) (policy.Store, error) {
	if cfg.Policies.MySQLDSN != "" {
		return policy.LoadMySQL(ctx, cfg.Policies.MySQLDSN, cfg.Policies.Table)
	}
	return policy.LoadFile(cfg.Policies.Path)
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View or initialize the Claimwise configuration file.`,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadAppConfig()

		// Never print credentials
		cfg.LLM.Primary.APIKey = redact(cfg.LLM.Primary.APIKey)
		cfg.LLM.Secondary.APIKey = redact(cfg.LLM.Secondary.APIKey)

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}

		fmt.Print(string(data))
		return nil
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Write a default configuration file to $HOME/.claimwise/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		dir := filepath.Join(home, ".claimwise")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		data, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func redact(key string) string {
	if key == "" {
		return ""
	}
	return "<set>"
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
