// Package config loads server configuration from defaults, an optional YAML
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SALES_ADVISOR_SERVER_PORT.
const EnvPrefix = "SALES_ADVISOR"

// Supported completion providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// providerKeyEnv names the bare credential variable of each provider.
var providerKeyEnv = map[string]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	LLM      LLMConfig      `mapstructure:"llm" yaml:"llm"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int    `mapstructure:"port" yaml:"port"`
	BindAddress    string `mapstructure:"bind_address" yaml:"bind_address"`
	EnableCORS     bool   `mapstructure:"enable_cors" yaml:"enable_cors"`
	AllowOrigins   string `mapstructure:"allow_origins" yaml:"allow_origins"`
	ReadTimeout    int    `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeout   int    `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"` // 0 leaves slow completions unbounded
	IdleTimeout    int    `mapstructure:"idle_timeout_seconds" yaml:"idle_timeout_seconds"`
	BodyLimitBytes int64  `mapstructure:"body_limit_bytes" yaml:"body_limit_bytes"`
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" yaml:"provider"`
	Model       string  `mapstructure:"model" yaml:"model,omitempty"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Temperature float32 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// AnalysisConfig contains statistics engine settings.
type AnalysisConfig struct {
	Engine            string `mapstructure:"engine" yaml:"engine"`
	SampleRows        int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	DuckDBThreads     int    `mapstructure:"duckdb_threads" yaml:"duckdb_threads"`
	DuckDBMemoryLimit string `mapstructure:"duckdb_memory_limit" yaml:"duckdb_memory_limit"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level                string `mapstructure:"level" yaml:"level"`
	Format               string `mapstructure:"format" yaml:"format"`
	EnableRequestLogging bool   `mapstructure:"enable_request_logging" yaml:"enable_request_logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:           5000,
			BindAddress:    "0.0.0.0",
			EnableCORS:     true,
			AllowOrigins:   "*",
			ReadTimeout:    30,
			WriteTimeout:   0,
			IdleTimeout:    120,
			BodyLimitBytes: 25 << 20,
		},
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Temperature: 0,
			MaxTokens:   0,
		},
		Analysis: AnalysisConfig{
			Engine:            "duckdb",
			SampleRows:        5,
			DuckDBThreads:     2,
			DuckDBMemoryLimit: "512MB",
		},
		Log: LogConfig{
			Level:                "info",
			Format:               "json",
			EnableRequestLogging: true,
		},
	}
}

// LoadConfig loads configuration. An empty path skips the config file; a
// path that does not exist yet is created with the defaults.
// Precedence: environment > .env > config file > defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := DefaultConfig().Save(configPath); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &AppConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnvironmentOverrides()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadDotEnv reads KEY=VALUE pairs into the environment without overriding
// variables that are already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.bind_address", d.Server.BindAddress)
	v.SetDefault("server.enable_cors", d.Server.EnableCORS)
	v.SetDefault("server.allow_origins", d.Server.AllowOrigins)
	v.SetDefault("server.read_timeout_seconds", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout_seconds", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout_seconds", d.Server.IdleTimeout)
	v.SetDefault("server.body_limit_bytes", d.Server.BodyLimitBytes)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)

	v.SetDefault("analysis.engine", d.Analysis.Engine)
	v.SetDefault("analysis.sample_rows", d.Analysis.SampleRows)
	v.SetDefault("analysis.duckdb_threads", d.Analysis.DuckDBThreads)
	v.SetDefault("analysis.duckdb_memory_limit", d.Analysis.DuckDBMemoryLimit)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.enable_request_logging", d.Log.EnableRequestLogging)
}

// applyEnvironmentOverrides reads the conventional unprefixed variables.
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.APIKey == "" {
		if name, ok := providerKeyEnv[c.LLM.Provider]; ok {
			c.LLM.APIKey = os.Getenv(name)
		}
	}
}

// Validate rejects settings the server cannot start with. A missing API key
// is not an error: the server starts and completion calls fail instead.
func (c *AppConfig) Validate() error {
	var errs []error
	if _, ok := providerKeyEnv[c.LLM.Provider]; !ok {
		errs = append(errs, fmt.Errorf("unknown llm provider: %q", c.LLM.Provider))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port: %d", c.Server.Port))
	}
	if c.Server.BodyLimitBytes <= 0 {
		errs = append(errs, errors.New("server body limit must be positive"))
	}
	return errors.Join(errs...)
}

// Save writes the configuration as YAML.
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# Sales Advisor configuration\n# This file is auto-generated on first run\n\n")
	content := append(header, output...)

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ProviderKeyEnv returns the credential variable for the configured provider.
func (c *AppConfig) ProviderKeyEnv() string {
	return providerKeyEnv[c.LLM.Provider]
}

// GetServerAddr returns the server bind address.
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// Origins splits the comma-separated CORS origin list.
func (s ServerConfig) Origins() []string {
	origins := lo.Compact(lo.Map(strings.Split(s.AllowOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	}))
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
