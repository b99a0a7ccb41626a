package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the searchd API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Redis     RedisConfig     `yaml:"redis"`
	CMS       CMSConfig       `yaml:"cms"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RedisConfig holds cache store settings. Empty addrs disables caching;
// the service still starts and serves uncached responses.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CMSConfig holds the headless CMS query API settings.
type CMSConfig struct {
	BaseURL    string `yaml:"base_url"`
	Token      string `yaml:"token"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// LLMConfig holds text-generation settings for the OpenAI-compatible API.
// The classifier runs on a small fast model, synthesis on a larger one.
type LLMConfig struct {
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url"`
	ClassifierModel     string `yaml:"classifier_model"`
	SynthesisModel      string `yaml:"synthesis_model"`
	ClassifyMaxTokens   int    `yaml:"classify_max_tokens"`
	SynthesisMaxTokens  int    `yaml:"synthesis_max_tokens"`
	ClassifyTimeoutSec  int    `yaml:"classify_timeout_sec"`
	SynthesisTimeoutSec int    `yaml:"synthesis_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// SearchConfig holds ranking and caching tuning values. The per-source
// min-score thresholds and answer confidence behavior are deliberate
// asymmetric tuning choices carried over from the ranking owners; change
// them only with their sign-off.
type SearchConfig struct {
	DefaultLimit         int     `yaml:"default_limit"`
	MaxLimit             int     `yaml:"max_limit"`
	ResponseCacheTTLSec  int     `yaml:"response_cache_ttl_sec"`
	EmbeddingCacheTTLSec int     `yaml:"embedding_cache_ttl_sec"`
	MinScoreCoE          float64 `yaml:"min_score_coe"`
	MinScoreEnablement   float64 `yaml:"min_score_enablement"`
	MinScoreContent      float64 `yaml:"min_score_content"`
	AnswerContextSize    int     `yaml:"answer_context_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.CMS.TimeoutSec <= 0 {
		c.CMS.TimeoutSec = 15
	}
	if c.LLM.ClassifyMaxTokens <= 0 {
		c.LLM.ClassifyMaxTokens = 300
	}
	if c.LLM.SynthesisMaxTokens <= 0 {
		c.LLM.SynthesisMaxTokens = 600
	}
	if c.LLM.ClassifyTimeoutSec <= 0 {
		c.LLM.ClassifyTimeoutSec = 5
	}
	if c.LLM.SynthesisTimeoutSec <= 0 {
		c.LLM.SynthesisTimeoutSec = 20
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 5
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 30
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 100
	}
	if c.Search.ResponseCacheTTLSec <= 0 {
		c.Search.ResponseCacheTTLSec = 300
	}
	if c.Search.EmbeddingCacheTTLSec <= 0 {
		c.Search.EmbeddingCacheTTLSec = 3600
	}
	if c.Search.MinScoreCoE <= 0 {
		c.Search.MinScoreCoE = 0.15
	}
	if c.Search.MinScoreEnablement <= 0 {
		c.Search.MinScoreEnablement = 0.10
	}
	if c.Search.MinScoreContent <= 0 {
		c.Search.MinScoreContent = 0.10
	}
	if c.Search.AnswerContextSize <= 0 {
		c.Search.AnswerContextSize = 8
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.CMS.BaseURL == "" {
		return fmt.Errorf("cms.base_url is required")
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit (%d) must not exceed search.max_limit (%d)",
			c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
