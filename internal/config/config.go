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

// Config holds the ai900 toolkit configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	RAG        RAGConfig        `yaml:"rag"`
	Cache      CacheConfig      `yaml:"cache"`
	Language   ServiceConfig    `yaml:"language"`
	Translator TranslatorConfig `yaml:"translator"`
	Vision     ServiceConfig    `yaml:"vision"`
	Moderator  ServiceConfig    `yaml:"moderator"`
	Document   DocumentConfig   `yaml:"document"`
	Pricing    PricingConfig    `yaml:"pricing"`
	GitHub     GitHubConfig     `yaml:"github"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings for the dashboard JSON API.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	ClientTimeout   int `yaml:"client_timeout_sec"` // outbound calls to AI services
}

// OpenAIConfig holds chat/completion/image/embedding deployment settings.
type OpenAIConfig struct {
	APIType             string `yaml:"api_type"` // azure (default), openai
	Endpoint            string `yaml:"endpoint"`
	APIKey              string `yaml:"api_key"`
	APIVersion          string `yaml:"api_version"`
	Deployment          string `yaml:"deployment"`
	EmbeddingDeployment string `yaml:"embedding_deployment"`
	CompletionModel     string `yaml:"completion_deployment"`
	ImageModel          string `yaml:"image_deployment"`
}

// EmbeddingConfig selects the embedder used by the RAG pipeline.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // placeholder (default), openai
	Dimensions int    `yaml:"dimensions"`
}

// RAGConfig holds retrieval and generation parameters.
type RAGConfig struct {
	TopK              int     `yaml:"top_k"`
	Temperature       float32 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
	BaselineMaxTokens int     `yaml:"baseline_max_tokens"`
}

// CacheConfig holds the optional Redis cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ServiceConfig holds the endpoint and key of a cognitive service resource.
type ServiceConfig struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
}

// TranslatorConfig holds translator settings.
type TranslatorConfig struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
	Region   string `yaml:"region"`
}

// DocumentConfig holds document intelligence settings.
type DocumentConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Key            string `yaml:"key"`
	PollIntervalMS int    `yaml:"poll_interval_ms"`
	TimeoutSec     int    `yaml:"timeout_sec"`
}

// PricingConfig holds the automobile price scoring endpoint settings.
type PricingConfig struct {
	URL                string `yaml:"url"`
	APIKey             string `yaml:"api_key"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// GitHubConfig holds GitHub API settings for the metrics dashboard.
type GitHubConfig struct {
	APIURL      string `yaml:"api_url"`
	Token       string `yaml:"token"`
	CacheTTLSec int    `yaml:"cache_ttl_sec"`
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 5000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.ClientTimeout <= 0 {
		c.HTTP.ClientTimeout = 60
	}
	if c.OpenAI.APIType == "" {
		c.OpenAI.APIType = "azure"
	}
	if c.OpenAI.APIVersion == "" {
		c.OpenAI.APIVersion = "2024-02-01"
	}
	if c.OpenAI.Deployment == "" {
		c.OpenAI.Deployment = "gpt-4o-mini"
	}
	if c.OpenAI.EmbeddingDeployment == "" {
		c.OpenAI.EmbeddingDeployment = "text-embedding-ada-002"
	}
	if c.OpenAI.CompletionModel == "" {
		c.OpenAI.CompletionModel = "gpt-35-turbo-instruct"
	}
	if c.OpenAI.ImageModel == "" {
		c.OpenAI.ImageModel = "dall-e-3"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "placeholder"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.RAG.TopK <= 0 {
		c.RAG.TopK = 3
	}
	if c.RAG.Temperature <= 0 {
		c.RAG.Temperature = 0.3
	}
	if c.RAG.MaxTokens <= 0 {
		c.RAG.MaxTokens = 500
	}
	if c.RAG.BaselineMaxTokens <= 0 {
		c.RAG.BaselineMaxTokens = 200
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 86400
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Translator.Endpoint == "" {
		c.Translator.Endpoint = "https://api.cognitive.microsofttranslator.com"
	}
	if c.Translator.Region == "" {
		c.Translator.Region = "eastus"
	}
	if c.Document.PollIntervalMS <= 0 {
		c.Document.PollIntervalMS = 1000
	}
	if c.Document.TimeoutSec <= 0 {
		c.Document.TimeoutSec = 120
	}
	if c.GitHub.APIURL == "" {
		c.GitHub.APIURL = "https://api.github.com"
	}
	if c.GitHub.CacheTTLSec <= 0 {
		c.GitHub.CacheTTLSec = 300
	}
}

// Validate checks the configuration for correctness.
// Credentials are not checked here; each command calls the matching Require method.
func (c *Config) Validate() error {
	if c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.OpenAI.APIType {
	case "azure", "openai":
	default:
		return fmt.Errorf("openai.api_type must be \"azure\" or \"openai\", got %q", c.OpenAI.APIType)
	}
	switch c.Embedding.Provider {
	case "placeholder", "openai":
	default:
		return fmt.Errorf(
			"embedding.provider must be \"placeholder\" or \"openai\", got %q", c.Embedding.Provider,
		)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.enabled is true")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests and `go run` from subdirectories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

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
