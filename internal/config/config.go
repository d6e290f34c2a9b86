package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the metasearch service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	SearXNG SearXNGConfig `yaml:"searxng"`
	Rerank  RerankConfig  `yaml:"rerank"`
	Auth    AuthConfig    `yaml:"auth"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds MCP endpoint authentication settings.
type AuthConfig struct {
	Token string `yaml:"token"` // empty disables bearer auth
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Bind            string `yaml:"bind"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec"`
}

// SearXNGConfig holds the upstream search engine settings.
type SearXNGConfig struct {
	URL        string `yaml:"url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// RerankConfig holds the reranking provider settings.
type RerankConfig struct {
	APIKey         string `yaml:"api_key"` // empty disables reranking
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	TimeoutSec     int    `yaml:"timeout_sec"`
	AppendUnranked bool   `yaml:"append_unranked"`
}

// SearchConfig holds per-query result caps.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// Enabled reports whether an API key is configured.
func (r RerankConfig) Enabled() bool { return r.APIKey != "" }

// Enabled reports whether a bearer token is configured.
func (a AuthConfig) Enabled() bool { return a.Token != "" }

// defaultYAML is used when no config file exists, so env-only deployments work.
const defaultYAML = `
http:
  bind: ${MCP_BIND:-127.0.0.1:8000}
searxng:
  url: ${SEARXNG_URL}
rerank:
  api_key: ${SILICONFLOW_API_KEY}
auth:
  token: ${MCP_AUTH_TOKEN}
`

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// If config/<env>.yaml does not exist, the built-in env-driven defaults are used.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if errors.Is(err, fs.ErrNotExist) {
		return parse([]byte(defaultYAML))
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return parse(data)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (Config, error) {
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

// ApplyDefaults fills empty fields with default values and normalizes URLs and secrets.
func (c *Config) ApplyDefaults() {
	c.HTTP.Bind = strings.TrimSpace(c.HTTP.Bind)
	if c.HTTP.Bind == "" {
		c.HTTP.Bind = "127.0.0.1:8000"
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	// MCP responses may stream for as long as the slowest upstream query.
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	c.SearXNG.URL = strings.TrimRight(strings.TrimSpace(c.SearXNG.URL), "/")
	if c.SearXNG.TimeoutSec <= 0 {
		c.SearXNG.TimeoutSec = 30
	}

	c.Rerank.APIKey = strings.TrimSpace(c.Rerank.APIKey)
	if c.Rerank.Endpoint == "" {
		c.Rerank.Endpoint = "https://api.siliconflow.cn/v1/rerank"
	}
	if c.Rerank.Model == "" {
		c.Rerank.Model = "Qwen/Qwen3-Reranker-8B"
	}
	if c.Rerank.TimeoutSec <= 0 {
		c.Rerank.TimeoutSec = 30
	}

	c.Auth.Token = strings.TrimSpace(c.Auth.Token)

	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 50
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.SearXNG.URL == "" {
		return fmt.Errorf("searxng.url is required (set SEARXNG_URL)")
	}
	u, err := url.Parse(c.SearXNG.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("searxng.url must be an absolute URL, got %q", c.SearXNG.URL)
	}
	if _, _, found := strings.Cut(c.HTTP.Bind, ":"); !found {
		return fmt.Errorf("http.bind must be host:port, got %q", c.HTTP.Bind)
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf(
			"search.default_limit (%d) must not exceed search.max_limit (%d)",
			c.Search.DefaultLimit, c.Search.MaxLimit,
		)
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
