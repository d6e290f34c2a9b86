package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{SearXNG: SearXNGConfig{URL: "http://localhost:8080"}}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{SearXNG: SearXNGConfig{URL: "  http://searx.local/// "}}
	cfg.ApplyDefaults()

	if cfg.HTTP.Bind != "127.0.0.1:8000" {
		t.Errorf("bind: got %q", cfg.HTTP.Bind)
	}
	if cfg.SearXNG.URL != "http://searx.local" {
		t.Errorf("searxng url: got %q", cfg.SearXNG.URL)
	}
	if cfg.Rerank.Model != "Qwen/Qwen3-Reranker-8B" {
		t.Errorf("rerank model: got %q", cfg.Rerank.Model)
	}
	if cfg.Search.DefaultLimit != 20 || cfg.Search.MaxLimit != 50 {
		t.Errorf("limits: got %d/%d", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
	if cfg.Rerank.Enabled() {
		t.Error("rerank must be disabled without an api key")
	}
	if cfg.Auth.Enabled() {
		t.Error("auth must be disabled without a token")
	}
}

func TestValidate_MissingSearXNG(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing searxng url")
	}
	expected := "searxng.url is required (set SEARXNG_URL)"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "relative url", mutate: func(c *Config) { c.SearXNG.URL = "searx.local" }},
		{name: "bind without port", mutate: func(c *Config) { c.HTTP.Bind = "localhost" }},
		{name: "default above max", mutate: func(c *Config) { c.Search.DefaultLimit = 60 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("METASEARCH_TEST_SET", "value")
	t.Setenv("METASEARCH_TEST_EMPTY", "")

	got := string(expandEnvVars([]byte("a: ${METASEARCH_TEST_SET}\nb: ${METASEARCH_TEST_EMPTY:-fallback}\nc: ${METASEARCH_TEST_UNSET}")))
	want := "a: value\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("SEARXNG_URL", "http://searx.test/")
	t.Setenv("SILICONFLOW_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "test.yaml")
	data := `
http:
  bind: 0.0.0.0:9000
searxng:
  url: ${SEARXNG_URL}
rerank:
  api_key: ${SILICONFLOW_API_KEY}
  append_unranked: true
search:
  max_limit: 30
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Bind != "0.0.0.0:9000" {
		t.Errorf("bind: got %q", cfg.HTTP.Bind)
	}
	if cfg.SearXNG.URL != "http://searx.test" {
		t.Errorf("searxng url: got %q", cfg.SearXNG.URL)
	}
	if !cfg.Rerank.Enabled() || !cfg.Rerank.AppendUnranked {
		t.Error("rerank settings not loaded")
	}
	if cfg.Search.MaxLimit != 30 || cfg.Search.DefaultLimit != 20 {
		t.Errorf("limits: got %d/%d", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
}

func TestLoad_FallsBackToEnvDefaults(t *testing.T) {
	t.Setenv("SEARXNG_URL", "http://searx.env")
	t.Setenv("MCP_BIND", "")
	t.Setenv("MCP_AUTH_TOKEN", "secret")

	cfg, err := Load("metasearch-test-missing-env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SearXNG.URL != "http://searx.env" {
		t.Errorf("searxng url: got %q", cfg.SearXNG.URL)
	}
	if cfg.HTTP.Bind != "127.0.0.1:8000" {
		t.Errorf("bind: got %q", cfg.HTTP.Bind)
	}
	if cfg.Auth.Token != "secret" {
		t.Errorf("token: got %q", cfg.Auth.Token)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
