package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the config directory at a temp dir and clears CRITIQUE_*
// variables for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, ek := range envKeys {
		t.Setenv(ek.env, "")
	}
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "openai" {
		t.Errorf("Default provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Default model = %q, want %q", cfg.Model, "gpt-4o")
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("Default maxTokens = %d, want 2048", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Default temperature = %v, want 0.2", cfg.Temperature)
	}
	if cfg.Extension != ".py" {
		t.Errorf("Default extension = %q, want .py", cfg.Extension)
	}
	if cfg.MaxFileChars != 12000 {
		t.Errorf("Default maxFileChars = %d, want 12000", cfg.MaxFileChars)
	}
	if cfg.Retries != 0 {
		t.Errorf("Default retries = %d, want 0", cfg.Retries)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache should be disabled by default")
	}
	if cfg.Privacy.RedactSecrets {
		t.Error("Redaction should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestMergeEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CRITIQUE_PROVIDER", "anthropic")
	t.Setenv("CRITIQUE_MODEL", "claude-sonnet-4-20250514")
	t.Setenv("CRITIQUE_MAX_TOKENS", "1024")
	t.Setenv("CRITIQUE_TEMPERATURE", "0")
	t.Setenv("CRITIQUE_EXTENSION", "go")
	t.Setenv("CRITIQUE_RETRIES", "2")
	t.Setenv("CRITIQUE_CACHE", "true")

	cfg := Default()
	if err := mergeEnv(&cfg); err != nil {
		t.Fatalf("mergeEnv error: %v", err)
	}

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0 {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if cfg.Extension != ".go" {
		t.Errorf("Extension = %q, want .go", cfg.Extension)
	}
	if cfg.Retries != 2 {
		t.Errorf("Retries = %d", cfg.Retries)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache should be enabled")
	}
}

func TestMergeEnv_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("CRITIQUE_MAX_TOKENS", "lots")

	cfg := Default()
	err := mergeEnv(&cfg)
	if err == nil {
		t.Fatal("expected error for non-integer CRITIQUE_MAX_TOKENS")
	}
	if !strings.Contains(err.Error(), "CRITIQUE_MAX_TOKENS") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	err := mergeOverrides(&cfg, map[string]string{
		"provider":    "gemini",
		"model":       "gemini-2.0-flash",
		"format":      "json",
		"temperature": "0.5",
		"retries":     "",
	})
	if err != nil {
		t.Fatalf("mergeOverrides error: %v", err)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if cfg.Retries != 0 {
		t.Errorf("empty override must not apply, Retries = %d", cfg.Retries)
	}
}

func TestMergeOverrides_Nil(t *testing.T) {
	cfg := Default()
	if err := mergeOverrides(&cfg, nil); err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Error("nil overrides should not change config")
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()
	sets := map[string]string{
		"provider":         "ollama",
		"model":            "llama3",
		"maxTokens":        "512",
		"temperature":      "0.7",
		"extension":        ".js",
		"maxFileChars":     "5000",
		"retries":          "3",
		"format":           "markdown",
		"cache.enabled":    "true",
		"cache.dir":        "/tmp/c",
		"cache.ttlSeconds": "60",
		"redact":           "true",
	}
	for k, v := range sets {
		if err := SetField(&cfg, k, v); err != nil {
			t.Fatalf("SetField(%q, %q): %v", k, v, err)
		}
	}
	want := Config{
		Provider:     "ollama",
		Model:        "llama3",
		MaxTokens:    512,
		Temperature:  0.7,
		Extension:    ".js",
		MaxFileChars: 5000,
		Retries:      3,
		Format:       "markdown",
		Cache:        CacheConfig{Enabled: true, Dir: "/tmp/c", TTLSeconds: 60},
		Privacy:      PrivacyConfig{RedactSecrets: true},
	}
	if cfg != want {
		t.Errorf("cfg = %+v\nwant %+v", cfg, want)
	}
	if len(sets) != len(Keys) {
		t.Errorf("test covers %d keys, Keys lists %d", len(sets), len(Keys))
	}
}

func TestSetField_Errors(t *testing.T) {
	cfg := Default()
	tests := []struct{ key, value string }{
		{"unknown", "x"},
		{"maxTokens", "abc"},
		{"temperature", "warm"},
		{"cache.enabled", "maybe"},
	}
	for _, tt := range tests {
		if err := SetField(&cfg, tt.key, tt.value); err == nil {
			t.Errorf("SetField(%q, %q) should fail", tt.key, tt.value)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero tokens", func(c *Config) { c.MaxTokens = 0 }, "maxTokens"},
		{"hot", func(c *Config) { c.Temperature = 3 }, "temperature"},
		{"bad extension", func(c *Config) { c.Extension = "py" }, "extension"},
		{"negative retries", func(c *Config) { c.Retries = -1 }, "retries"},
		{"bad format", func(c *Config) { c.Format = "sarif" }, "format"},
		{"no model", func(c *Config) { c.Model = "" }, "model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	dir := isolate(t)
	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "critique", "config.json") {
		t.Errorf("ConfigPath = %q", path)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Model = "gpt-4o-mini"
	cfg.Cache.Enabled = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if got != cfg {
		t.Errorf("LoadFile = %+v, want %+v", got, cfg)
	}
}

func TestLoadFile_NoFile(t *testing.T) {
	isolate(t)
	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadFile_Partial(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "critique", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"model":"gpt-4.1","temperature":0}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "gpt-4.1" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Temperature != 0 {
		t.Errorf("explicit zero temperature must apply, got %v", cfg.Temperature)
	}
	if cfg.Provider != "openai" || cfg.MaxTokens != 2048 {
		t.Errorf("absent keys must keep defaults: %+v", cfg)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "critique", "config.json")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte(`{not json`), 0o644)

	if _, err := LoadFile(); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	fileCfg := Default()
	fileCfg.Provider = "anthropic"
	fileCfg.Model = "from-file"
	fileCfg.MaxTokens = 1000
	if err := Save(fileCfg); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CRITIQUE_MODEL", "from-env")
	t.Setenv("CRITIQUE_MAX_TOKENS", "1500")

	cfg, err := Load(map[string]string{"maxTokens": "1700"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want file value", cfg.Provider)
	}
	if cfg.Model != "from-env" {
		t.Errorf("Model = %q, want env value", cfg.Model)
	}
	if cfg.MaxTokens != 1700 {
		t.Errorf("MaxTokens = %d, want flag value", cfg.MaxTokens)
	}
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	if _, err := Load(map[string]string{"format": "sarif"}); err == nil {
		t.Error("expected validation error")
	}
}

func TestSettings(t *testing.T) {
	cfg := Default()
	cfg.Privacy.RedactSecrets = true
	s := cfg.Settings()
	if s.Provider != "openai" || s.Model != "gpt-4o" || s.MaxTokens != 2048 || s.Temperature != 0.2 || !s.Redact {
		t.Errorf("Settings() = %+v", s)
	}
}
