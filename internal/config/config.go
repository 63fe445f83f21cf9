package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/dshills/critique/internal/review"
)

// Config is the effective configuration of a run.
type Config struct {
	Provider     string        `json:"provider"`
	Model        string        `json:"model"`
	MaxTokens    int           `json:"maxTokens"`
	Temperature  float64       `json:"temperature"`
	Extension    string        `json:"extension"`
	MaxFileChars int           `json:"maxFileChars"`
	Retries      int           `json:"retries"`
	Format       string        `json:"format"`
	Cache        CacheConfig   `json:"cache"`
	Privacy      PrivacyConfig `json:"privacy"`
}

// CacheConfig controls caching of completions.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls secret scrubbing of the source before sending.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:     "openai",
		Model:        "gpt-4o",
		MaxTokens:    2048,
		Temperature:  0.2,
		Extension:    ".py",
		MaxFileChars: 12_000,
		Retries:      0,
		Format:       "text",
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: 86400,
		},
	}
}

// Settings returns the review client settings held by this config.
func (c Config) Settings() review.Settings {
	return review.Settings{
		Provider:    c.Provider,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Redact:      c.Privacy.RedactSecrets,
	}
}

// Formats accepted for review output.
var Formats = []string{"text", "json", "markdown"}

// Validate checks field ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Provider == "" {
		errs = append(errs, errors.New("provider must be set"))
	}
	if c.Model == "" {
		errs = append(errs, errors.New("model must be set"))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("maxTokens must be positive, got %d", c.MaxTokens))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature))
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		errs = append(errs, fmt.Errorf("extension must look like .py, got %q", c.Extension))
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", c.Retries))
	}
	if !contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("unsupported format %q (want one of %s)", c.Format, strings.Join(Formats, ", ")))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "critique"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "critique"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "critique"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "critique"), nil
	default:
		return filepath.Join(home, ".config", "critique"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile returns the defaults overlaid with the config file. A missing file
// yields the defaults.
func LoadFile() (Config, error) {
	cfg := Default()
	if err := mergeFile(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load builds the effective config by merging defaults <- file <- env <-
// overrides, then validates it. Overrides come from CLI flags and use the
// SetField key names.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()
	if err := mergeFile(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeFile decodes the file over cfg, so keys absent from the file keep
// their current value and explicit false/zero values apply.
func mergeFile(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// envKeys maps environment variables to SetField keys.
var envKeys = []struct {
	env string
	key string
}{
	{"CRITIQUE_PROVIDER", "provider"},
	{"CRITIQUE_MODEL", "model"},
	{"CRITIQUE_MAX_TOKENS", "maxTokens"},
	{"CRITIQUE_TEMPERATURE", "temperature"},
	{"CRITIQUE_EXTENSION", "extension"},
	{"CRITIQUE_MAX_FILE_CHARS", "maxFileChars"},
	{"CRITIQUE_RETRIES", "retries"},
	{"CRITIQUE_FORMAT", "format"},
	{"CRITIQUE_CACHE", "cache.enabled"},
	{"CRITIQUE_CACHE_DIR", "cache.dir"},
	{"CRITIQUE_REDACT", "redact"},
}

func mergeEnv(cfg *Config) error {
	for _, ek := range envKeys {
		v := os.Getenv(ek.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, ek.key, v); err != nil {
			return fmt.Errorf("%s: %w", ek.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for k, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, k, v); err != nil {
			return fmt.Errorf("flag %s: %w", k, err)
		}
	}
	return nil
}

// Keys lists the names accepted by SetField.
var Keys = []string{
	"provider", "model", "maxTokens", "temperature", "extension",
	"maxFileChars", "retries", "format",
	"cache.enabled", "cache.dir", "cache.ttlSeconds", "redact",
}

// SetField sets a single config field by key name.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "maxTokens":
		return setInt(&cfg.MaxTokens, key, value)
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "extension":
		if value != "" && !strings.HasPrefix(value, ".") {
			value = "." + value
		}
		cfg.Extension = value
	case "maxFileChars":
		return setInt(&cfg.MaxFileChars, key, value)
	case "retries":
		return setInt(&cfg.Retries, key, value)
	case "format":
		cfg.Format = value
	case "cache.enabled":
		return setBool(&cfg.Cache.Enabled, key, value)
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		return setInt(&cfg.Cache.TTLSeconds, key, value)
	case "redact":
		return setBool(&cfg.Privacy.RedactSecrets, key, value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
