// Package config loads the optional configuration file and resolves the
// GitHub token.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// TokenEnv is the environment variable checked before the config file.
const TokenEnv = "GITHUB_TOKEN"

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "config.json"

// Token sources reported by ResolveToken.
const (
	SourceEnv  = "environment"
	SourceFile = "config file"
	SourceNone = ""
)

// Config holds the settings a config file may provide. Zero values mean
// "not set"; command-line flags and built-in defaults fill them in.
type Config struct {
	GitHubToken  string `json:"github_token" toml:"github_token" yaml:"github_token"`
	Query        string `json:"query" toml:"query" yaml:"query"`
	Target       int    `json:"target" toml:"target" yaml:"target"`
	TopLanguages int    `json:"top_languages" toml:"top_languages" yaml:"top_languages"`
	Endpoint     string `json:"endpoint" toml:"endpoint" yaml:"endpoint"`
	Timeout      string `json:"timeout" toml:"timeout" yaml:"timeout"`
	CSVPath      string `json:"csv_path" toml:"csv_path" yaml:"csv_path"`
	SummaryPath  string `json:"summary_path" toml:"summary_path" yaml:"summary_path"`
	JSONPath     string `json:"json_path" toml:"json_path" yaml:"json_path"`
}

// Load reads the config file at path, choosing the decoder by extension
// (.json, .toml, .yaml or .yml). A missing file yields an empty Config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveToken returns the GitHub token and where it came from.
// The environment wins over the file; an empty source means no token was found.
func (c *Config) ResolveToken() (token, source string) {
	if v := os.Getenv(TokenEnv); v != "" {
		return v, SourceEnv
	}
	if c.GitHubToken != "" {
		return c.GitHubToken, SourceFile
	}
	return "", SourceNone
}

// TimeoutDuration parses Timeout, returning zero when it is unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}
