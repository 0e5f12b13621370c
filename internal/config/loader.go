package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// SourceEmbedded is reported by Load when no config file was found.
const SourceEmbedded = "embedded"

// ParseFormat converts a CLI value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("config: unknown format %q (want yaml or toml)", s)
	}
}

// FormatForPath picks the encoding from a file extension. Anything that is
// not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode parses data over cfg. Fields missing from data keep their current
// values, so callers usually start from DefaultRunnerConfig.
func Decode(data []byte, format Format, cfg *RunnerConfig) error {
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("toml decode: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("yaml unmarshal: %w", err)
		}
	}
	return nil
}

// Encode renders cfg in the given format.
func Encode(cfg RunnerConfig, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: toml encode: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: yaml encode: %w", err)
		}
		return data, nil
	}
}

// LoadFile reads, decodes and validates a single config file.
func LoadFile(path string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := Decode(data, FormatForPath(path), &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Load loads the runner configuration and reports where it came from.
// Search order: customPath -> ~/.pikarun/runner.yaml -> ~/.pikarun/runner.toml
// -> ./configs/runner.yaml -> embedded default.
// Only an explicit customPath can fail; unreadable or invalid files found
// during the search are skipped.
func Load(customPath string) (RunnerConfig, string, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		if cfg, err := LoadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg := DefaultRunnerConfig()
	if err := Decode(defaultRunnerYAML, FormatYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

// searchPaths lists the optional config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".pikarun")
		paths = append(paths,
			filepath.Join(dir, "runner.yaml"),
			filepath.Join(dir, "runner.toml"),
		)
	}
	return append(paths, filepath.Join("configs", "runner.yaml"))
}
