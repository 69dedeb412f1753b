package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	Format    string `mapstructure:"format"`
	Precision int    `mapstructure:"precision"`
	Debug     bool   `mapstructure:"debug"`
}

func Default() Config {
	return Config{
		Format:    FormatText,
		Precision: 6,
	}
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format: %q", c.Format)
	}
	if c.Precision < 0 {
		return fmt.Errorf("precision must not be negative: %d", c.Precision)
	}
	return nil
}

func Load(filePath string) (Config, error) {
	var parseConfig func(io.Reader) (Config, error)
	switch filepath.Ext(filePath) {
	case ".json":
		parseConfig = ParseJSON
	case ".yaml", ".yml":
		parseConfig = ParseYAML
	default:
		return Config{}, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return Config{}, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	return parseConfig(f)
}

func ParseYAML(r io.Reader) (Config, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("io.ReadAll: %w", err)
	}
	if len(bytes.TrimSpace(yamlBytes)) == 0 {
		return Default(), nil
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return Config{}, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseJSON(bytes.NewReader(jsonBytes))
}

// ParseJSON reads a config object. Missing keys keep their defaults and
// unknown keys are rejected.
func ParseJSON(r io.Reader) (Config, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("json.Decode: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("mapstructure.NewDecoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("mapstructure.Decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
