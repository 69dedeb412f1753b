package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/eval-math-expr/internal/config"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name        string
		parse       func(string) (config.Config, error)
		source      string
		expected    config.Config
		expectToErr bool
	}{
		{
			name:     "json",
			parse:    parseJSON,
			source:   `{"format": "json", "precision": 2, "debug": true}`,
			expected: config.Config{Format: config.FormatJSON, Precision: 2, Debug: true},
		},
		{
			name:     "json partial",
			parse:    parseJSON,
			source:   `{"precision": 3}`,
			expected: config.Config{Format: config.FormatText, Precision: 3},
		},
		{
			name:     "json null",
			parse:    parseJSON,
			source:   `null`,
			expected: config.Default(),
		},
		{
			name:        "json unknown key",
			parse:       parseJSON,
			source:      `{"formatt": "json"}`,
			expectToErr: true,
		},
		{
			name:        "json invalid format",
			parse:       parseJSON,
			source:      `{"format": "xml"}`,
			expectToErr: true,
		},
		{
			name:        "json negative precision",
			parse:       parseJSON,
			source:      `{"precision": -1}`,
			expectToErr: true,
		},
		{
			name:        "json broken",
			parse:       parseJSON,
			source:      `{"format": `,
			expectToErr: true,
		},
		{
			name:     "yaml",
			parse:    parseYAML,
			source:   "format: yaml\nprecision: 0\n",
			expected: config.Config{Format: config.FormatYAML, Precision: 0},
		},
		{
			name:     "yaml empty",
			parse:    parseYAML,
			source:   "",
			expected: config.Default(),
		},
		{
			name:        "yaml wrong type",
			parse:       parseYAML,
			source:      "debug: [1, 2]\n",
			expectToErr: true,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := tt.parse(tt.source)
			if err != nil {
				if tt.expectToErr {
					t.Logf("expected error: %v", err)
					return
				}
				t.Fatal(err)
			}
			if tt.expectToErr {
				t.Fatalf("should be error but got %+v", cfg)
			}
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("unexpected config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(yamlPath, []byte("precision: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(config.Config{Format: config.FormatText, Precision: 2}, cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}

	if _, err := config.Load(filepath.Join(dir, "config.toml")); err == nil {
		t.Error("should be error for unsupported extension")
	}
	if _, err := config.Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("should be error for missing file")
	}
}

func parseJSON(s string) (config.Config, error) {
	return config.ParseJSON(strings.NewReader(s))
}

func parseYAML(s string) (config.Config, error) {
	return config.ParseYAML(strings.NewReader(s))
}
