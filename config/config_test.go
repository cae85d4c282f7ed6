package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Vocabulary.Namespace != "https://bartoc.org/owcm/" {
		t.Errorf("expected default namespace https://bartoc.org/owcm/, got %s", cfg.Vocabulary.Namespace)
	}
	if cfg.Source.StartRow != 7 {
		t.Errorf("expected default start row 7, got %d", cfg.Source.StartRow)
	}
	if cfg.Output.Indent != 4 {
		t.Errorf("expected default indent 4, got %d", cfg.Output.Indent)
	}
	if cfg.Output.Format != FormatJSONLD {
		t.Errorf("expected default format jsonld, got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing namespace",
			modify:  func(c *Config) { c.Vocabulary.Namespace = "" },
			wantErr: true,
		},
		{
			name:    "relative namespace",
			modify:  func(c *Config) { c.Vocabulary.Namespace = "owcm/" },
			wantErr: true,
		},
		{
			name:    "urn scheme uri",
			modify:  func(c *Config) { c.Vocabulary.SchemeURI = "urn:owcm" },
			wantErr: true,
		},
		{
			name:    "missing language",
			modify:  func(c *Config) { c.Vocabulary.Language = "" },
			wantErr: true,
		},
		{
			name:    "start row zero",
			modify:  func(c *Config) { c.Source.StartRow = 0 },
			wantErr: true,
		},
		{
			name:    "change column disabled",
			modify:  func(c *Config) { c.Source.ChangeColumn = 0 },
			wantErr: false,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Output.Format = "rdfxml" },
			wantErr: true,
		},
		{
			name:    "unknown profile",
			modify:  func(c *Config) { c.Output.Profile = "full" },
			wantErr: true,
		},
		{
			name:    "file sink without path",
			modify:  func(c *Config) { c.Output.Path = "" },
			wantErr: true,
		},
		{
			name:    "stdout sink without path",
			modify:  func(c *Config) { c.Output.Sink = SinkStdout; c.Output.Path = "" },
			wantErr: false,
		},
		{
			name:    "nats sink without subject",
			modify:  func(c *Config) { c.Output.Sink = SinkNATS; c.NATS.Subject = "" },
			wantErr: true,
		},
		{
			name:    "negative workers",
			modify:  func(c *Config) { c.Resolve.Workers = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
vocabulary:
  namespace: "https://example.org/codes/"
  language: "de"
source:
  path: "codes.csv"
  start_row: 2
  sheets:
    - Codes
    - Extra
output:
  sink: stdout
  format: turtle
resolve:
  workers: 4
watch:
  debounce: 2s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Vocabulary.Namespace != "https://example.org/codes/" {
		t.Errorf("expected namespace https://example.org/codes/, got %s", cfg.Vocabulary.Namespace)
	}
	if cfg.Vocabulary.Language != "de" {
		t.Errorf("expected language de, got %s", cfg.Vocabulary.Language)
	}
	if cfg.Source.StartRow != 2 {
		t.Errorf("expected start row 2, got %d", cfg.Source.StartRow)
	}
	if len(cfg.Source.Sheets) != 2 {
		t.Errorf("expected 2 sheets, got %d", len(cfg.Source.Sheets))
	}
	if cfg.Output.Format != FormatTurtle {
		t.Errorf("expected format turtle, got %s", cfg.Output.Format)
	}
	if cfg.Resolve.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Resolve.Workers)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	// Unset keys keep their defaults
	if cfg.Source.CodeColumn != 1 {
		t.Errorf("expected default code column 1, got %d", cfg.Source.CodeColumn)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml"))
	if !errors.Is(err, ErrConfigLoad) {
		t.Errorf("expected ErrConfigLoad for missing file, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}

	badPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("source: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFromFile(badPath); !errors.Is(err, ErrConfigLoad) {
		t.Errorf("expected ErrConfigLoad for malformed file, got %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Vocabulary: VocabularyConfig{
			SchemeLabel: "Codes",
		},
		Output: OutputConfig{
			Format:  FormatNTriples,
			Profile: ProfileExtended,
		},
	}

	base.Merge(override)

	if base.Vocabulary.SchemeLabel != "Codes" {
		t.Errorf("expected scheme label Codes, got %s", base.Vocabulary.SchemeLabel)
	}
	// Namespace should remain from base since override didn't set it
	if base.Vocabulary.Namespace != "https://bartoc.org/owcm/" {
		t.Errorf("expected namespace to remain default, got %s", base.Vocabulary.Namespace)
	}
	if base.Output.Format != FormatNTriples {
		t.Errorf("expected format ntriples, got %s", base.Output.Format)
	}
	if base.Output.Profile != ProfileExtended {
		t.Errorf("expected profile extended, got %s", base.Output.Profile)
	}

	base.Merge(nil)
	if base.Output.Indent != 4 {
		t.Errorf("Merge(nil) changed config")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "semvocab.yaml")

	cfg := DefaultConfig()
	cfg.Vocabulary.SchemeLabel = "Saved"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Vocabulary.SchemeLabel != "Saved" {
		t.Errorf("expected scheme label Saved, got %s", loaded.Vocabulary.SchemeLabel)
	}
	if loaded.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", loaded.Watch.Debounce)
	}
}
