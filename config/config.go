// Package config provides configuration loading and management for semvocab.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSONLD   = "jsonld"
	FormatTurtle   = "turtle"
	FormatNTriples = "ntriples"
)

// Output sinks.
const (
	SinkFile   = "file"
	SinkStdout = "stdout"
	SinkNATS   = "nats"
)

// RDF export profiles.
const (
	ProfileMinimal  = "minimal"
	ProfileExtended = "extended"
)

// Config represents the complete semvocab configuration
type Config struct {
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Source     SourceConfig     `yaml:"source"`
	Output     OutputConfig     `yaml:"output"`
	Resolve    ResolveConfig    `yaml:"resolve"`
	NATS       NATSConfig       `yaml:"nats"`
	Watch      WatchConfig      `yaml:"watch"`
}

// VocabularyConfig describes the published concept scheme
type VocabularyConfig struct {
	// Namespace is the base IRI concept URIs are minted in
	Namespace string `yaml:"namespace"`
	// SchemeURI identifies the concept scheme (written to inScheme)
	SchemeURI string `yaml:"scheme_uri"`
	// SchemeLabel is the display label of the concept scheme
	SchemeLabel string `yaml:"scheme_label"`
	// Language tags labels and definitions
	Language string `yaml:"language"`
	// Template is the JSON-LD envelope file (empty = built-in SKOS template)
	Template string `yaml:"template"`
}

// SourceConfig selects the rows to read
type SourceConfig struct {
	// Path is the workbook or CSV file
	Path string `yaml:"path"`
	// Sheets limits reading to these worksheets (empty = all)
	Sheets []string `yaml:"sheets"`
	// StartRow is the first 1-based data row
	StartRow int `yaml:"start_row"`
	// CodeColumn, DescriptorColumn and ChangeColumn are 1-based
	CodeColumn       int `yaml:"code_column"`
	DescriptorColumn int `yaml:"descriptor_column"`
	ChangeColumn     int `yaml:"change_column"`
}

// OutputConfig configures serialization and destination
type OutputConfig struct {
	// Sink is one of file, stdout, nats
	Sink string `yaml:"sink"`
	// Path is the output file for the file sink
	Path string `yaml:"path"`
	// Format is one of jsonld, turtle, ntriples
	Format string `yaml:"format"`
	// Indent is the JSON indentation width
	Indent int `yaml:"indent"`
	// Profile is minimal or extended (RDF formats only)
	Profile string `yaml:"profile"`
}

// ResolveConfig tunes hierarchy resolution
type ResolveConfig struct {
	// Workers > 1 resolves codes concurrently
	Workers int `yaml:"workers"`
}

// NATSConfig configures the NATS sink
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Subject receives the serialized vocabulary
	Subject string `yaml:"subject"`
	// GraphSubject receives one graph entity per concept (empty = disabled)
	GraphSubject string `yaml:"graph_subject"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Patterns are doublestar globs of files that trigger a conversion
	// (empty = the source path)
	Patterns []string `yaml:"patterns"`
	// Debounce is how long to wait for more changes before converting
	Debounce time.Duration `yaml:"debounce"`
	// MetricsAddr serves Prometheus metrics when set (e.g. ":9090")
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Vocabulary: VocabularyConfig{
			Namespace:   "https://bartoc.org/owcm/",
			SchemeURI:   "https://bartoc.org/owcm/",
			SchemeLabel: "OWCM",
			Language:    "en",
			Template:    "", // Built-in
		},
		Source: SourceConfig{
			Path:             "input/owcm_full.xlsx",
			StartRow:         7,
			CodeColumn:       1,
			DescriptorColumn: 2,
			ChangeColumn:     3,
		},
		Output: OutputConfig{
			Sink:    SinkFile,
			Path:    "output/owcm_skosmos.json",
			Format:  FormatJSONLD,
			Indent:  4,
			Profile: ProfileMinimal,
		},
		Resolve: ResolveConfig{
			Workers: 1,
		},
		NATS: NATSConfig{
			URL:     "nats://localhost:4222",
			Subject: "vocab.export",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := validateIRI("vocabulary.namespace", c.Vocabulary.Namespace); err != nil {
		return err
	}
	if err := validateIRI("vocabulary.scheme_uri", c.Vocabulary.SchemeURI); err != nil {
		return err
	}
	if c.Vocabulary.Language == "" {
		return fmt.Errorf("vocabulary.language is required")
	}
	if c.Source.Path == "" {
		return fmt.Errorf("source.path is required")
	}
	if c.Source.StartRow < 1 {
		return fmt.Errorf("source.start_row must be at least 1")
	}
	if c.Source.CodeColumn < 1 {
		return fmt.Errorf("source.code_column must be at least 1")
	}
	if c.Source.DescriptorColumn < 0 || c.Source.ChangeColumn < 0 {
		return fmt.Errorf("source columns must not be negative")
	}

	switch c.Output.Format {
	case FormatJSONLD, FormatTurtle, FormatNTriples:
	default:
		return fmt.Errorf("output.format %q is not one of jsonld, turtle, ntriples", c.Output.Format)
	}
	switch c.Output.Profile {
	case ProfileMinimal, ProfileExtended:
	default:
		return fmt.Errorf("output.profile %q is not one of minimal, extended", c.Output.Profile)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent must not be negative")
	}

	switch c.Output.Sink {
	case SinkFile:
		if c.Output.Path == "" {
			return fmt.Errorf("output.path is required for the file sink")
		}
	case SinkStdout:
	case SinkNATS:
		if c.NATS.URL == "" {
			return fmt.Errorf("nats.url is required for the nats sink")
		}
		if c.NATS.Subject == "" {
			return fmt.Errorf("nats.subject is required for the nats sink")
		}
	default:
		return fmt.Errorf("output.sink %q is not one of file, stdout, nats", c.Output.Sink)
	}
	if c.NATS.GraphSubject != "" && c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required for graph publication")
	}

	if c.Resolve.Workers < 0 {
		return fmt.Errorf("resolve.workers must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// validateIRI requires an absolute http(s) IRI.
func validateIRI(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) IRI, got %q", field, value)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.ApplyFile(path); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyFile decodes a YAML file onto c. Keys absent from the file keep
// their current value; keys present replace it, zero values included.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config file: %w", ErrConfigLoad, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse config file: %w", ErrConfigLoad, err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Zero values cannot be expressed through Merge; file layers use ApplyFile.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Vocabulary
	if other.Vocabulary.Namespace != "" {
		c.Vocabulary.Namespace = other.Vocabulary.Namespace
	}
	if other.Vocabulary.SchemeURI != "" {
		c.Vocabulary.SchemeURI = other.Vocabulary.SchemeURI
	}
	if other.Vocabulary.SchemeLabel != "" {
		c.Vocabulary.SchemeLabel = other.Vocabulary.SchemeLabel
	}
	if other.Vocabulary.Language != "" {
		c.Vocabulary.Language = other.Vocabulary.Language
	}
	if other.Vocabulary.Template != "" {
		c.Vocabulary.Template = other.Vocabulary.Template
	}

	// Source
	if other.Source.Path != "" {
		c.Source.Path = other.Source.Path
	}
	if len(other.Source.Sheets) > 0 {
		c.Source.Sheets = other.Source.Sheets
	}
	if other.Source.StartRow != 0 {
		c.Source.StartRow = other.Source.StartRow
	}
	if other.Source.CodeColumn != 0 {
		c.Source.CodeColumn = other.Source.CodeColumn
	}
	if other.Source.DescriptorColumn != 0 {
		c.Source.DescriptorColumn = other.Source.DescriptorColumn
	}
	if other.Source.ChangeColumn != 0 {
		c.Source.ChangeColumn = other.Source.ChangeColumn
	}

	// Output
	if other.Output.Sink != "" {
		c.Output.Sink = other.Output.Sink
	}
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Indent != 0 {
		c.Output.Indent = other.Output.Indent
	}
	if other.Output.Profile != "" {
		c.Output.Profile = other.Output.Profile
	}

	// Resolve
	if other.Resolve.Workers != 0 {
		c.Resolve.Workers = other.Resolve.Workers
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
	if other.NATS.GraphSubject != "" {
		c.NATS.GraphSubject = other.NATS.GraphSubject
	}

	// Watch
	if len(other.Watch.Patterns) > 0 {
		c.Watch.Patterns = other.Watch.Patterns
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.MetricsAddr != "" {
		c.Watch.MetricsAddr = other.Watch.MetricsAddr
	}
}
