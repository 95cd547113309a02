package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/demonstra-dev/demonstra/internal/accounts"
	"github.com/demonstra-dev/demonstra/internal/sped"
	"github.com/demonstra-dev/demonstra/internal/statements"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "demonstra.yaml"

// Config represents the top-level demonstra.yaml configuration.
type Config struct {
	Company    CompanyConfig    `yaml:"company"`
	Parser     ParserConfig     `yaml:"parser"`
	Statements statements.Rules `yaml:"statements"`
	Ordering   map[string]int   `yaml:"ordering,omitempty"` // account code -> display position
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Export     ExportConfig     `yaml:"export"`
	Git        GitConfig        `yaml:"git"`

	refChart *accounts.Chart
}

// CompanyConfig identifies whose books are processed.
type CompanyConfig struct {
	Name string `yaml:"name"`
	CNPJ string `yaml:"cnpj,omitempty"`
}

// ParserConfig tunes SPED parsing.
type ParserConfig struct {
	SampleFallback     bool     `yaml:"sample_fallback"`
	CreditNatureDigits []string `yaml:"credit_nature_digits"`
	FallbackMarkers    []string `yaml:"fallback_markers"`
	SkipLogLimit       int      `yaml:"skip_log_limit"`

	// ChartFile is a chart CSV written by "demonstra chart", used to name
	// accounts a file leaves out of its I050 rows. Relative to the config file.
	ChartFile string `yaml:"chart_file,omitempty"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// ServerConfig controls the HTTP adapter.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

// ExportConfig controls report output.
type ExportConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// GitConfig controls versioning of batch output.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a demonstra.yaml file from disk. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cf := cfg.Parser.ChartFile; cf != "" {
		if !filepath.IsAbs(cf) {
			cf = filepath.Join(filepath.Dir(path), cf)
		}
		if err := cfg.LoadReferenceChart(cf); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadReferenceChart reads a chart CSV whose names the parser falls back to
// for accounts missing from a file's own chart.
func (c *Config) LoadReferenceChart(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening reference chart: %w", err)
	}
	defer f.Close()

	entries, err := accounts.ReadChart(f)
	if err != nil {
		return fmt.Errorf("reference chart %s: %w", path, err)
	}
	c.refChart = accounts.FromEntries(entries)
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName string) *Config {
	opts := sped.DefaultOptions()
	return &Config{
		Company: CompanyConfig{Name: companyName},
		Parser: ParserConfig{
			SampleFallback:     opts.SampleFallback,
			CreditNatureDigits: opts.CreditNatureDigits,
			FallbackMarkers:    opts.FallbackMarkers,
			SkipLogLimit:       opts.SkipLogLimit,
		},
		Statements: statements.DefaultRules(),
		Logging:    LoggingConfig{Level: "info"},
		Server:     ServerConfig{Addr: ":8080", MaxUploadMB: 50},
		Export:     ExportConfig{DefaultFormat: "csv"},
		Git: GitConfig{
			AuthorName:  "demonstra",
			AuthorEmail: "demonstra@localhost",
		},
	}
}

// Validate checks values yaml cannot enforce.
func (c *Config) Validate() error {
	for _, d := range c.Parser.CreditNatureDigits {
		if len(d) != 1 || d[0] < '0' || d[0] > '9' {
			return fmt.Errorf("parser.credit_nature_digits: %q is not a single digit", d)
		}
	}
	if c.Parser.SkipLogLimit < 0 {
		return fmt.Errorf("parser.skip_log_limit: must not be negative, got %d", c.Parser.SkipLogLimit)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb: must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		return fmt.Errorf("git: author_name and author_email are required with auto_commit")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// ParserOptions maps the parser section onto sped.Options.
func (c *Config) ParserOptions() sped.Options {
	opts := sped.DefaultOptions()
	opts.SampleFallback = c.Parser.SampleFallback
	opts.CreditNatureDigits = c.Parser.CreditNatureDigits
	opts.FallbackMarkers = c.Parser.FallbackMarkers
	opts.SkipLogLimit = c.Parser.SkipLogLimit
	opts.ReferenceChart = c.refChart
	return opts
}

// StatementOptions maps the statements and ordering sections onto
// statements.Options.
func (c *Config) StatementOptions(log *zap.Logger) statements.Options {
	rules := c.Statements
	opts := statements.Options{Rules: &rules, Logger: log}
	if len(c.Ordering) > 0 {
		opts.Order = statements.MapOrder(c.Ordering)
	}
	return opts
}
