// Package config defines the configuration model for gomdtables and
// loads it from .gomdtables.yaml files.
package config

import "fmt"

// Severity indicates the importance of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// OutputFormat selects the reporter.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a format string from a flag or config file.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text or json)", s)
	}
}

// RuleConfig is the per-rule configuration section.
type RuleConfig struct {
	// Enabled overrides the rule's default enablement when set.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Severity overrides the rule's default severity when set.
	Severity Severity `yaml:"severity,omitempty"`
}

// BackupConfig is the backups section of the config file.
type BackupConfig struct {
	// Enabled turns sidecar backups on before in-place fixes.
	Enabled bool `yaml:"enabled"`
}

// Config is the resolved tool configuration: file settings with CLI
// flag overrides already applied.
type Config struct {
	// Rules maps a rule ID or name to its overrides.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore lists glob patterns for paths to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	// Format selects the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Jobs is the worker count for parallel file processing.
	// Zero means one worker per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	// Backups configures sidecar backups.
	Backups BackupConfig `yaml:"backups,omitempty"`

	// Fix enables in-place rewriting. CLI-only, never read from file.
	Fix bool `yaml:"-"`

	// DryRun prints diffs instead of writing. CLI-only.
	DryRun bool `yaml:"-"`

	// NoBackups disables backups regardless of the file setting. CLI-only.
	NoBackups bool `yaml:"-"`

	// Strict promotes warnings to a failing exit code. CLI-only.
	Strict bool `yaml:"-"`
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	return &Config{
		Rules:  map[string]RuleConfig{},
		Format: FormatText,
		Backups: BackupConfig{
			Enabled: true,
		},
	}
}

// RuleFor returns the configuration for a rule, looked up by any of
// the given keys (typically the rule's ID and name). Returns nil when
// no section matches.
func (c *Config) RuleFor(keys ...string) *RuleConfig {
	for _, k := range keys {
		if rc, ok := c.Rules[k]; ok {
			return &rc
		}
	}
	return nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := ParseOutputFormat(string(c.Format)); err != nil {
			return err
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be non-negative, got %d", c.Jobs)
	}
	for key, rc := range c.Rules {
		if rc.Severity != "" && !rc.Severity.Valid() {
			return fmt.Errorf("rule %s: unknown severity %q", key, rc.Severity)
		}
	}
	return nil
}
