package lint

import "github.com/yaklabco/gomdtables/pkg/config"

// Rule is the interface all table rules implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MD060").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule runs without explicit
	// configuration.
	DefaultEnabled() bool

	// DefaultSeverity returns the severity used when the config does
	// not override it.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule.
	Tags() []string

	// CanFix returns whether this rule emits fix edits.
	CanFix() bool

	// Apply runs the rule against the context and returns diagnostics.
	// Errors are for internal failures only, never for violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
