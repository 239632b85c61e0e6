package lint

import "github.com/yaklabco/gomdtables/pkg/config"

// BaseRule provides defaults for the Rule interface. Embed it and
// override Apply plus whatever defaults differ.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags, fixable: fixable}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string { return r.id }

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string { return r.name }

// Description returns what the rule checks.
func (r *BaseRule) Description() string { return r.desc }

// DefaultEnabled reports that the rule runs by default.
func (r *BaseRule) DefaultEnabled() bool { return true }

// DefaultSeverity returns warning unless overridden.
func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string { return r.tags }

// CanFix returns whether this rule emits fix edits.
func (r *BaseRule) CanFix() bool { return r.fixable }

// Apply must be overridden by concrete rules.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
