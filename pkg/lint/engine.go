package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/fix"
)

// FileResult contains the outcome of checking a single file.
type FileResult struct {
	// Snapshot is the file that was checked.
	Snapshot *FileSnapshot

	// Diagnostics contains all issues found, in rule then document
	// order.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted fix edits. Empty when no rule
	// proposed a fix.
	Edits []fix.TextEdit

	// EditConflicts is true when proposed edits overlapped and were
	// dropped. Rules own disjoint line ranges, so this indicates a
	// rule bug rather than a user error.
	EditConflicts bool

	// RuleErrors maps rule IDs to internal execution errors.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes reports whether any fix edits are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// FixableCount returns the number of diagnostics carrying fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// MaxSeverity returns the highest severity present, or "" when clean.
func (fr *FileResult) MaxSeverity() config.Severity {
	var max config.Severity
	for _, d := range fr.Diagnostics {
		if severityRank(d.Severity) > severityRank(max) {
			max = d.Severity
		}
	}
	return max
}

func severityRank(s config.Severity) int {
	switch s {
	case config.SeverityError:
		return 3
	case config.SeverityWarning:
		return 2
	case config.SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Engine runs the configured rules against file contents.
type Engine struct {
	Registry *Registry
}

// NewEngine creates an Engine backed by the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// resolvedRule pairs a rule with its effective settings.
type resolvedRule struct {
	Rule     Rule
	Config   *config.RuleConfig
	Severity config.Severity
}

// resolveRules applies config overrides to the registered rules and
// returns those that should run, in registry (ID) order.
func resolveRules(reg *Registry, cfg *config.Config) []resolvedRule {
	var out []resolvedRule
	for _, rule := range reg.Rules() {
		rc := cfg.RuleFor(rule.ID(), rule.Name())

		enabled := rule.DefaultEnabled()
		if rc != nil && rc.Enabled != nil {
			enabled = *rc.Enabled
		}
		if !enabled {
			continue
		}

		severity := rule.DefaultSeverity()
		if rc != nil && rc.Severity != "" {
			severity = rc.Severity
		}
		out = append(out, resolvedRule{Rule: rule, Config: rc, Severity: severity})
	}
	return out
}

// CheckFile runs every enabled rule against content and returns the
// combined result. Diagnostics on lines covered by an inline
// markdownlint-disable comment are dropped, along with any edits they
// carry. Fix edits from the remaining diagnostics are validated and
// sorted; overlapping edits are dropped and flagged.
func (e *Engine) CheckFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	snapshot := NewSnapshot(path, content)
	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	suppressions := ParseSuppressions(snapshot)
	fileCtx := NewRuleContext(ctx, snapshot, cfg, nil)
	fileCtx.Registry = e.Registry

	var allEdits []fix.TextEdit
	for _, rr := range resolveRules(e.Registry, cfg) {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		diags, err := rr.Rule.Apply(fileCtx.ForRule(rr.Config))
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			if suppressions.Disabled(rr.Rule.ID(), diags[i].Line) {
				continue
			}
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
			allEdits = append(allEdits, diags[i].FixEdits...)
			result.Diagnostics = append(result.Diagnostics, diags[i])
		}
	}

	if len(allEdits) > 0 {
		prepared, err := fix.Prepare(allEdits, len(content))
		if err != nil {
			result.EditConflicts = true
		} else {
			result.Edits = prepared
		}
	}
	return result, nil
}
