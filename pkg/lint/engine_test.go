package lint

import (
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/fix"
	"github.com/yaklabco/gomdtables/pkg/tables"
)

// stubRule emits a fixed set of diagnostics, or fails.
type stubRule struct {
	BaseRule
	diags []Diagnostic
	err   error
}

func (r *stubRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out, nil
}

func newStubRegistry(rules ...Rule) *Registry {
	reg := NewRegistry()
	for _, r := range rules {
		reg.Register(r)
	}
	return reg
}

func boolPtr(b bool) *bool { return &b }

func TestCheckFileStampsDiagnostics(t *testing.T) {
	t.Parallel()

	rule := &stubRule{
		BaseRule: NewBaseRule("T001", "test-rule", "a stub", nil, false),
		diags: []Diagnostic{
			NewDiagnosticAt("T001", "", 2, 1, "something off").Build(),
		},
	}
	engine := NewEngine(newStubRegistry(rule))

	result, err := engine.CheckFile(context.Background(), "doc.md", []byte("a\nb\n"), config.Default())
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}

	d := result.Diagnostics[0]
	if d.FilePath != "doc.md" {
		t.Errorf("FilePath = %q, want %q", d.FilePath, "doc.md")
	}
	if d.RuleName != "test-rule" {
		t.Errorf("RuleName = %q, want %q", d.RuleName, "test-rule")
	}
	if d.Severity != config.SeverityWarning {
		t.Errorf("Severity = %q, want default warning", d.Severity)
	}
}

func TestCheckFileSeverityOverride(t *testing.T) {
	t.Parallel()

	rule := &stubRule{
		BaseRule: NewBaseRule("T001", "test-rule", "a stub", nil, false),
		diags:    []Diagnostic{NewDiagnosticAt("T001", "", 1, 0, "msg").Build()},
	}
	engine := NewEngine(newStubRegistry(rule))

	cfg := config.Default()
	cfg.Rules["test-rule"] = config.RuleConfig{Severity: config.SeverityError}

	result, err := engine.CheckFile(context.Background(), "doc.md", []byte("x\n"), cfg)
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if got := result.Diagnostics[0].Severity; got != config.SeverityError {
		t.Errorf("Severity = %q, want error", got)
	}
	if got := result.MaxSeverity(); got != config.SeverityError {
		t.Errorf("MaxSeverity() = %q, want error", got)
	}
}

func TestCheckFileDisabledRule(t *testing.T) {
	t.Parallel()

	rule := &stubRule{
		BaseRule: NewBaseRule("T001", "test-rule", "a stub", nil, false),
		diags:    []Diagnostic{NewDiagnosticAt("T001", "", 1, 0, "msg").Build()},
	}
	engine := NewEngine(newStubRegistry(rule))

	cfg := config.Default()
	cfg.Rules["T001"] = config.RuleConfig{Enabled: boolPtr(false)}

	result, err := engine.CheckFile(context.Background(), "doc.md", []byte("x\n"), cfg)
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if result.HasIssues() {
		t.Errorf("disabled rule still produced diagnostics: %v", result.Diagnostics)
	}
}

func TestCheckFileCollectsEdits(t *testing.T) {
	t.Parallel()

	edit := fix.TextEdit{StartOffset: 0, EndOffset: 1, NewText: "X"}
	rule := &stubRule{
		BaseRule: NewBaseRule("T001", "test-rule", "a stub", nil, true),
		diags: []Diagnostic{
			NewDiagnosticAt("T001", "", 1, 0, "msg").WithEdit(edit).Build(),
		},
	}
	engine := NewEngine(newStubRegistry(rule))

	result, err := engine.CheckFile(context.Background(), "doc.md", []byte("ab\n"), config.Default())
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if !result.HasFixes() || len(result.Edits) != 1 {
		t.Fatalf("Edits = %v, want the one proposed edit", result.Edits)
	}
	if result.FixableCount() != 1 {
		t.Errorf("FixableCount() = %d, want 1", result.FixableCount())
	}
	if got := string(fix.Apply(result.Snapshot.Content, result.Edits)); got != "Xb\n" {
		t.Errorf("applied content = %q, want %q", got, "Xb\n")
	}
}

func TestCheckFileConflictingEditsDropped(t *testing.T) {
	t.Parallel()

	first := &stubRule{
		BaseRule: NewBaseRule("T001", "rule-one", "a stub", nil, true),
		diags: []Diagnostic{
			NewDiagnosticAt("T001", "", 1, 0, "msg").
				WithEdit(fix.TextEdit{StartOffset: 0, EndOffset: 3, NewText: "x"}).Build(),
		},
	}
	second := &stubRule{
		BaseRule: NewBaseRule("T002", "rule-two", "a stub", nil, true),
		diags: []Diagnostic{
			NewDiagnosticAt("T002", "", 1, 0, "msg").
				WithEdit(fix.TextEdit{StartOffset: 2, EndOffset: 4, NewText: "y"}).Build(),
		},
	}
	engine := NewEngine(newStubRegistry(first, second))

	result, err := engine.CheckFile(context.Background(), "doc.md", []byte("abcde\n"), config.Default())
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if !result.EditConflicts {
		t.Error("EditConflicts = false, want true")
	}
	if result.HasFixes() {
		t.Errorf("Edits = %v, want none after conflict", result.Edits)
	}
	if len(result.Diagnostics) != 2 {
		t.Errorf("got %d diagnostics, want both kept", len(result.Diagnostics))
	}
}

func TestCheckFileRuleError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := &stubRule{
		BaseRule: NewBaseRule("T001", "failing-rule", "a stub", nil, false),
		err:      boom,
	}
	healthy := &stubRule{
		BaseRule: NewBaseRule("T002", "healthy-rule", "a stub", nil, false),
		diags:    []Diagnostic{NewDiagnosticAt("T002", "", 1, 0, "msg").Build()},
	}
	engine := NewEngine(newStubRegistry(failing, healthy))

	result, err := engine.CheckFile(context.Background(), "doc.md", []byte("x\n"), config.Default())
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if !errors.Is(result.RuleErrors["T001"], boom) {
		t.Errorf("RuleErrors[T001] = %v, want boom", result.RuleErrors["T001"])
	}
	if len(result.Diagnostics) != 1 {
		t.Errorf("got %d diagnostics, want the healthy rule's one", len(result.Diagnostics))
	}
}

func TestCheckFileCancellation(t *testing.T) {
	t.Parallel()

	rule := &stubRule{BaseRule: NewBaseRule("T001", "test-rule", "a stub", nil, false)}
	engine := NewEngine(newStubRegistry(rule))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.CheckFile(ctx, "doc.md", []byte("x\n"), config.Default())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CheckFile() error = %v, want context.Canceled", err)
	}
}

// captureRule records the blocks it saw, to observe cache sharing.
type captureRule struct {
	BaseRule
	blocks []*tables.Block
}

func (r *captureRule) Apply(ctx *RuleContext) ([]Diagnostic, error) {
	blocks, err := ctx.Blocks()
	r.blocks = blocks
	return nil, err
}

func TestCheckFileSharesParsedTables(t *testing.T) {
	t.Parallel()

	first := &captureRule{BaseRule: NewBaseRule("T001", "rule-one", "a capture", nil, false)}
	second := &captureRule{BaseRule: NewBaseRule("T002", "rule-two", "a capture", nil, false)}
	engine := NewEngine(newStubRegistry(first, second))

	content := []byte("| A | B |\n| --- | --- |\n| 1 | 2 |\n")
	if _, err := engine.CheckFile(context.Background(), "doc.md", content, config.Default()); err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}

	if len(first.blocks) != 1 || len(second.blocks) != 1 {
		t.Fatalf("blocks seen = %d and %d, want 1 each", len(first.blocks), len(second.blocks))
	}
	if first.blocks[0] != second.blocks[0] {
		t.Error("rules received different parses of the same file")
	}
}

func TestCheckFileHonorsDisableComments(t *testing.T) {
	t.Parallel()

	edit := fix.TextEdit{StartOffset: 0, EndOffset: 1, NewText: "X"}
	rule := &stubRule{
		BaseRule: NewBaseRule("MD099", "stub-rule", "a stub", nil, true),
		diags: []Diagnostic{
			NewDiagnosticAt("MD099", "", 2, 0, "suppressed").WithEdit(edit).Build(),
			NewDiagnosticAt("MD099", "", 4, 0, "reported").Build(),
		},
	}
	engine := NewEngine(newStubRegistry(rule))

	content := []byte("<!-- markdownlint-disable MD099 -->\nx\n<!-- markdownlint-enable MD099 -->\ny\n")
	result, err := engine.CheckFile(context.Background(), "doc.md", content, config.Default())
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}

	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want only the one outside the disabled range", len(result.Diagnostics))
	}
	if got := result.Diagnostics[0].Message; got != "reported" {
		t.Errorf("kept diagnostic = %q, want %q", got, "reported")
	}
	if result.HasFixes() {
		t.Errorf("Edits = %v, want the suppressed diagnostic's edit dropped", result.Edits)
	}
}
