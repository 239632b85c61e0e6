package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/fsutil"
	"github.com/yaklabco/gomdtables/pkg/lint"
	_ "github.com/yaklabco/gomdtables/pkg/lint/rules"
)

const (
	messyTable = "# Doc\n\n| A | B |\n|---|---|\n| longer | 1 |\n"
	fixedTable = "# Doc\n\n| A      | B   |\n| ------ | --- |\n| longer | 1   |\n"
)

func newTestPipeline() *lint.Pipeline {
	return lint.NewPipeline(lint.NewEngine(lint.DefaultRegistry))
}

func TestProcessContentReportOnly(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()
	result, err := p.ProcessContent(context.Background(), "doc.md", []byte(messyTable),
		config.Default(), lint.PipelineOptions{})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.HasIssues() {
		t.Fatal("expected diagnostics for a misaligned table")
	}
	if result.Modified {
		t.Error("Modified = true without fix mode")
	}
	if result.Summary() != "issues found" {
		t.Errorf("Summary() = %q, want %q", result.Summary(), "issues found")
	}
}

func TestProcessContentFixConvergesInOnePass(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()
	result, err := p.ProcessContent(context.Background(), "doc.md", []byte(messyTable),
		config.Default(), lint.PipelineOptions{Fix: true})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.Modified {
		t.Fatal("Modified = false, want true")
	}
	if result.FixPasses != 1 {
		t.Errorf("FixPasses = %d, want 1", result.FixPasses)
	}
	if got := string(result.ModifiedContent); got != fixedTable {
		t.Errorf("ModifiedContent =\n%s\nwant:\n%s", got, fixedTable)
	}

	// Fixed content must check clean.
	again, err := p.ProcessContent(context.Background(), "doc.md", result.ModifiedContent,
		config.Default(), lint.PipelineOptions{Fix: true})
	if err != nil {
		t.Fatalf("second ProcessContent() error = %v", err)
	}
	if again.Modified || again.HasIssues() {
		t.Errorf("fixed content not clean: modified=%v diags=%v", again.Modified, again.Diagnostics)
	}
}

func TestProcessContentDryRunDiff(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()
	result, err := p.ProcessContent(context.Background(), "doc.md", []byte(messyTable),
		config.Default(), lint.PipelineOptions{Fix: true, DryRun: true})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if result.Diff == "" {
		t.Fatal("Diff empty in dry-run mode")
	}
	for _, frag := range []string{"--- doc.md", "+++ doc.md", "-| A | B |", "+| A      | B   |"} {
		if !strings.Contains(result.Diff, frag) {
			t.Errorf("diff missing %q:\n%s", frag, result.Diff)
		}
	}
}

func TestProcessContentCleanInput(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()
	result, err := p.ProcessContent(context.Background(), "doc.md", []byte(fixedTable),
		config.Default(), lint.PipelineOptions{Fix: true, DryRun: true})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if result.Modified || result.Diff != "" || result.HasIssues() {
		t.Errorf("clean input produced changes: %+v", result)
	}
	if result.Summary() != "ok" {
		t.Errorf("Summary() = %q, want %q", result.Summary(), "ok")
	}
}

func TestProcessFileWritesFixAndBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(messyTable), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline()
	result, err := p.ProcessFile(context.Background(), path, config.Default(),
		lint.PipelineOptions{Fix: true, Backup: true, StrictRaceDetection: true})
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Written || !result.BackupCreated {
		t.Fatalf("written=%v backupCreated=%v, want both true", result.Written, result.BackupCreated)
	}

	fixed, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(fixed) != fixedTable {
		t.Errorf("file content =\n%s\nwant:\n%s", fixed, fixedTable)
	}

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	if err != nil {
		t.Fatalf("backup not readable: %v", err)
	}
	if string(backup) != messyTable {
		t.Errorf("backup content =\n%s\nwant original:\n%s", backup, messyTable)
	}
	if result.Summary() != "fixed (backup created)" {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestProcessFileNoBackupOption(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(messyTable), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline()
	result, err := p.ProcessFile(context.Background(), path, config.Default(),
		lint.PipelineOptions{Fix: true, Backup: false})
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Written || result.BackupCreated {
		t.Errorf("written=%v backupCreated=%v, want written without backup",
			result.Written, result.BackupCreated)
	}
	if fsutil.BackupExists(path) {
		t.Error("backup file created despite Backup: false")
	}
}

func TestProcessFileLeavesCleanFileAlone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(fixedTable), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline()
	result, err := p.ProcessFile(context.Background(), path, config.Default(),
		lint.PipelineOptions{Fix: true, Backup: true})
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Modified || result.Written || result.BackupCreated {
		t.Errorf("clean file touched: %+v", result)
	}
	if fsutil.BackupExists(path) {
		t.Error("backup created for an unmodified file")
	}
}

func TestProcessFileDryRunDoesNotWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(messyTable), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline()
	result, err := p.ProcessFile(context.Background(), path, config.Default(),
		lint.PipelineOptions{Fix: true, DryRun: true, Backup: true})
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Written || result.BackupCreated {
		t.Errorf("dry run hit the disk: %+v", result)
	}
	if result.Diff == "" {
		t.Error("dry run produced no diff")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != messyTable {
		t.Error("dry run changed the file on disk")
	}
}

func TestProcessFileMissing(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()
	_, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"),
		config.Default(), lint.PipelineOptions{})
	if !errors.Is(err, lint.ErrFileNotFound) {
		t.Errorf("ProcessFile() error = %v, want ErrFileNotFound", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Fix = true
	cfg.NoBackups = true

	opts := lint.OptionsFromConfig(cfg)
	if !opts.Fix || opts.Backup {
		t.Errorf("opts = %+v, want fix enabled and backups suppressed", opts)
	}
	if !opts.StrictRaceDetection {
		t.Error("StrictRaceDetection disabled by default")
	}
}

func TestProcessContentHonorsDisableComments(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	disabled := "<!-- markdownlint-disable MD060 -->\n\n" + messyTable
	result, err := p.ProcessContent(context.Background(), "doc.md", []byte(disabled),
		config.Default(), lint.PipelineOptions{Fix: true})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}
	if result.HasIssues() || result.Modified {
		t.Errorf("disabled table still reported: modified=%v diags=%v",
			result.Modified, result.Diagnostics)
	}

	// Disabling one rule leaves the others running.
	partial := "<!-- markdownlint-disable MD056 -->\n\n| A | B |\n|---|---|\n| longer | 1 | extra |\n"
	result, err = p.ProcessContent(context.Background(), "doc.md", []byte(partial),
		config.Default(), lint.PipelineOptions{})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}
	if !result.HasIssues() {
		t.Fatal("expected format diagnostics with only MD056 disabled")
	}
	for _, d := range result.Diagnostics {
		if d.RuleID == "MD056" {
			t.Errorf("disabled rule still reported: %+v", d)
		}
	}
}
