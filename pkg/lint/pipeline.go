package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/fix"
	"github.com/yaklabco/gomdtables/pkg/fsutil"
)

// DefaultMaxFixPasses caps the fix loop. Table fixes converge in one
// pass because canonical rendering is idempotent, but the cap guards
// against a rule whose fix re-triggers another rule.
const DefaultMaxFixPasses = 10

// Pipeline error categories.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrCheckFailure     = errors.New("check failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineOptions controls the safety pipeline.
type PipelineOptions struct {
	// Fix applies available edits instead of only reporting.
	Fix bool

	// DryRun renders a unified diff instead of writing.
	DryRun bool

	// Backup creates a sidecar backup before the first in-place write.
	Backup bool

	// StrictRaceDetection re-hashes content when checking whether the
	// file changed underneath us. When false only mtime and size are
	// compared.
	StrictRaceDetection bool

	// MaxFixPasses caps fix iterations; zero means DefaultMaxFixPasses.
	MaxFixPasses int
}

// OptionsFromConfig derives pipeline options from the resolved config.
func OptionsFromConfig(cfg *config.Config) PipelineOptions {
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              cfg.Backups.Enabled && !cfg.NoBackups,
		StrictRaceDetection: true,
	}
}

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	*FileResult

	// Path is the file that was processed.
	Path string

	// Modified is true when fixing changed the content.
	Modified bool

	// ModifiedContent is the fixed content (nil when unmodified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode ("" otherwise).
	Diff string

	// Skipped is true when the file was left alone, with SkipReason
	// explaining why.
	Skipped    bool
	SkipReason string

	// BackupCreated and Written record what hit the disk.
	BackupCreated bool
	Written       bool

	// FixPasses counts fix iterations performed.
	FixPasses int
}

// Summary returns a one-word status for logs.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// Pipeline orchestrates the safe processing of a single file: read
// and hash, check, fix in memory, race-check, back up, write
// atomically.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full pipeline for one file on disk.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	original, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	if !result.Modified || opts.DryRun {
		return result, nil
	}

	changed, err := snap.Modified(ctx, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return result, nil
}

// ProcessContent runs the check and in-memory fix loop without file
// I/O. Used by ProcessFile and directly in tests.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, original []byte, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	var fileResult *FileResult
	for range maxPasses {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
		default:
		}

		var checkErr error
		fileResult, checkErr = p.Engine.CheckFile(ctx, path, content, cfg)
		if checkErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrCheckFailure, checkErr)
		}

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		content = fix.Apply(content, fileResult.Edits)
		result.FixPasses++
		result.Modified = true
	}

	result.FileResult = fileResult
	if !result.Modified {
		return result, nil
	}
	result.ModifiedContent = content

	if opts.DryRun {
		result.Diff = fix.UnifiedDiff(path, path, original, content, 3)
	}
	return result, nil
}

// categorizeError wraps read errors with pipeline error categories so
// callers can branch with errors.Is.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}
