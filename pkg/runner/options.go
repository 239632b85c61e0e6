// Package runner provides multi-file orchestration: discovery plus a
// worker pool feeding the lint pipeline.
package runner

import "github.com/yaklabco/gomdtables/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. Empty defaults to
	// the current working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process
	// working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions (with leading dot)
	// treated as Markdown.
	Extensions []string

	// IgnoreGlobs skip matching files or directories, relative to
	// WorkingDir. Merged from config and the --ignore flag.
	IgnoreGlobs []string

	// Jobs caps concurrent workers. Zero or negative means one per CPU.
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the extensions scanned by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
