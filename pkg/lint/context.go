package lint

import (
	"context"

	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/tables"
)

// tableCache holds one file's parsed tables and their validation
// results. RuleContexts for the same file share one cache, so the
// parse and each block's validation happen at most once per file.
type tableCache struct {
	parsed     bool
	blocks     []*tables.Block
	parseErr   error
	violations map[*tables.Block][]tables.Violation
}

// RuleContext provides everything a rule needs for one invocation.
//
// Design note: the context.Context lives in a field rather than a
// method parameter. RuleContext is a short-lived parameter object
// created per rule invocation, so this keeps the Rule interface to a
// single Apply method while still supporting cancellation.
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// File is the snapshot being checked.
	File *FileSnapshot

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry gives rules access to name lookups.
	Registry *Registry

	cache *tableCache
}

// NewRuleContext creates a RuleContext for the given file.
func NewRuleContext(ctx context.Context, file *FileSnapshot, cfg *config.Config, ruleCfg *config.RuleConfig) *RuleContext {
	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Config:     cfg,
		RuleConfig: ruleCfg,
		cache:      &tableCache{},
	}
}

// ForRule returns a copy of the context carrying the given rule's
// configuration. The copy shares the receiver's table cache.
func (rc *RuleContext) ForRule(ruleCfg *config.RuleConfig) *RuleContext {
	clone := *rc
	clone.RuleConfig = ruleCfg
	return &clone
}

// Cancelled reports whether the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Blocks returns the pipe tables found in the file, parsing lazily on
// first call.
func (rc *RuleContext) Blocks() ([]*tables.Block, error) {
	if !rc.cache.parsed {
		rc.cache.blocks, rc.cache.parseErr = tables.Parse(rc.File.Content)
		rc.cache.parsed = true
	}
	return rc.cache.blocks, rc.cache.parseErr
}

// Violations returns the cached validation result for a block.
func (rc *RuleContext) Violations(b *tables.Block) []tables.Violation {
	if rc.cache.violations == nil {
		rc.cache.violations = make(map[*tables.Block][]tables.Violation)
	}
	v, ok := rc.cache.violations[b]
	if !ok {
		v = tables.Validate(b)
		rc.cache.violations[b] = v
	}
	return v
}
