package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdtables/internal/logging"
)

func TestRootCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand(BuildInfo{Version: "test"})
	for _, name := range []string{"debug", "quiet", "config", "color"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

// Not parallel: the quiet flag mutates the shared default logger.
func TestRootCommandQuietSetsLogLevel(t *testing.T) {
	cmd := NewRootCommand(BuildInfo{Version: "test", Commit: "abc", Date: "today"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--quiet", "version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := logging.Default().GetLevel(); got != log.ErrorLevel {
		t.Errorf("log level = %v, want error", got)
	}
	logging.SetLevel("info")
}
