package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to the original path for sidecar backups.
const BackupSuffix = ".gomdtables.bak"

// BackupPath returns the sidecar backup path for a file.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup writes a sidecar copy of path before an in-place fix.
// Creation is idempotent: an existing backup is never overwritten, so
// repeated fix runs keep the earliest original. Returns true only when
// a new backup was written.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether a sidecar backup exists for path.
func BackupExists(path string) bool {
	_, err := os.Stat(BackupPath(path))
	return err == nil
}
