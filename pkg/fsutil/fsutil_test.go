package fsutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "hello\n")

	content, snap, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "hello\n" {
		t.Errorf("content = %q", content)
	}
	if snap.Path != path || snap.Size != 6 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := ReadFile(context.Background(), filepath.Join(dir, "missing.md"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}

	_, _, err = ReadFile(context.Background(), dir)
	if !errors.Is(err, ErrIsDirectory) {
		t.Errorf("directory error = %v, want ErrIsDirectory", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ReadFile(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}
}

func TestSnapshotModified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "original\n")

	_, snap, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err := snap.Modified(context.Background(), true)
	if err != nil {
		t.Fatalf("Modified() error = %v", err)
	}
	if changed {
		t.Error("unchanged file reported as modified")
	}

	writeFile(t, path, "rewritten\n")
	changed, err = snap.Modified(context.Background(), true)
	if err != nil {
		t.Fatalf("Modified() error = %v", err)
	}
	if !changed {
		t.Error("rewritten file reported as unmodified")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	changed, err = snap.Modified(context.Background(), false)
	if err != nil {
		t.Fatalf("Modified() error = %v", err)
	}
	if !changed {
		t.Error("deleted file reported as unmodified")
	}
}

func TestSnapshotModifiedStrictCatchesSameSizeRewrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "aaaa\n")

	_, snap, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	// Same size, same forced mtime: only the hash can tell.
	writeFile(t, path, "bbbb\n")
	if err := os.Chtimes(path, snap.ModTime, snap.ModTime); err != nil {
		t.Fatal(err)
	}

	changed, err := snap.Modified(context.Background(), true)
	if err != nil {
		t.Fatalf("Modified() error = %v", err)
	}
	if !changed {
		t.Error("strict check missed a same-size rewrite")
	}

	changed, err = snap.Modified(context.Background(), false)
	if err != nil {
		t.Fatalf("Modified() error = %v", err)
	}
	if changed {
		t.Error("non-strict check unexpectedly caught the rewrite")
	}
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "old\n")

	if err := WriteAtomic(context.Background(), path, []byte("new\n"), 0o600); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "new\n" {
		t.Errorf("content = %q, want %q", content, "new\n")
	}

	stat, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if stat.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", stat.Mode().Perm())
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1: %v", len(entries), entries)
	}
}

func TestWriteAtomicCreatesNewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fresh.md")
	if err := WriteAtomic(context.Background(), path, []byte("x\n"), 0); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if stat.Mode().Perm() != DefaultFileMode {
		t.Errorf("mode = %v, want %v", stat.Mode().Perm(), DefaultFileMode)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "original\n")

	created, err := CreateBackup(context.Background(), path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if !created || !BackupExists(path) {
		t.Fatal("backup not created")
	}

	// A second run must keep the earliest original.
	writeFile(t, path, "changed\n")
	created, err = CreateBackup(context.Background(), path)
	if err != nil {
		t.Fatalf("second CreateBackup() error = %v", err)
	}
	if created {
		t.Error("existing backup overwritten")
	}

	backup, err := os.ReadFile(BackupPath(path))
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) != "original\n" {
		t.Errorf("backup = %q, want the first original", backup)
	}
}

func TestCreateBackupMissingOriginal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gone.md")
	created, err := CreateBackup(context.Background(), path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if created {
		t.Error("backup created for a missing file")
	}
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := BackupPath("a/b.md"); got != "a/b.md"+BackupSuffix {
		t.Errorf("BackupPath() = %q", got)
	}
}
