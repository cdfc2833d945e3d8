package endpoint

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestLocalFSListSpecialNames(t *testing.T) {
	tmp := t.TempDir()
	rootDir := filepath.Join(tmp, "子 目录")
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	filePath := filepath.Join(rootDir, "data 中 文.md")
	if err := os.WriteFile(filePath, []byte("hi"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	fs := NewLocalFS(tmp)
	metas, err := fs.List(nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	foundDir := false
	foundFile := false
	for _, m := range metas {
		if m.RelPath == "子 目录" && m.IsDir {
			foundDir = true
		}
		if m.RelPath == "子 目录/data 中 文.md" && !m.IsDir {
			foundFile = true
		}
	}
	if !foundDir || !foundFile {
		t.Fatalf("missing entries dir=%v file=%v metas=%+v", foundDir, foundFile, metas)
	}
}

func TestLocalFSListOrderAndEmptyDirs(t *testing.T) {
	tmp := t.TempDir()
	for _, dir := range []string{"a", "a/empty", "b"} {
		if err := os.MkdirAll(filepath.Join(tmp, dir), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	for _, file := range []string{"a/x.md", "b/y.md", "z.txt"} {
		if err := os.WriteFile(filepath.Join(tmp, file), []byte(file), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	metas, err := NewLocalFS(tmp).List(nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var got []string
	for _, m := range metas {
		got = append(got, m.RelPath)
	}
	want := []string{".", "a", "a/empty", "a/x.md", "b", "b/y.md", "z.txt"}
	if len(got) != len(want) {
		t.Fatalf("unexpected entries %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: want %s got %s (all %v)", i, want[i], got[i], got)
		}
	}
	if !metas[0].IsDir || !metas[2].IsDir {
		t.Fatalf("directories not flagged: %+v", metas)
	}
}

func TestLocalFSListSkipsExcludedDirs(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, ".ipynb_checkpoints"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, ".ipynb_checkpoints", "c.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "keep.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	metas, err := NewLocalFS(tmp).List(NewMatcher([]string{".ipynb_checkpoints"}))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, m := range metas {
		if m.RelPath != "." && m.RelPath != "keep.md" {
			t.Fatalf("unexpected entry %s", m.RelPath)
		}
	}
}

func TestLocalFSSetMetaPreservesModTime(t *testing.T) {
	tmp := t.TempDir()
	fs := NewLocalFS(tmp)
	w, err := fs.Create("nested/file.md", 0o644)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.Write([]byte("data")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := fs.SetMeta("nested/file.md", 0o600, mtime); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	meta, err := fs.Stat("nested/file.md")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !meta.ModTime.Equal(mtime) {
		t.Fatalf("mtime not preserved: %v", meta.ModTime)
	}
	if meta.Perm() != 0o600 {
		t.Fatalf("perm not applied: %v", meta.Perm())
	}
}

func TestLocalFSListSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	outside := t.TempDir()
	target := filepath.Join(outside, "CHANGELOG.md")
	if err := os.WriteFile(target, []byte("# changes"), 0o640); err != nil {
		t.Fatalf("write: %v", err)
	}
	mtime := time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
	if err := os.Chtimes(target, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outside, "inner.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tmp := t.TempDir()
	links := map[string]string{
		"changelog.md": target,
		"shared":       outside,
		"dangling.md":  filepath.Join(outside, "missing.md"),
	}
	for name, dest := range links {
		if err := os.Symlink(dest, filepath.Join(tmp, name)); err != nil {
			t.Fatalf("symlink: %v", err)
		}
	}

	metas, err := NewLocalFS(tmp).List(nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	byPath := map[string]FileMeta{}
	for _, m := range metas {
		byPath[m.RelPath] = m
	}
	link, ok := byPath["changelog.md"]
	if !ok {
		t.Fatalf("file symlink not listed: %+v", metas)
	}
	if link.IsDir || link.Size != int64(len("# changes")) || link.Perm() != 0o640 || !link.ModTime.Equal(mtime) {
		t.Fatalf("file symlink should carry target metadata: %+v", link)
	}
	if _, ok := byPath["dangling.md"]; !ok {
		t.Fatalf("dangling symlink should stay listed so the copy reports it: %+v", metas)
	}
	for rel := range byPath {
		if rel == "shared" || filepath.Dir(rel) == "shared" {
			t.Fatalf("directory symlink must not be listed or descended: %s", rel)
		}
	}
}
