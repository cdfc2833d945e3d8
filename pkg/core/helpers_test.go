package core

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"docsync/pkg/notebook"
)

const markedNotebook = "---\njupytext:\n---\ncontent"

// fakeConverter 模拟 jupytext：记录调用并在旁边写出 .ipynb
type fakeConverter struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeConverter) Convert(ctx context.Context, path string) error {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	if f.fail[filepath.Base(path)] {
		return &notebook.ConversionError{Path: path, ExitCode: 1}
	}
	return os.WriteFile(notebook.ArtifactPath(path, "ipynb"), []byte("{}"), 0o644)
}

func (f *fakeConverter) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func testConfig(t *testing.T, conv notebook.Converter) *SyncConfig {
	t.Helper()
	base := t.TempDir()
	src := filepath.Join(base, "source")
	require.NoError(t, os.MkdirAll(src, 0o755))
	cfg := DefaultConfig()
	cfg.SourceRoot = src
	cfg.TargetRoot = filepath.Join(base, "_source")
	cfg.NoProgress = true
	cfg.Stdout = io.Discard
	cfg.NotebookConverter = conv
	return cfg
}

func readTarget(t *testing.T, cfg *SyncConfig, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.TargetRoot, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func symlinkOrSkip(t *testing.T, oldname, newname string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	require.NoError(t, os.Symlink(oldname, newname))
}
