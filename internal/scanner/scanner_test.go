package scanner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forenscan/internal/analysis"
)

func newTestScanner(t *testing.T, root string) *Scanner {
	t.Helper()

	analyzer, err := analysis.NewAnalyzer("sha256")
	require.NoError(t, err)

	s, err := New(root, analyzer)
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestNewValidation(t *testing.T) {
	analyzer, err := analysis.NewAnalyzer("")
	require.NoError(t, err)

	t.Run("empty root", func(t *testing.T) {
		_, err := New("", analyzer)
		require.Error(t, err)
	})

	t.Run("nil analyzer", func(t *testing.T) {
		_, err := New(t.TempDir(), nil)
		require.Error(t, err)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "absent"), analyzer)
		require.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, path, []byte("x"))

		_, err := New(path, analyzer)
		require.Error(t, err)
	})

	t.Run("relative root normalized", func(t *testing.T) {
		s, err := New(".", analyzer)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(s.Root()))
	})
}

func TestScanCollectsNestedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.txt"), []byte("top"))
	writeFile(t, filepath.Join(root, "sub", "inner.txt"), []byte("inner"))
	writeFile(t, filepath.Join(root, "sub", "deeper", "leaf.txt"), []byte("leaf"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "emptydir"), 0o755))

	s := newTestScanner(t, root)
	records, err := s.Scan(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, record := range records {
		paths = append(paths, record.Path)
		assert.NotEmpty(t, record.Hash)
		assert.NotEmpty(t, record.Type)
	}

	want := []string{
		filepath.Join(s.Root(), "sub", "deeper", "leaf.txt"),
		filepath.Join(s.Root(), "sub", "inner.txt"),
		filepath.Join(s.Root(), "top.txt"),
	}
	assert.Equal(t, want, paths)
}

func TestScanSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "target.txt"), []byte("outside"))
	writeFile(t, filepath.Join(outside, "dir", "hidden.txt"), []byte("hidden"))

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.txt"), []byte("real"))
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.txt"), filepath.Join(root, "alias.txt")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "dir"), filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "gone.txt"), filepath.Join(root, "broken.txt")))

	s := newTestScanner(t, root)
	records, err := s.Scan(context.Background())
	require.NoError(t, err)

	var names []string
	for _, record := range records {
		names = append(names, filepath.Base(record.Path))
	}
	sort.Strings(names)

	assert.Equal(t, []string{"alias.txt", "real.txt"}, names)
}

func TestScanAbortsOnUnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced the same way on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permission checks")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked.txt")
	writeFile(t, locked, []byte("secret"))
	require.NoError(t, os.Chmod(locked, 0o000))

	s := newTestScanner(t, root)
	_, err := s.Scan(context.Background())
	require.Error(t, err)
}

func TestScanHonorsCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, root)
	_, err := s.Scan(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanEmptyRoot(t *testing.T) {
	s := newTestScanner(t, t.TempDir())

	records, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
