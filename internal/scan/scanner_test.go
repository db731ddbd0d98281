package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRootFindsTxtExports(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("xy"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644))

	files, err := ScanRoot(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.Equal(t, ".txt", filepath.Ext(f.Path))
		assert.NotZero(t, f.Mtime)
		assert.NotZero(t, f.Size)
	}
}

func TestScanRootSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".trash"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".trash", "old.txt"), []byte("x"), 0o644))

	files, err := ScanRoot(root)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanRootMissingRoot(t *testing.T) {
	files, err := ScanRoot(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = ScanRoot("")
	require.NoError(t, err)
	assert.Empty(t, files)
}
