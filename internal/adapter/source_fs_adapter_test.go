package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/cisolate/cisolate/internal/model"
)

func TestLocalSourceFSAdapter_WalkMissingRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	called := false
	err := adapter.Walk(m.Path(filepath.Join(t.TempDir(), "missing")), func(string, os.FileInfo, error) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called)
}

func TestLocalSourceFSAdapter_WalkVisitsFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "f.c"), []byte("x"), 0o600))

	adapter := NewLocalSourceFSAdapter()

	var files []string
	err := adapter.Walk(m.Path(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			files = append(files, filepath.Base(path))
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"f.c"}, files)
}

func TestLocalSourceFSAdapter_WriteFileCreatesParents(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	path := m.Path(filepath.Join(t.TempDir(), "a", "b", "out.h"))

	require.NoError(t, adapter.WriteFile(path, []byte("content"), 0o640))

	got, err := adapter.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
}

func TestLocalSourceFSAdapter_DirEntries(t *testing.T) {
	root := t.TempDir()
	adapter := NewLocalSourceFSAdapter()

	entries, err := adapter.DirEntries(m.Path(filepath.Join(root, "missing")))
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, os.WriteFile(filepath.Join(root, "one.c"), []byte("x"), 0o600))

	entries, err = adapter.DirEntries(m.Path(root))
	require.NoError(t, err)
	assert.Equal(t, []string{"one.c"}, entries)
}

func TestLocalSourceFSAdapter_DirExists(t *testing.T) {
	root := t.TempDir()
	adapter := NewLocalSourceFSAdapter()

	assert.True(t, adapter.DirExists(m.Path(root)))
	assert.False(t, adapter.DirExists(m.Path(filepath.Join(root, "missing"))))

	file := filepath.Join(root, "plain.c")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	assert.False(t, adapter.DirExists(m.Path(file)))
}
