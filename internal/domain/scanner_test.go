package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cisolate/cisolate/internal/adapter"
	m "github.com/cisolate/cisolate/internal/model"
)

func writeTestFile(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("/* test fixture */\n"), 0o600))
}

func TestScanner_FindsHeadersAndImplementations(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "io", "gpio.c"))
	writeTestFile(t, filepath.Join(root, "io", "gpio.h"))
	writeTestFile(t, filepath.Join(root, "adc.c"))
	writeTestFile(t, filepath.Join(root, "notes.txt"))

	scanner := NewScanner(adapter.NewLocalSourceFSAdapter())

	headers, impls, err := scanner.Scan([]m.Path{m.Path(root)})
	require.NoError(t, err)

	require.Len(t, headers, 1)
	assert.Equal(t, "gpio.h", headers[0].Name())
	assert.Equal(t, m.KindHeader, headers[0].Kind)

	require.Len(t, impls, 2)
	assert.Equal(t, "adc.c", impls[0].Name())
	assert.Equal(t, "gpio.c", impls[1].Name())
}

func TestScanner_SortsAcrossRoots(t *testing.T) {
	base := t.TempDir()
	rootA := filepath.Join(base, "pltf")
	rootB := filepath.Join(base, "cfg")
	writeTestFile(t, filepath.Join(rootA, "z.c"))
	writeTestFile(t, filepath.Join(rootB, "a.c"))

	scanner := NewScanner(adapter.NewLocalSourceFSAdapter())

	_, impls, err := scanner.Scan([]m.Path{m.Path(rootA), m.Path(rootB)})
	require.NoError(t, err)

	require.Len(t, impls, 2)
	assert.Equal(t, "a.c", impls[0].Name())
	assert.Equal(t, "z.c", impls[1].Name())
}

func TestScanner_ExcludesGeneratedPackages(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "main.c"))
	writeTestFile(t, filepath.Join(root, "TEST_add", "src", "add.c"))
	writeTestFile(t, filepath.Join(root, "TEST_add", "src", "add.h"))

	scanner := NewScanner(adapter.NewLocalSourceFSAdapter())

	headers, impls, err := scanner.Scan([]m.Path{m.Path(root)})
	require.NoError(t, err)

	assert.Empty(t, headers)
	require.Len(t, impls, 1)
	assert.Equal(t, "main.c", impls[0].Name())
}

func TestScanner_MissingRootContributesNothing(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "main.c"))

	scanner := NewScanner(adapter.NewLocalSourceFSAdapter())

	headers, impls, err := scanner.Scan([]m.Path{
		m.Path(root),
		m.Path(filepath.Join(root, "does-not-exist")),
	})
	require.NoError(t, err)
	assert.Empty(t, headers)
	assert.Len(t, impls, 1)
}
