package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestMeasureMissingPathIsZero(t *testing.T) {
	s := Measure(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Zero(t, s.Bytes)
}

func TestMeasureSumsTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), 100)
	writeFile(t, filepath.Join(dir, "sub", "b.bin"), 250)

	s := Measure(dir)
	assert.Equal(t, uint64(350), s.Bytes)
	assert.Equal(t, dir, s.Path)
}

func TestMeasureSingleFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "one.bin")
	writeFile(t, f, 42)
	assert.Equal(t, uint64(42), Measure(f).Bytes)
}

func TestFreeSpaceReportsSomething(t *testing.T) {
	s, err := FreeSpace()
	require.NoError(t, err)
	assert.NotEmpty(t, s.Path)
	assert.Greater(t, s.Bytes, uint64(0))
}

func TestSafeDeleteRefusesProtectedPaths(t *testing.T) {
	for _, p := range []string{"/", "/etc", "/usr", "/var", "/tmp", "/System", "/home"} {
		_, err := SafeDelete(p)
		assert.ErrorIs(t, err, ErrProtected, "path %s", p)
	}
}

func TestSafeDeleteRefusesDepthOnePaths(t *testing.T) {
	_, err := SafeDelete("/anything-at-top-level")
	assert.ErrorIs(t, err, ErrProtected)
}

func TestSafeDeleteRemovesAndReportsFreedBytes(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cache")
	writeFile(t, filepath.Join(target, "blob"), 512)

	freed, err := SafeDelete(target)
	require.NoError(t, err)
	assert.Equal(t, uint64(512), freed)
	assert.NoFileExists(t, filepath.Join(target, "blob"))
	assert.NoDirExists(t, target)
}

func TestRemoveContentsKeepsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), 10)
	writeFile(t, filepath.Join(dir, "nested", "b"), 20)

	freed, err := RemoveContents(dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), freed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveContentsMissingDirErrors(t *testing.T) {
	_, err := RemoveContents(filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}
