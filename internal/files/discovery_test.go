package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestFindSurveyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wave_2.csv")
	writeFile(t, dir, "wave_1.csv")
	writeFile(t, dir, "panel.XLSX")
	writeFile(t, dir, "~$panel.xlsx")
	writeFile(t, dir, "readme.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	d := NewDiscovery("")
	found, err := d.FindSurveyFiles(dir)
	require.NoError(t, err)

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"panel.XLSX", "wave_1.csv", "wave_2.csv"}, names,
		"matching files only, sorted by name")
	assert.True(t, found[0].IsExcel())
	assert.False(t, found[1].IsExcel())
}

func TestFindSurveyFilesEmptyDir(t *testing.T) {
	d := NewDiscovery("")
	found, err := d.FindSurveyFiles(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindSurveyFilesMissingDir(t *testing.T) {
	d := NewDiscovery("")
	_, err := d.FindSurveyFiles(filepath.Join(t.TempDir(), "nope"))

	assert.Error(t, err)
}

func TestFindSurveyFilesRelativeToBase(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "raw"), 0755))
	writeFile(t, filepath.Join(base, "raw"), "wave.csv")

	d := NewDiscovery(base)
	found, err := d.FindSurveyFiles("raw")

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(base, "raw", "wave.csv"), found[0].Path)
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := DirExists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = DirExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	writeFile(t, dir, "plain.csv")
	ok, err = DirExists(filepath.Join(dir, "plain.csv"))
	require.NoError(t, err)
	assert.False(t, ok, "a regular file is not a directory")
}
