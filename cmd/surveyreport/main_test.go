package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveycli/internal/infrastructure"
)

const surveyHeader = "respondent_id,age_group,gender,race,education,income,policy_support"

func TestRunSuccess(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	sourceDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "wave.csv"),
		[]byte(surveyHeader+"\nr1,18-29,Male,White,Bachelors,Middle,1\n"), 0644))

	code := run([]string{"-in", sourceDir, "-out", destDir})

	assert.Equal(t, 0, code)
	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "a successful run writes exactly one report")
	assert.True(t, strings.HasPrefix(entries[0].Name(), "report_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".txt"))
}

func TestRunFailsOnEmptySource(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	destDir := filepath.Join(t.TempDir(), "docs")

	code := run([]string{"-in", t.TempDir(), "-out", destDir})

	assert.Equal(t, 1, code)
	assert.NoDirExists(t, destDir, "failed runs write nothing")
}

func TestRunAllowEmptyWritesNoDataReport(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	destDir := filepath.Join(t.TempDir(), "docs")

	code := run([]string{"-in", t.TempDir(), "-out", destDir, "-allow-empty"})

	require.Equal(t, 0, code)
	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	body, err := os.ReadFile(filepath.Join(destDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Overall support rate: no data")
}

func TestRunRequireDataFailsOnEmptyDataset(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	destDir := filepath.Join(t.TempDir(), "docs")

	code := run([]string{"-in", t.TempDir(), "-out", destDir, "-allow-empty", "-require-data"})

	assert.Equal(t, 1, code)
	assert.NoDirExists(t, destDir)
}

func TestRunJSONFormat(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	sourceDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "wave.csv"),
		[]byte(surveyHeader+"\nr1,18-29,Male,White,Bachelors,Middle,1\n"), 0644))

	code := run([]string{"-in", sourceDir, "-out", destDir, "-format", "json"})

	require.Equal(t, 0, code)
	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))
}

func TestRunMalformedRecordFails(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	sourceDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "wave.csv"),
		[]byte(surveyHeader+"\nr1,18-29,Unknown,White,Bachelors,Middle,1\n"), 0644))

	code := run([]string{"-in", sourceDir, "-out", destDir})

	assert.Equal(t, 1, code)
	assert.NoDirExists(t, destDir)
}

func TestRunVersionFlag(t *testing.T) {
	code := run([]string{"-version"})
	assert.Equal(t, 0, code)
}
