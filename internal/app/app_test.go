package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveycli/internal/config"
	"surveycli/internal/errors"
)

const surveyHeader = "respondent_id,age_group,gender,race,education,income,policy_support"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func writeSurveyFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestApplicationRun(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "reports")
	writeSurveyFile(t, srcDir, "wave1.csv", surveyHeader+"\n"+
		"r1,18-29,Male,White,Bachelors,Middle,1\n"+
		"r2,30-44,Female,Asian,Graduate,High,0\n")

	cfg := config.Default()
	app := NewApplication(cfg, discardLogger(), nil)

	path, err := app.Run(context.Background(), RunOptions{
		SourceDir: srcDir,
		DestDir:   destDir,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Overall support rate: 0.500")
}

func TestApplicationRunDefaultsFromConfig(t *testing.T) {
	base := t.TempDir()
	srcDir := filepath.Join(base, "raw")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	writeSurveyFile(t, srcDir, "wave1.csv", surveyHeader+"\n"+
		"r1,18-29,Male,White,Bachelors,Middle,1\n")

	cfg := config.Default()
	cfg.Paths.RawDir = srcDir
	cfg.Paths.ReportsDir = filepath.Join(base, "docs")

	app := NewApplication(cfg, discardLogger(), nil)

	path, err := app.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.Contains(t, path, cfg.Paths.ReportsDir)
}

func TestApplicationRunMissingSource(t *testing.T) {
	cfg := config.Default()
	app := NewApplication(cfg, discardLogger(), nil)

	_, err := app.Run(context.Background(), RunOptions{
		SourceDir: filepath.Join(t.TempDir(), "nope"),
		DestDir:   t.TempDir(),
	})
	require.Error(t, err)
	assert.Equal(t, errors.KindSourceNotFound, errors.KindOf(err))
}
