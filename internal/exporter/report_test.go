package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveycli/internal/errors"
	"surveycli/pkg/contracts/domain"
)

func sampleSummary() *domain.SupportSummary {
	overall := &domain.GroupStat{Category: "overall", Respondents: 4, SupportRate: 0.5}
	return &domain.SupportSummary{
		Overall:     overall,
		Respondents: 4,
		Dimensions: []domain.DimensionBreakdown{
			{
				Dimension: domain.DimensionGender,
				Groups: []domain.GroupStat{
					{Category: "Female", Respondents: 2, SupportRate: 1.0},
					{Category: "Male", Respondents: 2, SupportRate: 0.5},
				},
			},
			{Dimension: domain.DimensionRace},
			{Dimension: domain.DimensionAgeGroup},
			{Dimension: domain.DimensionEducation},
			{Dimension: domain.DimensionIncome},
		},
	}
}

var runAt = time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)

func TestWriteTextReport(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(slog.Default(), ReporterConfig{})

	path, err := reporter.Write(context.Background(), dir, sampleSummary(), runAt, "0f47ac10-58cc")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "report_2026-08-29_10-30-00_0f47ac10.txt"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(body)

	assert.True(t, strings.HasPrefix(text, "Public Opinion Data Summary Report\n"))
	assert.Contains(t, text, "Generated: 2026-08-29T10:30:00Z")
	assert.Contains(t, text, "Overall support rate: 0.500")
	assert.Contains(t, text, "Support by gender:")
	assert.Contains(t, text, "respondents:    2, support_rate: 1.000")
	assert.Contains(t, text, "Support by income:")
}

func TestWriteDeterministicApartFromTimestamp(t *testing.T) {
	reporter := NewReporter(slog.Default(), ReporterConfig{})

	first := reporter.renderText(sampleSummary(), runAt)
	second := reporter.renderText(sampleSummary(), runAt)

	assert.Equal(t, first, second)
}

func TestWriteUndefinedOverallRate(t *testing.T) {
	summary := &domain.SupportSummary{
		Dimensions: []domain.DimensionBreakdown{{Dimension: domain.DimensionGender}},
	}

	reporter := NewReporter(slog.Default(), ReporterConfig{})
	text := reporter.renderText(summary, runAt)

	assert.Contains(t, text, "Overall support rate: no data")
	assert.NotContains(t, text, "0.000", "undefined must not be rendered as zero")
}

func TestWriteNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(slog.Default(), ReporterConfig{})

	first, err := reporter.Write(context.Background(), dir, sampleSummary(), runAt, "aaaabbbb")
	require.NoError(t, err)

	// Same timestamp and run ID would collide; the write must refuse.
	_, err = reporter.Write(context.Background(), dir, sampleSummary(), runAt, "aaaabbbb")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDestinationUnwritable))

	// A different run ID in the same second writes a distinct file.
	second, err := reporter.Write(context.Background(), dir, sampleSummary(), runAt, "ccccdddd")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteCreatesDestinationDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs", "nested")
	reporter := NewReporter(slog.Default(), ReporterConfig{})

	path, err := reporter.Write(context.Background(), dir, sampleSummary(), runAt, "aaaabbbb")

	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteDestinationUnwritable(t *testing.T) {
	base := t.TempDir()
	blocked := filepath.Join(base, "blocked")
	// A regular file where the destination directory should be.
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	reporter := NewReporter(slog.Default(), ReporterConfig{})
	_, err := reporter.Write(context.Background(), filepath.Join(blocked, "docs"), sampleSummary(), runAt, "aaaabbbb")

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDestinationUnwritable))
}

func TestWriteJSONReport(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(slog.Default(), ReporterConfig{Format: "json"})

	path, err := reporter.Write(context.Background(), dir, sampleSummary(), runAt, "aaaabbbbcccc")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))

	body, err := os.ReadFile(path)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "support_summary_v1", envelope["format"])
	assert.Equal(t, "aaaabbbbcccc", envelope["run_id"])
	assert.Equal(t, "2026-08-29T10:30:00Z", envelope["generated_at"])

	summary, ok := envelope["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 4, summary["respondents"])
}

func TestFormatGroupLine(t *testing.T) {
	line := formatGroupLine("Female", 2, 1.0)

	assert.True(t, strings.HasPrefix(line, "  Female"))
	assert.Contains(t, line, "respondents:    2")
	assert.Contains(t, line, "support_rate: 1.000")
	// Category is padded to a fixed width so the block lines up.
	assert.Equal(t, strings.Index(formatGroupLine("60+", 100, 0.25), "respondents:"),
		strings.Index(line, "respondents:"))
}
