package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"surveycli/internal/errors"
	"surveycli/pkg/contracts"
	"surveycli/pkg/contracts/domain"
)

const reportTitle = "Public Opinion Data Summary Report"

// ReporterConfig holds output options for the reporter.
type ReporterConfig struct {
	// Format selects the artifact encoding: "text" (default) or "json".
	Format string
}

// Reporter writes a SupportSummary to a uniquely named report artifact.
type Reporter struct {
	logger *slog.Logger
	config ReporterConfig
}

// NewReporter creates a reporter with the given output options.
func NewReporter(logger *slog.Logger, config ReporterConfig) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Format == "" {
		config.Format = "text"
	}
	return &Reporter{logger: logger, config: config}
}

// Write renders the summary and writes it to destDir, returning the path
// written. The destination directory is created if missing. The file name
// embeds the sortable run timestamp plus the run ID so that overlapping
// runs within one second cannot collide, and the file is opened with
// O_EXCL so an existing report is never overwritten.
func (r *Reporter) Write(ctx context.Context, destDir string, summary *domain.SupportSummary, runAt time.Time, runID string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", errors.NewDestinationUnwritable(destDir, err)
	}

	path := filepath.Join(destDir, r.fileName(runAt, runID))

	var body []byte
	var err error
	switch r.config.Format {
	case "json":
		body, err = r.renderJSON(summary, runAt, runID)
	default:
		body = []byte(r.renderText(summary, runAt))
	}
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", errors.NewDestinationUnwritable(path, err)
	}

	if _, err := file.Write(body); err != nil {
		file.Close()
		os.Remove(path)
		return "", errors.NewDestinationUnwritable(path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", errors.NewDestinationUnwritable(path, err)
	}

	r.logger.InfoContext(ctx, "report written",
		slog.String("path", path),
		slog.String("format", r.config.Format),
		slog.Int("respondents", summary.Respondents))

	return path, nil
}

// fileName builds the unique report file name for one run.
func (r *Reporter) fileName(runAt time.Time, runID string) string {
	ext := "txt"
	if r.config.Format == "json" {
		ext = "json"
	}

	suffix := runID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("report_%s_%s.%s", runAt.Format("2006-01-02_15-04-05"), suffix, ext)
}

// renderText renders the summary in the plain-text report layout: overall
// rate first, then one block per dimension with each observed category's
// rate and group size. Dimensions appear in declaration order and
// categories in lexical order, so output is deterministic.
func (r *Reporter) renderText(summary *domain.SupportSummary, runAt time.Time) string {
	var b strings.Builder

	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", 36) + "\n\n")
	b.WriteString("Generated: " + runAt.Format(time.RFC3339) + "\n\n")

	if rate, defined := summary.OverallRate(); defined {
		b.WriteString("Overall support rate: " + formatRate(rate) + "\n\n")
	} else {
		b.WriteString("Overall support rate: " + undefinedRateMarker + "\n\n")
	}

	for _, breakdown := range summary.Dimensions {
		b.WriteString(fmt.Sprintf("Support by %s:\n", breakdown.Dimension))
		for _, group := range breakdown.Groups {
			b.WriteString(formatGroupLine(group.Category, group.Respondents, group.SupportRate) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderJSON renders the summary as an indented JSON envelope with run
// metadata, for consumers that prefer structured reports.
func (r *Reporter) renderJSON(summary *domain.SupportSummary, runAt time.Time, runID string) ([]byte, error) {
	envelope := map[string]interface{}{
		"title":        reportTitle,
		"run_id":       runID,
		"generated_at": runAt.Format(time.RFC3339),
		"summary":      summary,
		"format":       contracts.FormatSupportSummary,
	}

	return json.MarshalIndent(envelope, "", "  ")
}
