package dataprocessing

import (
	"context"
	"log/slog"

	"surveycli/internal/errors"
	"surveycli/internal/files"
	"surveycli/pkg/contracts/domain"
)

// LoaderConfig holds run-policy options for the loader.
type LoaderConfig struct {
	// AllowEmptySource returns an empty dataset instead of a NoInputFiles
	// error when the source directory contains zero matching files.
	AllowEmptySource bool
}

// Loader discovers survey input files in a source directory and
// concatenates their parsed records into a single SurveyDataset.
type Loader struct {
	logger    *slog.Logger
	parser    *Parser
	discovery *files.Discovery
	config    LoaderConfig
}

// NewLoader creates a loader with the given policy.
func NewLoader(logger *slog.Logger, config LoaderConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		parser:    NewParser(logger),
		discovery: files.NewDiscovery(""),
		config:    config,
	}
}

// Load reads every survey input file under sourceDir into one dataset, in
// discovery order. The source files are never modified.
func (l *Loader) Load(ctx context.Context, sourceDir string) (*domain.SurveyDataset, error) {
	exists, err := files.DirExists(sourceDir)
	if err != nil {
		return nil, errors.NewSourceNotFound(sourceDir, err)
	}
	if !exists {
		return nil, errors.NewSourceNotFound(sourceDir, nil)
	}

	inputs, err := l.discovery.FindSurveyFiles(sourceDir)
	if err != nil {
		return nil, errors.NewSourceNotFound(sourceDir, err)
	}

	if len(inputs) == 0 {
		if l.config.AllowEmptySource {
			l.logger.WarnContext(ctx, "no survey input files found, continuing with empty dataset",
				slog.String("source_dir", sourceDir))
			return &domain.SurveyDataset{}, nil
		}
		return nil, errors.NewNoInputFiles(sourceDir)
	}

	dataset := &domain.SurveyDataset{FileCount: len(inputs)}
	for _, input := range inputs {
		l.logger.InfoContext(ctx, "reading survey file", slog.String("file", input.Name))

		records, err := l.parser.ParseFile(input.Path)
		if err != nil {
			return nil, err
		}
		dataset.Records = append(dataset.Records, records...)

		l.logger.InfoContext(ctx, "parsed survey file",
			slog.String("file", input.Name),
			slog.Int("rows", len(records)))
	}

	if dups := dataset.DuplicateRespondentIDs(); len(dups) > 0 {
		l.logger.WarnContext(ctx, "duplicate respondent IDs in dataset",
			slog.Int("duplicate_count", len(dups)),
			slog.Any("sample", sample(dups, 5)))
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("rows", dataset.Len()),
		slog.Int("files", dataset.FileCount))

	return dataset, nil
}

// sample returns at most n leading elements of ids.
func sample(ids []string, n int) []string {
	if len(ids) <= n {
		return ids
	}
	return ids[:n]
}
