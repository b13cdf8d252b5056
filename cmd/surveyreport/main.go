package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"surveycli/internal/app"
	"surveycli/internal/config"
	"surveycli/internal/errors"
	"surveycli/internal/infrastructure"
	"surveycli/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one pipeline run and returns the process exit code.
func run(args []string) int {
	flags := flag.NewFlagSet("surveyreport", flag.ContinueOnError)
	inDir := flags.String("in", "", "source directory with survey files (defaults to configured raw dir)")
	outDir := flags.String("out", "", "destination directory for reports (defaults to configured reports dir)")
	format := flags.String("format", "", "report format: text | json (defaults to configured format)")
	allowEmpty := flags.Bool("allow-empty", false, "treat an empty source directory as an empty dataset instead of failing")
	requireData := flags.Bool("require-data", false, "fail the run if the dataset has zero records")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *showVersion {
		info := contracts.GetVersionInfo()
		fmt.Printf("%s %s\n", info.AppName, info.Version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *format != "" {
		cfg.Pipeline.ReportFormat = *format
	}
	if *allowEmpty {
		cfg.Pipeline.AllowEmptySource = true
	}
	if *requireData {
		cfg.Pipeline.RequireData = true
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		return 1
	}
	defer providers.Shutdown(context.Background())

	application := app.NewApplication(cfg, logger, providers)
	reportPath, err := application.Run(context.Background(), app.RunOptions{
		SourceDir: *inDir,
		DestDir:   *outDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed at stage %q (%s): %v\n",
			errors.StageOf(err), errors.KindOf(err), err)
		return 1
	}

	fmt.Println(reportPath)
	return 0
}
