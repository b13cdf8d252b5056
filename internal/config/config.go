package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/surveycli.log"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	RawDir     string `yaml:"raw_dir" envconfig:"RAW_DIR" default:"data/raw"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"docs"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// PipelineConfig contains run-policy configuration for the ETL pipeline.
type PipelineConfig struct {
	// AllowEmptySource turns a source directory with zero matching files
	// into an empty-dataset run instead of a fatal NoInputFiles error.
	AllowEmptySource bool `yaml:"allow_empty_source" envconfig:"ALLOW_EMPTY_SOURCE" default:"false"`
	// RequireData makes an empty dataset fatal at the aggregation stage.
	// When false the undefined overall rate flows through to the report.
	RequireData bool `yaml:"require_data" envconfig:"REQUIRE_DATA" default:"false"`
	// ReportFormat selects the report artifact encoding: "text" or "json".
	ReportFormat string `yaml:"report_format" envconfig:"REPORT_FORMAT" default:"text"`
}

// TelemetryConfig contains OpenTelemetry tracing configuration.
type TelemetryConfig struct {
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING" default:"false"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"stdout"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from environment variables and, if present, a
// YAML config file. Environment variables take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SURVEY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Paths.RawDir == "" {
		envConfig.Paths.RawDir = fileConfig.Paths.RawDir
	}
	if envConfig.Paths.ReportsDir == "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if envConfig.Paths.LogsDir == "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}
	if envConfig.Pipeline.ReportFormat == "" {
		envConfig.Pipeline.ReportFormat = fileConfig.Pipeline.ReportFormat
	}

	return envConfig
}

// GetRawDir returns the resolved source directory path.
func (c *Config) GetRawDir() string {
	return resolvePath(c.Paths.RawDir)
}

// GetReportsDir returns the resolved destination directory path.
func (c *Config) GetReportsDir() string {
	return resolvePath(c.Paths.ReportsDir)
}

// GetLogsDir returns the resolved logs directory path.
func (c *Config) GetLogsDir() string {
	return resolvePath(c.Paths.LogsDir)
}

// GetLogPath returns the path for a named log file under the logs directory.
func (c *Config) GetLogPath(name string) string {
	return filepath.Join(c.GetLogsDir(), name)
}

// resolvePath makes relative paths relative to the working directory.
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(wd, path)
}

// validate validates the configuration.
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	if c.Logging.Format != "" && c.Logging.Format != "json" {
		// JSON is the only supported structured format.
		c.Logging.Format = "json"
	}

	switch c.Pipeline.ReportFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid report format: %s", c.Pipeline.ReportFormat)
	}

	switch c.Telemetry.TraceExporter {
	case "", "stdout", "none":
	default:
		return fmt.Errorf("invalid trace exporter: %s", c.Telemetry.TraceExporter)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("trace sample ratio must be in [0,1]: %f", c.Telemetry.SampleRatio)
	}

	return nil
}

// getConfigFilePath returns the path to the config file, if one exists.
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/surveycli.log",
		},
		Paths: PathsConfig{
			RawDir:     "data/raw",
			ReportsDir: "docs",
			LogsDir:    "logs",
		},
		Pipeline: PipelineConfig{
			AllowEmptySource: false,
			RequireData:      false,
			ReportFormat:     "text",
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			TraceExporter: "stdout",
			SampleRatio:   1.0,
		},
	}
}
