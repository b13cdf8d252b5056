// Package config provides centralized configuration management for the
// survey reporting pipeline. It handles loading configuration from multiple
// sources, validation, and a type-safe API for accessing configuration
// values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SURVEY_* for namespacing:
//
//	SURVEY_PATHS_RAW_DIR=data/raw
//	SURVEY_PATHS_REPORTS_DIR=docs
//	SURVEY_LOGGING_LEVEL=info
//	SURVEY_PIPELINE_ALLOW_EMPTY_SOURCE=true
//	SURVEY_PIPELINE_REPORT_FORMAT=json
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
