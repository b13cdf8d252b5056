// Package files provides file system discovery utilities for the survey
// reporting pipeline.
//
// Discovery locates survey input files (CSV and Excel) in a source
// directory, ignoring anything else, and returns them in a deterministic
// order so that dataset concatenation is stable across runs.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	inputs, err := discovery.FindSurveyFiles("data/raw")
package files
