// Package contracts holds the cross-cutting identifiers shared between the
// pipeline internals and anything that consumes its artifacts.
package contracts

import "fmt"

const (
	// Version is the current release of the survey report toolchain.
	Version = "1.0.0"

	// AppName is the canonical application name used in logs and reports.
	AppName = "surveyreport"

	// FormatSupportSummary identifies the JSON report envelope layout.
	// Bump the suffix when the envelope shape changes incompatibly.
	FormatSupportSummary = "support_summary_v1"
)

// VersionInfo describes a build of the toolchain.
type VersionInfo struct {
	Version string `json:"version"`
	AppName string `json:"app_name"`
}

// GetVersionInfo returns the build identity of the running binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version: Version,
		AppName: AppName,
	}
}

// UserAgent returns the identification string for outbound diagnostics.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", AppName, Version)
}
