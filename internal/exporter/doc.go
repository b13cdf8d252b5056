// Package exporter implements the reporting stage of the survey pipeline.
//
// The Reporter renders a SupportSummary into a timestamped report artifact
// in the destination directory. Output is deterministic: two runs over
// identical data produce byte-identical reports apart from the embedded
// timestamp and run identifier. A report file is written exactly once and
// never overwritten.
package exporter
