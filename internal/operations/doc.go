// Package operations provides the pipeline runner that composes the three
// ETL stages of a survey reporting run: load, aggregate, report.
//
// The pipeline is a strict linear chain, not a DAG: steps execute in
// declaration order, each consuming the state the previous step produced,
// and the first failure short-circuits the run. Cancellation is honored
// between steps only, so a step either fully completes or fully fails.
//
// Each run owns a fresh RunState identified by a run ID and timestamp; no
// state survives across runs.
package operations
