// Package app assembles the survey report pipeline from configuration.
//
// It is the composition root: it constructs the loader, aggregator, and
// reporter stages, wires them into a Pipeline, and owns run identity
// (run ID, start time) for each invocation. Everything below this
// package is free of assembly concerns.
package app
