// Package dataprocessing implements the ingestion and aggregation stages of
// the survey reporting pipeline.
//
// The Parser turns one delimited survey file (CSV or Excel) into validated
// SurveyRecord values, rejecting any file whose header deviates from the
// required column set and any row whose categorical values fall outside the
// declared finite sets.
//
// The Loader discovers all input files in a source directory and
// concatenates their records into a single SurveyDataset.
//
// The Aggregator reduces a SurveyDataset to a SupportSummary: the overall
// support rate plus one breakdown per demographic dimension. The result is a
// pure function of the record multiset; row order never affects it.
package dataprocessing
