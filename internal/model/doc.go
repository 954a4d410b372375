// Package model contains the shared interfaces and data structures.
//
// # Criteria for adding a type to this package
//
// This package should contain two types:
//
// 1. important interfaces that are shared by several packages
// within the codebase, with the objective of separating unrelated
// pieces of code and making unit testing easier;
//
// 2. important pieces of data that are shared across different
// packages (e.g., the representation of a raw result record).
//
// In general, this package should not contain logic, unless
// this logic is strictly related to data structures and we
// cannot implement this logic elsewhere.
//
// # Content of this package
//
// The following list summarizes the categories of types that
// currently belong here and names the files in which they are implemented:
//
// - logger.go: generic definition of an apex/log compatible logger,
// used in several places across the codebase;
//
// - result.go: the raw result record returned by the Experiment
// Factory results API and the names of its well-known fields;
//
// - rundata.go: the tagged union representing the `data` field of
// a result record, resolved once at ingestion time.
package model
