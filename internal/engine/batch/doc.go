// Package batch walks a slice in fixed-size batches with progress
// reporting and cancellation checks between batches.
//
// The recommendation ranker uses it to evaluate its bounded candidate set
// so long catalogs emit progress and can be abandoned mid-way.
package batch
