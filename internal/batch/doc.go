// Package batch drives a full conversion run: it discovers eligible audio
// files, fans each one out to a bounded worker pool for the tag-read ->
// normalize -> composite -> emit -> publish pipeline, and aggregates the
// per-track results into a run summary.
//
// One batch holds an exclusive lock on its output directory for the run's
// duration. Worker failures never abort siblings; each track's outcome lands
// in its own result slot.
package batch
