// Package services defines shared utilities consumed by the batch pipeline
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp track names, stage names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (transient vs validation vs persistence) uniform across
//     the pipeline.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays consistent.
package services
