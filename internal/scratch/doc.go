// Package scratch manages per-run working directories under the configured
// scratch root. Each batch stages decks inside its own run-<uuid> directory
// and removes it on exit; CleanStale sweeps directories abandoned by
// interrupted runs.
package scratch
