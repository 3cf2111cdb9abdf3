// Package lyriccache persists cleaned lyric text keyed by the raw embedded
// text and the model that cleaned it.
//
// Re-running a batch over a library repeatedly hits the cleaning API with
// identical inputs; the cache makes those runs free. Keys are salted with
// the model identifier so switching models never reuses stale cleanings.
package lyriccache
