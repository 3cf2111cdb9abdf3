// Package wizard provides the interactive terminal front ends: a guided
// config setup and the ordered deck picker used by merge. Both need a real
// terminal and report an error otherwise so callers can fall back to flags.
package wizard
