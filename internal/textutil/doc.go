// Package textutil provides text processing helpers for filename
// sanitization.
//
// Deck files are named after track titles, which frequently carry
// characters that are unsafe or awkward on common filesystems. The
// sanitizer maps separator-like characters to dashes and strips the
// rest so a title can be used directly as a file stem.
package textutil
