// Package pptx persists decks as PresentationML packages.
//
// The writer emits the minimal OOXML part set: content types, package
// relationships, the presentation part, one slide master/layout/theme, one
// slide part per deck slide, shared media parts, and document properties.
// Writes go to a temp file in the target directory and rename into place so
// an existing deck is replaced atomically.
//
// The reader recovers just enough of a generated package to merge decks:
// slide XML verbatim, slide order, slide size, and the media parts each
// slide references.
package pptx
