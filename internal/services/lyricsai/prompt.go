package lyricsai

import (
	"fmt"
	"strings"
)

const systemInstruction = "You are a lyric formatting assistant. Follow the rules exactly and reply with the processed lyrics only."

// userInstruction renders the cleaning rules around the raw lyric text.
// softBreakLimit is the line length past which the model should insert a
// caret so the renderer can wrap the line at a natural pause.
func userInstruction(rawText string, softBreakLimit int) string {
	var b strings.Builder
	b.WriteString("Clean up the following embedded lyric text so each line can be shown on a presentation slide.\n")
	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "1. If the text has no real lyric lines (instrumental, pure music, or credits only), reply with exactly %s and nothing else.\n", PureMusicSentinel)
	b.WriteString("2. Remove metadata lines such as composer, lyricist, arranger, producer, and release credits.\n")
	b.WriteString("3. Remove translated duplicates of lyric lines; keep only the original language.\n")
	b.WriteString("4. Keep every remaining lyric line on its own line, in the original order. Never merge, reorder, or invent lines.\n")
	b.WriteString("5. Keep any [mm:ss.xx] timestamps exactly as they appear.\n")
	if softBreakLimit > 0 {
		fmt.Fprintf(&b, "6. If a line is longer than %d characters, insert a single ^ where a natural pause splits it.\n", softBreakLimit)
	}
	b.WriteString("Reply with the processed lyrics only, without commentary or code fences.\n")
	b.WriteString("\nLyrics:\n")
	b.WriteString(rawText)
	return b.String()
}
