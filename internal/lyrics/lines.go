package lyrics

import (
	"regexp"
	"strings"
)

// timestampPattern matches LRC-style play position prefixes such as
// [00:12.34], [3:05], or [120:00.5]. Minutes run to three digits because
// long mixes exceed an hour.
var timestampPattern = regexp.MustCompile(`\[\d{1,3}:\d{2}(?:\.\d{1,3})?\]`)

// ParseLines strips LRC timestamps from text and returns the remaining
// non-empty lines in their original order.
func ParseLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = timestampPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
