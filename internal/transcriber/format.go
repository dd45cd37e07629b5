package transcriber

import (
	"fmt"
	"strings"
)

// formatSegments renders segments as `[hh:mm:ss - hh:mm:ss] text` lines,
// shifting every timestamp by offsetSec. Segment order is preserved.
func formatSegments(segments []Segment, offsetSec float64) string {
	var lines []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s - %s] %s",
			formatTimestamp(offsetSec+seg.Start),
			formatTimestamp(offsetSec+seg.End),
			text,
		))
	}
	return strings.Join(lines, "\n")
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
