package runner

import (
	"strings"

	"minoj/internal/judge/catalog"
)

// outputsMatch checks produced output against the expected answer under the
// problem's compare mode.
func outputsMatch(mode catalog.CompareMode, got, want string) bool {
	if mode == catalog.CompareStrict {
		return got == want
	}
	return linesEqual(trimmedLines(got), trimmedLines(want))
}

// trimmedLines trims the whole text, splits on newline, and trims each line.
// Leading/trailing whitespace per line and around the whole output is
// insignificant in standard mode.
func trimmedLines(s string) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
