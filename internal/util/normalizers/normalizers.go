package normalizers

import (
	"strings"
)

const Indentation = `  `

// LongDesc trims a command's long description.
func LongDesc(s string) string {
	return strings.TrimSpace(s)
}

// Examples trims a command's examples and indents every line, dropping
// blank lines.
func Examples(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, Indentation+trimmed)
	}
	return strings.Join(out, "\n")
}
