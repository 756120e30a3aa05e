// Package text provides string helpers for CLI help output.
package text

import "strings"

// Dedent removes the common leading whitespace
// from every non-blank line of s,
// and trims surrounding blank lines.
// Help text can be written as an indented raw string literal.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")

	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	for i, line := range lines {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
