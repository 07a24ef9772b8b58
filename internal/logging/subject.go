package logging

import "strings"

// FormatSubject builds the target/stage subject string used in console output.
func FormatSubject(target, stage string) string {
	target = strings.TrimSpace(target)
	stage = strings.TrimSpace(stage)
	parts := make([]string, 0, 2)
	if target != "" {
		parts = append(parts, "Target "+target)
	}
	if stage != "" {
		parts = append(parts, "("+stage+")")
	}
	return strings.Join(parts, " ")
}
