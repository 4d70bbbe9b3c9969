package platform

import "strings"

// normalize lower-cases and trims a value reported by the host.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
