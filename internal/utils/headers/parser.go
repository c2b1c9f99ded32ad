// Package headers parses "Key: Value" strings from repeated -H flags into
// the extra-header map sent with every page fetch.
package headers

import (
	"strings"
)

// ParseHeaders converts header strings ("Key: Value") into a map. Entries
// without a colon are dropped; later duplicates win.
func ParseHeaders(h []string) map[string]string {
	if len(h) == 0 {
		return nil
	}
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		parts := strings.SplitN(hdr, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		m[key] = strings.TrimSpace(parts[1])
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
