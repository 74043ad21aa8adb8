package client

import (
	"path/filepath"
	"strings"
	"time"
)

// StoragePath builds the archive path for an uploaded asset: the name
// is sanitized and prefixed with a second-resolution timestamp so
// repeated uploads of the same file never collide within a second's
// granularity.
func StoragePath(root, name string, now time.Time) string {
	stamped := now.Format("20060102_150405") + "_" + SanitizeFilename(name)
	return filepath.Join(root, stamped)
}

// SanitizeFilename strips path components and reduces the name to a
// safe character set. Anything outside letters, digits, dot, dash and
// underscore becomes an underscore; an empty result falls back to
// "upload".
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}
