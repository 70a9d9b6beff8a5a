package github

import (
	"regexp"
	"time"
)

// postFilePattern matches dated Jekyll post filenames: YYYY-MM-DD-<slug>.<ext>.
// The posts directory also contains non-post files (README, assets); those
// are silently excluded, not errors.
var postFilePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)\.(md|markdown)$`)

// IsPostFile reports whether name is a dated post filename. The embedded
// date must be a real, zero-padded calendar date.
func IsPostFile(name string) bool {
	_, ok := PostDate(name)
	return ok
}

// PostDate extracts the date embedded in a post filename.
func PostDate(name string) (time.Time, bool) {
	m := postFilePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
