package utils

import "time"

// NowRFC3339 is the timestamp format used by resource dates.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NormalizeDate accepts RFC3339 or a bare YYYY-MM-DD and returns RFC3339.
// Unparseable input is returned unchanged.
func NormalizeDate(s string) string {
	if s == "" {
		return s
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return s
}
