package util

import (
	"net/url"
	"strings"
)

// StripQuery drops the query string and fragment from a URL, keeping the
// rest untouched. Unparseable input comes back as-is.
func StripQuery(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			return raw[:i]
		}
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// TailSegment returns the portion of a path after the last separator.
// Listing ids ride on the tail of the card's canonical link.
func TailSegment(path, sep string) string {
	if i := strings.LastIndex(path, sep); i >= 0 {
		return path[i+len(sep):]
	}
	return path
}
