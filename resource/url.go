package resource

import (
	"fmt"
	"path"
	"strings"
)

// URL identifies a resource by scheme, authority and path. The scheme is
// whatever precedes "://"; a URL without one is a local file path.
type URL struct {
	Scheme string
	// Host is the authority part: host[:port], possibly with a user@ prefix.
	// Empty for file URLs.
	Host string
	// Path is the part after the authority. For file URLs it is the whole
	// path.
	Path string

	raw string
}

// Parse splits a raw URL into scheme, authority and path. A missing scheme
// defaults to "file".
func Parse(raw string) (*URL, error) {
	u := &URL{raw: raw}
	rest := raw
	if i := strings.Index(raw, "://"); i >= 0 {
		u.Scheme = strings.ToLower(raw[:i])
		rest = raw[i+3:]
		if u.Scheme == "" {
			return nil, fmt.Errorf("parse %q: empty scheme", raw)
		}
	} else {
		u.Scheme = "file"
	}
	if u.Scheme == "file" {
		u.Path = rest
		return u, nil
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		u.Host = rest[:i]
		u.Path = rest[i:]
	} else {
		u.Host = rest
	}
	return u, nil
}

// String returns the URL as it was given to Parse.
func (u *URL) String() string { return u.raw }

// Ext returns the lowercased extension of the path, "" when there is none.
func (u *URL) Ext() string {
	return strings.ToLower(path.Ext(u.Path))
}
