package auth

import (
	"net/url"
	"strings"
)

// RootDestination is where users land when no valid destination was requested.
const RootDestination = "/"

// Destination is an in-application path (with optional query) to return to after sign-in.
// Only values produced by ParseDestination are safe to redirect to.
type Destination struct {
	path string
}

// ParseDestination accepts only same-origin relative paths. Absolute URLs,
// protocol-relative "//host" values and backslash variants resolve to the root.
func ParseDestination(raw string) Destination {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return Destination{path: RootDestination}
	}
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") || strings.ContainsAny(raw, "\r\n") {
		return Destination{path: RootDestination}
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || u.User != nil || !strings.HasPrefix(u.Path, "/") {
		return Destination{path: RootDestination}
	}
	return Destination{path: raw}
}

// String returns the path and query to redirect to.
func (d Destination) String() string {
	if d.path == "" {
		return RootDestination
	}
	return d.path
}

// IsRoot reports whether the destination's path is the application root. The
// query does not count: "/?tab=stock" is root.
func (d Destination) IsRoot() bool {
	path, _, _ := strings.Cut(d.String(), "?")
	return path == RootDestination
}

// LoginURL builds the sign-in URL carrying this destination as callbackUrl.
// The parameter is omitted when the path is root, whatever the query.
func (d Destination) LoginURL(loginPath string) string {
	if d.IsRoot() {
		return loginPath
	}
	q := url.Values{}
	q.Set("callbackUrl", d.String())
	return loginPath + "?" + q.Encode()
}
