package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument marks a malformed path or value. Callers can map it to
// a client error instead of a server failure.
var ErrInvalidArgument = errors.New("invalid argument")

// CleanPath validates a slash-joined document path and returns it without
// leading or trailing slashes. Every segment must be non-empty.
func CleanPath(p string) (string, error) {
	p = strings.Trim(p, "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			return "", fmt.Errorf("%w: path %q has an empty segment", ErrInvalidArgument, p)
		}
	}
	return p, nil
}

// ancestors returns every proper prefix path of p, nearest last:
// ancestors("a/b/c") = ["a", "a/b"].
func ancestors(p string) []string {
	var out []string
	for i, r := range p {
		if r == '/' {
			out = append(out, p[:i])
		}
	}
	return out
}

// overlaps reports whether a change at path a affects the subtree rooted at
// path b: equal paths, a below b, or a above b.
func overlaps(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}
