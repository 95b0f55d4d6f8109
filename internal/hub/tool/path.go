package tool

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidPath = errors.New("invalid path")

// SanitizePath rejects traversal attempts before a client-supplied string is
// used as a storage or repository path. One level of percent-decoding is
// applied first so encoded dots cannot slip through the textual filter.
// Safe inputs come back unchanged apart from stripped leading slashes.
func SanitizePath(p string) (string, error) {
	if p == "" {
		return "", ErrInvalidPath
	}

	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}

	if strings.Contains(p, "..") {
		return "", ErrInvalidPath
	}

	cleaned := strings.TrimLeft(p, "/")
	if cleaned == "" || strings.Contains(cleaned, "\x00") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
