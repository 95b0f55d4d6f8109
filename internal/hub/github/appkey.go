package github

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrMalformedKey = errors.New("private key lacks PEM BEGIN/END markers")

	singleLineKeyRe = regexp.MustCompile(`^(-----BEGIN [A-Z0-9 ]+-----)(.*)(-----END [A-Z0-9 ]+-----)$`)
)

// NormalizeAppPrivateKey turns a stored PEM private key that may be quoted,
// escaped, or collapsed onto one line into a parseable PEM string. The
// operation is idempotent: a normalized key passes through unchanged.
func NormalizeAppPrivateKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)

	for len(key) >= 2 &&
		((key[0] == '"' && key[len(key)-1] == '"') || (key[0] == '\'' && key[len(key)-1] == '\'')) {
		key = strings.TrimSpace(key[1 : len(key)-1])
	}

	// literal escape sequences from env vars / JSON config
	key = strings.ReplaceAll(key, `\r\n`, "\n")
	key = strings.ReplaceAll(key, `\n`, "\n")
	key = strings.ReplaceAll(key, "\r\n", "\n")
	key = strings.ReplaceAll(key, "\r", "\n")

	if !strings.Contains(key, "-----BEGIN") || !strings.Contains(key, "-----END") {
		return "", ErrMalformedKey
	}

	if !strings.Contains(key, "\n") {
		m := singleLineKeyRe.FindStringSubmatch(key)
		if m == nil {
			return "", ErrMalformedKey
		}
		body := strings.Join(strings.Fields(m[2]), "")
		key = m[1] + "\n" + body + "\n" + m[3]
	}

	if !strings.HasSuffix(key, "\n") {
		key += "\n"
	}
	return key, nil
}
