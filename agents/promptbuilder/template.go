/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// expand copies template, replacing each {{name}} with resolve(name).
func expand(template string, resolve func(name string) (string, error)) (string, error) {
	var out strings.Builder
	rest := template
	for {
		before, after, found := strings.Cut(rest, "{{")
		out.WriteString(before)
		if !found {
			return out.String(), nil
		}
		inner, tail, closed := strings.Cut(after, "}}")
		if !closed {
			return "", errors.New("unclosed binding: missing '}}'")
		}
		name := strings.TrimSpace(inner)
		if !identifier(name) {
			return "", fmt.Errorf("invalid binding identifier %q", name)
		}
		v, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(v)
		rest = tail
	}
}

// identifier reports whether s is a letter followed by letters, digits or
// underscores.
func identifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}
