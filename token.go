// token.go: Raw token classification for Hermes
//
// Decides, for a single argv token, whether it is a long option, a short
// option cluster, the "--" terminator or a plain positional. Both parsers
// and the combined extractor route every token through this file so the
// negative-number rule is applied in exactly one place.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import "strings"

// tokenClass is the classification of a single argv token.
type tokenClass int

const (
	tokenPositional tokenClass = iota
	tokenLongOption
	tokenShortCluster
	tokenTerminator
)

// classifyToken classifies a raw argv token.
//
// Rules, in order:
//   - exactly "--" is the terminator
//   - "--xxx" is a long option (possibly carrying "=value")
//   - "-x"/"-xyz" is a short cluster, unless the token is a negative
//     number, which is always positional
//   - everything else is positional
func classifyToken(token string) tokenClass {
	if token == "--" {
		return tokenTerminator
	}
	if len(token) >= 3 && token[0] == '-' && token[1] == '-' {
		return tokenLongOption
	}
	if len(token) > 1 && token[0] == '-' {
		if isNegativeNumber(token) {
			return tokenPositional
		}
		return tokenShortCluster
	}
	return tokenPositional
}

// isNegativeNumber reports whether token is "-" immediately followed by a
// decimal digit. Such tokens are always positional so commands can accept
// negative numeric arguments without quoting tricks.
func isNegativeNumber(token string) bool {
	return len(token) >= 2 && token[0] == '-' && token[1] >= '0' && token[1] <= '9'
}

// isOptionToken reports whether token would be consumed by the option
// scanner: long option or short cluster, never a negative number.
func isOptionToken(token string) bool {
	switch classifyToken(token) {
	case tokenLongOption, tokenShortCluster:
		return true
	}
	return false
}

// splitLongOption splits a "--name" or "--name=value" token into its name
// and embedded value. The split happens at the first '=' so values may
// themselves contain '='.
func splitLongOption(token string) (name, value string, hasValue bool) {
	body := token[2:]
	if idx := strings.IndexByte(body, '='); idx >= 0 {
		return body[:idx], body[idx+1:], true
	}
	return body, "", false
}
