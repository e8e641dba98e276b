// Package inputval validates user-supplied input at the HTTP boundary.
package inputval

import "strings"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// IsValidEmail reports whether s is a plausible email address. It accepts
// dot-atom local parts and domains (single-label domains included, which is
// useful for dev/test environments) and rejects display-name forms,
// whitespace, and misplaced dots.
func IsValidEmail(s string) bool {
	if strings.ContainsAny(s, " \t\r\n<>") {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, domain := s[:at], s[at+1:]
	return isDotAtom(local) && isDotAtom(domain)
}

// isDotAtom checks a run of atoms separated by single dots, with no leading
// or trailing dot.
func isDotAtom(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAtomChar(s[i]) {
			return false
		}
	}
	return true
}

func isAtomChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '-', c == '_', c == '+', c == '%', c == '\'':
		return true
	}
	return false
}

// IsValidPassword reports whether the password meets the minimum length
// after trimming surrounding whitespace.
func IsValidPassword(s string) bool {
	return len(strings.TrimSpace(s)) >= MinPasswordLength
}

// IsValidName reports whether a display name is non-blank.
func IsValidName(s string) bool {
	return strings.TrimSpace(s) != ""
}
