package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// emailShape is deliberately loose: something@something.something with no
// whitespace. The remote API does the strict check.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s has the basic shape of an email address.
func IsEmail(s string) bool {
	return emailShape.MatchString(s)
}

// NormalizeEmail trims and lowercases an address so comparisons between
// guest emails are case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsURL reports whether s is an absolute http or https URL with a host.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
