// Package encoder implements the percent-encoding used for OAuth parameters
// (RFC 3986 section 2.3, as required by RFC 5849 section 3.6).
package encoder

import (
	"net/url"
	"strings"
)

// url.QueryEscape already leaves exactly the unreserved set alone; only the
// form-style '+' for spaces differs from RFC 3986.
var rfc3986 = strings.NewReplacer("+", "%20")

// Encode percent-encodes every byte of s outside the unreserved set
// ALPHA / DIGIT / "-" / "." / "_" / "~".
func Encode(s string) string {
	if s == "" {
		return ""
	}
	return rfc3986.Replace(url.QueryEscape(s))
}

// Decode reverses Encode. A literal '+' is decoded as a space, matching
// application/x-www-form-urlencoded input.
func Decode(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return url.QueryUnescape(s)
}
