package params

import (
	"fmt"
	"strings"
)

// Encoding selects the wire representation a parameter or list is written in.
type Encoding int

const (
	// EncodingRaw renders key=value pairs, identical to EncodingURL.
	EncodingRaw Encoding = 1 << iota
	// EncodingURL renders percent-encoded key=value pairs joined with '&'.
	EncodingURL
	// EncodingMultipart renders a multipart/form-data body.
	EncodingMultipart
	// EncodingOAuthBase renders the parameter component of an OAuth 1.0
	// signature base string.
	EncodingOAuthBase
)

func (e Encoding) String() string {
	switch e {
	case EncodingRaw:
		return "raw"
	case EncodingURL:
		return "url"
	case EncodingMultipart:
		return "multipart"
	case EncodingOAuthBase:
		return "base"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding maps the textual name of an encoding, as produced by
// Encoding.String, back to its value.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw":
		return EncodingRaw, nil
	case "url", "query":
		return EncodingURL, nil
	case "multipart", "form-data":
		return EncodingMultipart, nil
	case "base", "oauthbase", "oauth-base":
		return EncodingOAuthBase, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
	}
}

// Disposition is the Content-Disposition type of a multipart body part.
type Disposition string

const (
	DispositionFormData   Disposition = "form-data"
	DispositionAttachment Disposition = "attachment"
	DispositionInline     Disposition = "inline"
)

// Valid reports whether d is one of the known dispositions.
func (d Disposition) Valid() bool {
	switch d {
	case DispositionFormData, DispositionAttachment, DispositionInline:
		return true
	}
	return false
}

const (
	newLine    = "\r\n"
	doubleDash = "--"
)
