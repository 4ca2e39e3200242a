package params

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/brizzai/oauth-params/internal/encoder"
)

// Parameter is a single named request field. The set of implementations is
// closed: *Param for ordinary values and *FileParam for file attachments.
type Parameter interface {
	Key() string
	Value() string
	Disposition() Disposition
	// UsedInBaseString reports whether the parameter takes part in the OAuth
	// signature base string.
	UsedInBaseString() bool
	// EncodeTo renders the parameter in the given encoding and returns the
	// number of bytes written to w.
	EncodeTo(enc Encoding, w io.Writer) (int64, error)

	header() *field
}

// field holds the state shared by every parameter variant.
type field struct {
	key         string
	disposition Disposition
	fixed       bool
}

func (f *field) header() *field { return f }

// Key returns the parameter name.
func (f *field) Key() string {
	return f.key
}

// Disposition returns the multipart disposition, defaulting to form-data.
func (f *field) Disposition() Disposition {
	if f.disposition == "" {
		f.disposition = DispositionFormData
	}
	return f.disposition
}

// SetDisposition changes the multipart disposition. It fails once the
// parameter has been written as a multipart part.
func (f *field) SetDisposition(d Disposition) error {
	if !d.Valid() {
		return fmt.Errorf("invalid disposition %q", d)
	}
	if f.fixed && d != f.Disposition() {
		return ErrDispositionFixed
	}
	f.disposition = d
	return nil
}

// Param is an ordinary key/value parameter.
type Param struct {
	field
	value string
}

// NewParam creates an ordinary parameter.
func NewParam(key, value string) *Param {
	return &Param{field: field{key: key}, value: value}
}

// Value returns the parameter value.
func (p *Param) Value() string {
	return p.value
}

// UsedInBaseString is always true for ordinary parameters.
func (p *Param) UsedInBaseString() bool {
	return true
}

// EncodeTo implements Parameter.
func (p *Param) EncodeTo(enc Encoding, w io.Writer) (int64, error) {
	return writeParameter(p, enc, w)
}

func (p *Param) String() string {
	return p.key + "=" + p.value
}

// writeParameter renders p in enc. The multipart form is
//
//	Content-Disposition: <disposition>; name="<key>"; [properties]\r\n
//	\r\n
//	<value>\r\n
//
// where file parameters contribute the filename and Content-Type properties
// and stream their content as the value.
func writeParameter(p Parameter, enc Encoding, w io.Writer) (n int64, err error) {
	s := newSink(w)
	switch enc {
	case EncodingRaw, EncodingURL, EncodingOAuthBase:
		_, err = s.WriteString(encodePair(p))
		return s.n, err
	case EncodingMultipart:
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, enc)
	}

	var src io.ReadCloser
	file, isFile := p.(*FileParam)
	if isFile {
		if src, err = file.open(); err != nil {
			return 0, err
		}
		defer func() {
			if closeErr := src.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, file.path, closeErr)
			}
		}()
	}
	p.header().fixed = true

	var b strings.Builder
	fmt.Fprintf(&b, "Content-Disposition: %s; ", p.Disposition())
	fmt.Fprintf(&b, "name=\"%s\"; ", encoder.Encode(p.Key()))
	if isFile {
		fmt.Fprintf(&b, "filename=\"%s\"", quoteEscaper.Replace(file.FileName()))
		b.WriteString(newLine)
		fmt.Fprintf(&b, "Content-Type: %s", file.MimeType())
	}
	b.WriteString(newLine)
	b.WriteString(newLine)
	if _, err = s.WriteString(b.String()); err != nil {
		return s.n, err
	}

	if isFile {
		err = file.stream(s, src)
	} else {
		_, err = s.WriteString(p.Value())
	}
	if err != nil {
		return s.n, err
	}
	_, err = s.WriteString(newLine)
	return s.n, err
}

// quoteEscaper makes a value safe inside a quoted header parameter.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"", "\r", "", "\n", "")

func encodePair(p Parameter) string {
	return encoder.Encode(p.Key()) + "=" + encoder.Encode(p.Value())
}

// Compare orders parameters by key, then by value.
func Compare(a, b Parameter) int {
	if c := strings.Compare(a.Key(), b.Key()); c != 0 {
		return c
	}
	return strings.Compare(a.Value(), b.Value())
}

// Equal reports whether a and b have the same key and value. Disposition is
// not considered.
func Equal(a, b Parameter) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key() && a.Value() == b.Value()
}

// Hash returns a hash consistent with Equal.
func Hash(p Parameter) uint64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, p.Key())
	_, _ = h.Write([]byte{0})
	_, _ = io.WriteString(h, p.Value())
	return h.Sum64()
}
