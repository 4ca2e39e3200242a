package params

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/brizzai/oauth-params/internal/encoder"
)

const (
	querySeparator = "?"
	paramSeparator = "&"
	pairSeparator  = "="

	fragmentSeparator = "#"
)

// List is an ordered collection of parameters. Insertion order is kept for
// the URL and multipart encodings; the base string is built from a sorted
// copy.
type List struct {
	params              []Parameter
	chunkingRecommended bool
	boundary            *Boundary
}

// ListOption configures a List.
type ListOption func(*List)

// WithBoundary sets the multipart boundary used by the list.
func WithBoundary(b *Boundary) ListOption {
	return func(l *List) {
		if b != nil {
			l.boundary = b
		}
	}
}

// NewList creates an empty list using DefaultBoundary unless another
// boundary is supplied.
func NewList(opts ...ListOption) *List {
	l := &List{boundary: DefaultBoundary}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// NewListFromMap creates a list holding one ordinary parameter per entry,
// ordered by key.
func NewListFromMap(m map[string]string, opts ...ListOption) *List {
	l := NewList(opts...)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		l.AddPair(k, m[k])
	}
	return l
}

// Add appends p. Nil parameters are ignored. Adding a file parameter makes
// the list recommend chunked transfer.
func (l *List) Add(p Parameter) {
	switch v := p.(type) {
	case nil:
		return
	case *Param:
		if v == nil {
			return
		}
	case *FileParam:
		if v == nil {
			return
		}
		l.chunkingRecommended = true
	}
	l.params = append(l.params, p)
}

// AddPair appends an ordinary parameter.
func (l *List) AddPair(key, value string) {
	l.Add(NewParam(key, value))
}

// AddAll appends every parameter of other, preserving its order.
func (l *List) AddAll(other *List) {
	if other == nil {
		return
	}
	for _, p := range other.params {
		l.Add(p)
	}
}

// AddQueryString appends the pairs of a percent-encoded query string. A pair
// without '=' gets an empty value, and a segment that cannot be decoded is
// kept as written.
func (l *List) AddQueryString(raw string) {
	raw = strings.TrimPrefix(raw, querySeparator)
	if raw == "" {
		return
	}
	for _, pair := range strings.Split(raw, paramSeparator) {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, pairSeparator)
		l.AddPair(decodeLenient(key), decodeLenient(value))
	}
}

func decodeLenient(s string) string {
	decoded, err := encoder.Decode(s)
	if err != nil {
		return s
	}
	return decoded
}

// Len returns the number of parameters.
func (l *List) Len() int {
	return len(l.params)
}

// Params returns a copy of the parameters in insertion order.
func (l *List) Params() []Parameter {
	return slices.Clone(l.params)
}

// Contains reports whether the list holds a parameter equal to p.
func (l *List) Contains(p Parameter) bool {
	return slices.ContainsFunc(l.params, func(q Parameter) bool {
		return Equal(p, q)
	})
}

// ChunkingRecommended reports whether a file parameter has been added, in
// which case the encoded size is not known in advance.
func (l *List) ChunkingRecommended() bool {
	return l.chunkingRecommended
}

// Boundary returns the multipart boundary token.
func (l *List) Boundary() string {
	return l.boundary.String()
}

// ContentType returns the multipart/form-data media type for this list.
func (l *List) ContentType() string {
	return "multipart/form-data; boundary=" + l.Boundary()
}

// Sort returns a new list ordered by key, then value. The receiver is not
// modified.
func (l *List) Sort() *List {
	sorted := &List{
		params:              slices.Clone(l.params),
		chunkingRecommended: l.chunkingRecommended,
		boundary:            l.boundary,
	}
	slices.SortStableFunc(sorted.params, Compare)
	return sorted
}

// AppendToURL appends the URL encoding of the list to rawURL, using '?' when
// rawURL has no query yet and '&' otherwise. A fragment stays at the end.
func (l *List) AppendToURL(rawURL string) (string, error) {
	query, err := l.EncodeToString(EncodingURL)
	if err != nil {
		return "", err
	}
	if query == "" {
		return rawURL, nil
	}
	base, fragment, hasFragment := strings.Cut(rawURL, fragmentSeparator)
	if strings.Contains(base, querySeparator) {
		base += paramSeparator + query
	} else {
		base += querySeparator + query
	}
	if hasFragment {
		return base + fragmentSeparator + fragment, nil
	}
	return base, nil
}

// EncodeToString renders the list in enc.
func (l *List) EncodeToString(enc Encoding) (string, error) {
	var buf bytes.Buffer
	if _, err := l.EncodeTo(enc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EncodeTo renders the list in enc and returns the number of bytes written.
//
// URL and raw encodings join the pairs with '&' in insertion order. The
// OAuth base encoding joins the pairs eligible for the base string, sorted
// by encoded key and value, and percent-encodes the result once more as a
// single component. The
// multipart encoding writes every part between boundary delimiters,
// followed by the closing delimiter. An empty list writes nothing except in
// the OAuth base encoding, which fails with ErrEmptyBaseString.
func (l *List) EncodeTo(enc Encoding, w io.Writer) (int64, error) {
	s := newSink(w)
	var err error
	switch enc {
	case EncodingRaw, EncodingURL:
		err = writeJoined(s, l.params)
	case EncodingOAuthBase:
		err = l.writeBaseString(s)
	case EncodingMultipart:
		err = l.writeMultipart(s)
	default:
		err = fmt.Errorf("%w: %v", ErrUnsupportedEncoding, enc)
	}
	return s.n, err
}

func writeJoined(w io.Writer, params []Parameter) error {
	for i, p := range params {
		if i > 0 {
			if _, err := io.WriteString(w, paramSeparator); err != nil {
				return err
			}
		}
		if _, err := p.EncodeTo(EncodingURL, w); err != nil {
			return err
		}
	}
	return nil
}

func (l *List) writeBaseString(s *sink) error {
	eligible := make([]Parameter, 0, len(l.params))
	for _, p := range l.params {
		if p.UsedInBaseString() {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return ErrEmptyBaseString
	}
	slices.SortStableFunc(eligible, compareEncoded)
	var joined strings.Builder
	if err := writeJoined(&joined, eligible); err != nil {
		return err
	}
	_, err := s.WriteString(encoder.Encode(joined.String()))
	return err
}

// compareEncoded orders parameters by encoded key, then encoded value, as
// RFC 5849 section 3.4.1.3.2 requires for the base string.
func compareEncoded(a, b Parameter) int {
	if c := strings.Compare(encoder.Encode(a.Key()), encoder.Encode(b.Key())); c != 0 {
		return c
	}
	return strings.Compare(encoder.Encode(a.Value()), encoder.Encode(b.Value()))
}

func (l *List) writeMultipart(s *sink) error {
	if len(l.params) == 0 {
		return nil
	}
	boundary := l.Boundary()
	separator := doubleDash + boundary + newLine
	if _, err := s.WriteString(separator); err != nil {
		return err
	}
	for _, p := range l.params {
		if _, err := p.EncodeTo(EncodingMultipart, s); err != nil {
			return err
		}
		if _, err := s.WriteString(separator); err != nil {
			return err
		}
	}
	_, err := s.WriteString(newLine + doubleDash + boundary + doubleDash + newLine)
	return err
}
