package params

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

const (
	// DefaultMimeType is sent for file parameters without an explicit type.
	DefaultMimeType = "application/octet-stream"

	// DefaultBufferSize is the read buffer used when streaming file content.
	DefaultBufferSize = 8 << 20
)

// FileParam is a parameter whose value is the content of a file. The content
// is streamed when the parameter is written as a multipart part and is never
// part of the signature base string.
type FileParam struct {
	field
	path       string
	mimeType   string
	bufferSize int
}

// FileOption configures a FileParam.
type FileOption func(*FileParam)

// WithMimeType sets the Content-Type sent for the file.
func WithMimeType(mimeType string) FileOption {
	return func(f *FileParam) {
		f.mimeType = mimeType
	}
}

// WithBufferSize sets the size of the buffer used to stream the file.
// Non-positive sizes select DefaultBufferSize.
func WithBufferSize(size int) FileOption {
	return func(f *FileParam) {
		f.bufferSize = size
	}
}

// NewFileParam creates a parameter streaming the file at path.
func NewFileParam(key, path string, opts ...FileOption) *FileParam {
	f := &FileParam{
		field: field{key: key},
		path:  path,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.bufferSize <= 0 {
		f.bufferSize = DefaultBufferSize
	}
	return f
}

// Path returns the source path as given by the caller.
func (f *FileParam) Path() string {
	return f.path
}

// Value returns the file URI of the source. File content is only available
// through EncodeTo.
func (f *FileParam) Value() string {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		abs = f.path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// FileName returns the name sent in the filename property.
func (f *FileParam) FileName() string {
	return filepath.Base(f.path)
}

// MimeType returns the content type, defaulting to DefaultMimeType.
func (f *FileParam) MimeType() string {
	if f.mimeType == "" {
		f.mimeType = DefaultMimeType
	}
	return f.mimeType
}

// SetMimeType overrides the content type.
func (f *FileParam) SetMimeType(mimeType string) {
	f.mimeType = mimeType
}

// UsedInBaseString is always false: file content is never signed.
func (f *FileParam) UsedInBaseString() bool {
	return false
}

// EncodeTo implements Parameter.
func (f *FileParam) EncodeTo(enc Encoding, w io.Writer) (int64, error) {
	return writeParameter(f, enc, w)
}

func (f *FileParam) open() (io.ReadCloser, error) {
	if f.path == "" {
		return nil, fmt.Errorf("%w: empty path for %q", ErrSourceUnreadable, f.key)
	}
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnreadable, f.path)
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	return file, nil
}

// stream copies src into s with a bounded buffer, keeping read failures
// apart from write failures.
func (f *FileParam) stream(s *sink, src io.Reader) error {
	buf := make([]byte, f.bufferSize)
	for {
		nr, readErr := src.Read(buf)
		if nr > 0 {
			if _, err := s.Write(buf[:nr]); err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, f.path, readErr)
		}
	}
}
