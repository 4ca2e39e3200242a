package params

import (
	"errors"
	"fmt"
	"io"
)

// sink counts the bytes accepted by w and tags write failures with
// ErrSinkWriteFailed.
type sink struct {
	w io.Writer
	n int64
}

func newSink(w io.Writer) *sink {
	return &sink{w: w}
}

func (s *sink) Write(b []byte) (int, error) {
	n, err := s.w.Write(b)
	s.n += int64(n)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		if errors.Is(err, ErrSinkWriteFailed) {
			return n, err
		}
		return n, fmt.Errorf("%w: %w", ErrSinkWriteFailed, err)
	}
	return n, nil
}

func (s *sink) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}
