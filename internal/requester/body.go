package requester

import (
	"io"
	"sync"

	"github.com/brizzai/oauth-params/internal/params"
)

// multipartStream encodes a parameter list into a pipe on first Read, so
// file content flows to the connection without being buffered. Encoding
// errors surface from Read.
type multipartStream struct {
	list *params.List
	once sync.Once
	pr   *io.PipeReader
	pw   *io.PipeWriter
}

func newMultipartStream(list *params.List) *multipartStream {
	pr, pw := io.Pipe()
	return &multipartStream{list: list, pr: pr, pw: pw}
}

func (s *multipartStream) Read(p []byte) (int, error) {
	s.once.Do(func() {
		go func() {
			_, err := s.list.EncodeTo(params.EncodingMultipart, s.pw)
			_ = s.pw.CloseWithError(err)
		}()
	})
	return s.pr.Read(p)
}

// Close releases the pipe. A running encoder fails its next write and
// exits; one that never started is not started.
func (s *multipartStream) Close() error {
	s.once.Do(func() {})
	return s.pr.Close()
}
