package requester

import (
	"context"
	"io"
	"net/http"

	"github.com/brizzai/oauth-params/internal/params"
)

// RouteExecutor is a function that can execute a route with a parameter list
type RouteExecutor func(ctx context.Context, list *params.List) (*Response, error)

// Request represents a fully built HTTP request
type Request struct {
	URL         string
	Method      string
	Body        io.Reader
	Headers     map[string]string
	ContentType string
	// ContentLength is -1 when the body is streamed with chunked encoding
	ContentLength int64
	HttpRequest   *http.Request // The actual HTTP request
}

// Chunked reports whether the body is sent with chunked transfer encoding
func (r *Request) Chunked() bool {
	return r.ContentLength < 0
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}
