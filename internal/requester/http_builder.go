package requester

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brizzai/oauth-params/internal/config"
	"github.com/brizzai/oauth-params/internal/params"

	"go.uber.org/fx"
)

const formURLEncoded = "application/x-www-form-urlencoded"

// HTTPRequestBuilderParams holds the parameters for creating an HTTPRequestBuilder
type HTTPRequestBuilderParams struct {
	fx.In
	EndpointConfig *config.EndpointConfig
	AuthManager    AuthManager
	RouteConfig    *RouteConfig `optional:"true"`
}

// HTTPRequestBuilder turns parameter lists into HTTP requests for one route
type HTTPRequestBuilder struct {
	serviceCfg  *config.EndpointConfig
	authMgr     AuthManager
	routeConfig *RouteConfig
}

// NewHTTPRequestBuilder creates a new HTTPRequestBuilder
func NewHTTPRequestBuilder(in HTTPRequestBuilderParams) *HTTPRequestBuilder {
	return &HTTPRequestBuilder{
		serviceCfg:  in.EndpointConfig,
		authMgr:     in.AuthManager,
		routeConfig: in.RouteConfig,
	}
}

// BuildRequest builds a request for the route from a parameter list.
//
// Methods without a body carry the parameters in the query string. Other
// methods send a multipart body when the list holds files (or the route asks
// for one) and a form-urlencoded body otherwise. Multipart bodies with files
// are streamed with chunked transfer encoding.
func (b *HTTPRequestBuilder) BuildRequest(ctx context.Context, list *params.List) (*Request, error) {
	if b.routeConfig == nil {
		return nil, fmt.Errorf("route config is nil")
	}
	if list == nil {
		list = params.NewList()
	}

	method := strings.ToUpper(b.routeConfig.Method)
	if method == "" {
		method = http.MethodGet
	}
	url := b.buildURL(b.routeConfig.Path)

	var (
		body          io.Reader
		contentType   string
		contentLength int64
		bodyParams    *params.List
		err           error
	)
	if hasBody(method) {
		body, contentType, contentLength, err = b.createRequestBody(list)
		if err != nil {
			return nil, fmt.Errorf("failed to create request body: %w", err)
		}
		bodyParams = list
	} else {
		url, err = list.AppendToURL(url)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query parameters: %w", err)
		}
	}

	// Merge headers
	headers := make(map[string]string)
	if b.serviceCfg != nil {
		for k, v := range b.serviceCfg.Headers {
			headers[k] = v
		}
	}
	for k, v := range b.routeConfig.Headers {
		headers[k] = v
	}

	// Create the HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	if body != nil {
		httpReq.ContentLength = contentLength
		if contentLength < 0 {
			httpReq.TransferEncoding = []string{"chunked"}
		}
	}

	// Add headers
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Apply authentication
	if b.authMgr != nil {
		if err := b.authMgr.ApplyAuth(httpReq, bodyParams); err != nil {
			return nil, fmt.Errorf("failed to apply authentication: %w", err)
		}
	}

	return &Request{
		URL:           url,
		Method:        method,
		Body:          body,
		Headers:       headers,
		ContentType:   contentType,
		ContentLength: contentLength,
		HttpRequest:   httpReq,
	}, nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return false
	}
	return true
}

func (b *HTTPRequestBuilder) buildURL(path string) string {
	if b.serviceCfg == nil {
		return path
	}
	return strings.TrimRight(b.serviceCfg.BaseURL, "/") + path
}

func (b *HTTPRequestBuilder) createRequestBody(list *params.List) (io.Reader, string, int64, error) {
	if list.Len() == 0 {
		return nil, "", 0, nil
	}

	if list.ChunkingRecommended() {
		return newMultipartStream(list), list.ContentType(), -1, nil
	}

	if b.routeConfig.Multipart {
		body := &bytes.Buffer{}
		n, err := list.EncodeTo(params.EncodingMultipart, body)
		if err != nil {
			return nil, "", 0, fmt.Errorf("failed to encode multipart body: %w", err)
		}
		return body, list.ContentType(), n, nil
	}

	body := &bytes.Buffer{}
	n, err := list.EncodeTo(params.EncodingURL, body)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to encode form body: %w", err)
	}
	return body, formURLEncoded, n, nil
}
