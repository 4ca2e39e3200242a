package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brizzai/oauth-params/internal/config"
	"github.com/brizzai/oauth-params/internal/params"

	"github.com/brizzai/oauth-params/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// HTTPRequester handles both request building and execution
type HTTPRequester struct {
	client     *http.Client
	serviceCfg *config.EndpointConfig
	authMgr    AuthManager
}

type HTTPRequesterParams struct {
	fx.In

	ServiceConfig *config.EndpointConfig
	AuthManager   AuthManager
}

// NewHTTPRequester creates a new HTTPRequester. The client timeout comes
// from the endpoint configuration and defaults to 30 seconds.
func NewHTTPRequester(in HTTPRequesterParams) (*HTTPRequester, error) {
	timeout := defaultTimeout
	if in.ServiceConfig != nil && in.ServiceConfig.Timeout != "" {
		d, err := time.ParseDuration(in.ServiceConfig.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint timeout: %w", err)
		}
		timeout = d
	}
	return &HTTPRequester{
		client: &http.Client{
			Timeout: timeout,
		},
		serviceCfg: in.ServiceConfig,
		authMgr:    in.AuthManager,
	}, nil
}

// SetTimeout sets the timeout for the HTTP client
func (r *HTTPRequester) SetTimeout(timeout time.Duration) {
	r.client.Timeout = timeout
}

// BuildRouteExecutor creates a function that can execute requests for a specific route
func (r *HTTPRequester) BuildRouteExecutor(config *RouteConfig) (RouteExecutor, error) {
	if config == nil {
		return nil, fmt.Errorf("route config is nil")
	}
	builder := &HTTPRequestBuilder{
		serviceCfg:  r.serviceCfg,
		authMgr:     r.authMgr,
		routeConfig: config,
	}

	// Return a function that builds and executes the request
	return func(ctx context.Context, list *params.List) (*Response, error) {
		req, err := builder.BuildRequest(ctx, list)
		if err != nil {
			return nil, err
		}
		logger.Info("request route",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Bool("chunked", req.Chunked()))

		resp, err := r.execute(req)
		if err != nil {
			logger.Error("failed to execute request", zap.Error(err))
			return nil, err
		}

		return resp, nil
	}, nil
}

// execute performs the actual HTTP request execution
func (r *HTTPRequester) execute(req *Request) (result *Response, err error) {
	resp, err := r.client.Do(req.HttpRequest)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
		Headers:    resp.Header,
	}, nil
}
