package tests

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brizzai/oauth-params/internal/config"
	"github.com/brizzai/oauth-params/internal/params"
	"github.com/brizzai/oauth-params/internal/requester"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequester(t *testing.T, baseURL string, authMgr requester.AuthManager) *requester.HTTPRequester {
	t.Helper()
	r, err := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		ServiceConfig: &config.EndpointConfig{
			BaseURL: baseURL,
			Headers: map[string]string{"X-Client": "oauth-params"},
		},
		AuthManager: authMgr,
	})
	require.NoError(t, err)
	return r
}

func TestHTTPRequester_GetQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/statuses", r.URL.Path)
		assert.Equal(t, "q=hello%20world&count=5", r.URL.RawQuery)
		assert.Equal(t, "hello world", r.URL.Query().Get("q"))
		assert.Equal(t, "oauth-params", r.Header.Get("X-Client"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	r := newTestRequester(t, server.URL, noAuth())
	execute, err := r.BuildRouteExecutor(&requester.RouteConfig{Method: "GET", Path: "/statuses"})
	require.NoError(t, err)

	list := params.NewList()
	list.AddPair("q", "hello world")
	list.AddPair("count", "5")

	resp, err := execute(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
}

func TestHTTPRequester_PostForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "Hello Ladies + Gentlemen", r.PostForm.Get("status"))
		assert.Equal(t, "true", r.PostForm.Get("include_entities"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	r := newTestRequester(t, server.URL, noAuth())
	execute, err := r.BuildRouteExecutor(&requester.RouteConfig{Method: "POST", Path: "/update"})
	require.NoError(t, err)

	list := params.NewList()
	list.AddPair("status", "Hello Ladies + Gentlemen")
	list.AddPair("include_entities", "true")

	resp, err := execute(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHTTPRequester_PostMultipartChunked(t *testing.T) {
	dir := t.TempDir()
	content := []byte("binary\x00content\r\n--not-a-boundary")
	path := filepath.Join(dir, "report.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"chunked"}, r.TransferEncoding)
		assert.Equal(t, int64(-1), r.ContentLength)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "quarterly", r.MultipartForm.Value["title"][0])

		files := r.MultipartForm.File["report"]
		require.Len(t, files, 1)
		assert.Equal(t, "report.bin", files[0].Filename)
		assert.Equal(t, "application/pdf", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		got, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, content, got)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	r := newTestRequester(t, server.URL, noAuth())
	execute, err := r.BuildRouteExecutor(&requester.RouteConfig{Method: "POST", Path: "/upload"})
	require.NoError(t, err)

	list := params.NewList()
	list.AddPair("title", "quarterly")
	list.Add(params.NewFileParam("report", path, params.WithMimeType("application/pdf"), params.WithBufferSize(7)))

	resp, err := execute(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHTTPRequester_OAuth1SignedRequest(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	authMgr := requester.NewHTTPAuthManager(&config.EndpointConfig{
		AuthType: config.AuthTypeOAuth1,
		AuthConfig: map[string]string{
			"consumer_key":    "key",
			"consumer_secret": "secret",
		},
	})
	r := newTestRequester(t, server.URL, authMgr)
	execute, err := r.BuildRouteExecutor(&requester.RouteConfig{Method: "POST", Path: "/update"})
	require.NoError(t, err)

	list := params.NewList()
	list.AddPair("status", "hi")

	_, err = execute(context.Background(), list)
	require.NoError(t, err)

	got := headerParams(t, authorization)
	assert.Equal(t, "key", got["oauth_consumer_key"])
	assert.Equal(t, "HMAC-SHA1", got["oauth_signature_method"])
	assert.NotEmpty(t, got["oauth_signature"])
	assert.NotContains(t, got, "oauth_token")
}

func TestHTTPRequester_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	r := newTestRequester(t, server.URL, noAuth())
	r.SetTimeout(20 * time.Millisecond)
	execute, err := r.BuildRouteExecutor(&requester.RouteConfig{Method: "GET", Path: "/slow"})
	require.NoError(t, err)

	_, err = execute(context.Background(), params.NewList())
	assert.Error(t, err)
}

func TestNewHTTPRequester_InvalidTimeout(t *testing.T) {
	_, err := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		ServiceConfig: &config.EndpointConfig{Timeout: "soon"},
		AuthManager:   noAuth(),
	})
	assert.Error(t, err)
}

func TestHTTPRequester_BuildRouteExecutorNilConfig(t *testing.T) {
	r := newTestRequester(t, "http://localhost", noAuth())
	_, err := r.BuildRouteExecutor(nil)
	assert.Error(t, err)
}
