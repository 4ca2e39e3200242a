package requester

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brizzai/oauth-params/internal/encoder"
	"github.com/brizzai/oauth-params/internal/params"
	"github.com/google/uuid"
)

const (
	oauthVersion         = "1.0"
	oauthSignatureMethod = "HMAC-SHA1"
)

// OAuth1Credentials are the consumer and token credentials of RFC 5849
type OAuth1Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// OAuth1Signer signs requests with OAuth 1.0 HMAC-SHA1
type OAuth1Signer struct {
	creds OAuth1Credentials
	now   func() time.Time
	nonce func() string
}

// OAuth1Option customises an OAuth1Signer
type OAuth1Option func(*OAuth1Signer)

// WithOAuth1Clock replaces the timestamp source
func WithOAuth1Clock(now func() time.Time) OAuth1Option {
	return func(s *OAuth1Signer) {
		s.now = now
	}
}

// WithOAuth1Nonce replaces the nonce generator
func WithOAuth1Nonce(nonce func() string) OAuth1Option {
	return func(s *OAuth1Signer) {
		s.nonce = nonce
	}
}

// NewOAuth1Signer creates a signer for the given credentials
func NewOAuth1Signer(creds OAuth1Credentials, opts ...OAuth1Option) *OAuth1Signer {
	s := &OAuth1Signer{
		creds: creds,
		now:   time.Now,
		nonce: newNonce,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Sign adds an OAuth Authorization header to req. Parameters already in the
// request URL are always signed; bodyParams are the parameters carried in
// the request body, of which file parameters are never signed.
func (s *OAuth1Signer) Sign(req *http.Request, bodyParams *params.List) error {
	if s.creds.ConsumerKey == "" {
		return errors.New("oauth1: consumer key is required")
	}

	protocol := s.protocolParams()
	signed := params.NewList()
	signed.AddQueryString(req.URL.RawQuery)
	signed.AddAll(bodyParams)
	signed.AddAll(protocol)

	base, err := SignatureBaseString(req.Method, req.URL, signed)
	if err != nil {
		return fmt.Errorf("failed to build signature base string: %w", err)
	}
	protocol.AddPair("oauth_signature", s.signature(base))

	req.Header.Set("Authorization", authorizationHeader(protocol))
	return nil
}

func (s *OAuth1Signer) protocolParams() *params.List {
	protocol := params.NewList()
	protocol.AddPair("oauth_consumer_key", s.creds.ConsumerKey)
	protocol.AddPair("oauth_nonce", s.nonce())
	protocol.AddPair("oauth_signature_method", oauthSignatureMethod)
	protocol.AddPair("oauth_timestamp", strconv.FormatInt(s.now().Unix(), 10))
	if s.creds.Token != "" {
		protocol.AddPair("oauth_token", s.creds.Token)
	}
	protocol.AddPair("oauth_version", oauthVersion)
	return protocol
}

func (s *OAuth1Signer) signature(base string) string {
	key := encoder.Encode(s.creds.ConsumerSecret) + "&" + encoder.Encode(s.creds.TokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignatureBaseString builds METHOD&encode(base URI)&encode(parameters) as
// defined in RFC 5849 section 3.4.1.
func SignatureBaseString(method string, u *url.URL, list *params.List) (string, error) {
	component, err := list.EncodeToString(params.EncodingOAuthBase)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(method) + "&" + encoder.Encode(baseURI(u)) + "&" + component, nil
}

// baseURI lowercases scheme and host, drops default ports and strips the
// query and fragment.
func baseURI(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" && !(scheme == "http" && port == "80") && !(scheme == "https" && port == "443") {
		host += ":" + port
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

func authorizationHeader(protocol *params.List) string {
	parts := make([]string, 0, protocol.Len())
	for _, p := range protocol.Params() {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, encoder.Encode(p.Key()), encoder.Encode(p.Value())))
	}
	sort.Strings(parts)
	return "OAuth " + strings.Join(parts, ", ")
}
