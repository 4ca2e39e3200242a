package requester

import (
	"fmt"
	"net/http"

	"github.com/brizzai/oauth-params/internal/config"
	"github.com/brizzai/oauth-params/internal/params"
	"golang.org/x/oauth2"
)

// AuthManager handles request authentication. bodyParams holds the
// parameters sent in the request body, nil when there is none.
type AuthManager interface {
	ApplyAuth(req *http.Request, bodyParams *params.List) error
}

// HTTPAuthManager implements the AuthManager interface
type HTTPAuthManager struct {
	authType   config.AuthType
	authConfig map[string]string
	oauth1     *OAuth1Signer
}

// NewHTTPAuthManager creates a new HTTPAuthManager
func NewHTTPAuthManager(serviceConfig *config.EndpointConfig) *HTTPAuthManager {
	m := &HTTPAuthManager{
		authType:   serviceConfig.AuthType,
		authConfig: serviceConfig.AuthConfig,
	}
	if m.authType == config.AuthTypeOAuth1 {
		m.oauth1 = NewOAuth1Signer(OAuth1Credentials{
			ConsumerKey:    m.authConfig["consumer_key"],
			ConsumerSecret: m.authConfig["consumer_secret"],
			Token:          m.authConfig["token"],
			TokenSecret:    m.authConfig["token_secret"],
		})
	}
	return m
}

// WithOAuth1Signer replaces the OAuth 1.0 signer
func (a *HTTPAuthManager) WithOAuth1Signer(signer *OAuth1Signer) *HTTPAuthManager {
	a.oauth1 = signer
	return a
}

// ApplyAuth adds authentication to the request
func (a *HTTPAuthManager) ApplyAuth(req *http.Request, bodyParams *params.List) error {
	switch a.authType {
	case config.AuthTypeNone, "":
		return nil
	case config.AuthTypeBasic:
		username := a.authConfig["username"]
		password := a.authConfig["password"]
		req.SetBasicAuth(username, password)
	case config.AuthTypeBearer:
		token := a.authConfig["token"]
		req.Header.Set("Authorization", "Bearer "+token)
	case config.AuthTypeAPIKey:
		key := a.authConfig["key"]
		header := a.authConfig["header"]
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, key)
	case config.AuthTypeOAuth2:
		token := &oauth2.Token{
			AccessToken: a.authConfig["token"],
			TokenType:   a.authConfig["token_type"],
		}
		if !token.Valid() {
			return fmt.Errorf("oauth2 access token is missing")
		}
		token.SetAuthHeader(req)
	case config.AuthTypeOAuth1:
		if a.oauth1 == nil {
			return fmt.Errorf("oauth1 signer is not configured")
		}
		return a.oauth1.Sign(req, bodyParams)
	default:
		return fmt.Errorf("unsupported auth type: %s", a.authType)
	}
	return nil
}
