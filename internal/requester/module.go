package requester

import (
	"go.uber.org/fx"
)

// Module provides the HTTP requester, the request builder and the
// AuthManager that signs outgoing requests (OAuth 1.0 included). It expects
// a *config.EndpointConfig and, for the builder, an optional *RouteConfig.
var Module = fx.Options(
	fx.Provide(
		NewHTTPRequester,
		fx.Annotate(
			NewHTTPAuthManager,
			fx.As(new(AuthManager)),
		),
		NewHTTPRequestBuilder,
	),
)
