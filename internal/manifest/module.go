package manifest

import "go.uber.org/fx"

// Module provides the manifest loader and the multipart boundary
var Module = fx.Module("manifest",
	fx.Provide(
		NewBoundary,
		NewLoader,
	),
)
