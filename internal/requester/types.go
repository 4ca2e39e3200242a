package requester

// RouteConfig holds the configuration for a specific route
type RouteConfig struct {
	Path    string            `json:"path"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	// Multipart forces a multipart/form-data body even without file parameters
	Multipart bool `json:"multipart,omitempty"`
}
