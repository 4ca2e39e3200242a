package models

// ManifestParam is one entry of a request manifest. Entries with File set
// become file parameters, all others ordinary parameters.
type ManifestParam struct {
	Key         string `yaml:"key"`
	Value       string `yaml:"value,omitempty"`
	File        string `yaml:"file,omitempty"`
	MimeType    string `yaml:"mime_type,omitempty"`
	Disposition string `yaml:"disposition,omitempty"`
}

// Manifest describes the parameters of a request in YAML.
type Manifest struct {
	// Query is a raw query string added before Params.
	Query  string          `yaml:"query,omitempty"`
	Params []ManifestParam `yaml:"params,omitempty"`
}
