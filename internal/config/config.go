package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("oauth-params version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Logging        LoggingConfig  `mapstructure:"logging"`
	Encoding       EncodingConfig `mapstructure:"encoding"`
	EndpointConfig EndpointConfig `mapstructure:"endpoint"`
	ManifestFile   string         `mapstructure:"manifest_file"`
	Mode           string         `mapstructure:"mode"`
}

// AuthType represents the type of authentication to use
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
	AuthTypeOAuth2 AuthType = "oauth2"
	AuthTypeOAuth1 AuthType = "oauth1"
)

// Valid reports whether the auth type is supported. The empty value means none.
func (a AuthType) Valid() bool {
	switch a {
	case "", AuthTypeNone, AuthTypeBasic, AuthTypeBearer, AuthTypeAPIKey, AuthTypeOAuth2, AuthTypeOAuth1:
		return true
	}
	return false
}

type EndpointConfig struct {
	BaseURL    string            `json:"base_url" mapstructure:"base_url"`
	Method     string            `json:"method" mapstructure:"method"`
	AuthType   AuthType          `json:"auth_type" mapstructure:"auth_type"`
	AuthConfig map[string]string `json:"auth_config" mapstructure:"auth_config"`
	Headers    map[string]string `json:"headers" mapstructure:"headers"`
	Timeout    string            `json:"timeout" mapstructure:"timeout"`
}

// EncodingConfig tunes how parameter lists are rendered.
type EncodingConfig struct {
	// BufferSize is the read buffer used when streaming file parameters.
	BufferSize      int    `mapstructure:"buffer_size"`
	DefaultMimeType string `mapstructure:"default_mime_type"`
	// Boundary pins the multipart boundary; empty means a random one per process.
	Boundary string `mapstructure:"boundary"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

const (
	defaultBufferSize = 8 << 20
	defaultMimeType   = "application/octet-stream"
)

// InitFlags registers the command line flags read by Load on fs (without parsing)
func InitFlags(fs *pflag.FlagSet) {
	fs.String("mode", "url", "Output encoding (url|raw|base|multipart)")
	fs.String("manifest-file", "", "Path to the request manifest file")
	fs.String("log-level", "", "Log level (debug|info|warn|error)")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.disable_stacktrace", true)
	v.SetDefault("encoding.buffer_size", defaultBufferSize)
	v.SetDefault("encoding.default_mime_type", defaultMimeType)
	v.SetDefault("endpoint.method", "GET")
	v.SetDefault("endpoint.auth_type", string(AuthTypeNone))
	v.SetDefault("endpoint.timeout", "30s")
	v.SetDefault("mode", "url")
}

// Load reads configuration from ./config.yaml or /etc/oauth-params/config.yaml,
// environment variables prefixed with OAUTH_PARAMS_, and the given flags.
// A missing config file is not an error.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OAUTH_PARAMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/oauth-params")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Flags and environment override the file
	if mode := v.GetString("mode"); mode != "" {
		config.Mode = mode
	}
	if manifestFile := v.GetString("manifest-file"); manifestFile != "" {
		config.ManifestFile = manifestFile
	}
	if level := v.GetString("log-level"); level != "" {
		config.Logging.Level = level
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.Encoding.BufferSize <= 0 {
		return fmt.Errorf("encoding.buffer_size must be positive, got %d", c.Encoding.BufferSize)
	}
	if !c.EndpointConfig.AuthType.Valid() {
		return fmt.Errorf("unsupported endpoint.auth_type %q", c.EndpointConfig.AuthType)
	}
	if strings.ContainsAny(c.Encoding.Boundary, " \r\n") {
		return fmt.Errorf("encoding.boundary must not contain whitespace")
	}
	return nil
}
