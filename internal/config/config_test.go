package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 8<<20, cfg.Encoding.BufferSize)
	assert.Equal(t, "application/octet-stream", cfg.Encoding.DefaultMimeType)
	assert.Equal(t, "GET", cfg.EndpointConfig.Method)
	assert.Equal(t, AuthTypeNone, cfg.EndpointConfig.AuthType)
	assert.Equal(t, "url", cfg.Mode)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := `
logging:
  level: debug
encoding:
  buffer_size: 1024
  boundary: fixed
endpoint:
  base_url: https://api.example.com
  method: POST
  auth_type: oauth1
  auth_config:
    consumer_key: ck
manifest_file: from-file.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("OAUTH_PARAMS_ENCODING_DEFAULT_MIME_TYPE", "text/plain")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	InitFlags(fs)
	require.NoError(t, fs.Parse([]string{"--mode", "multipart", "--manifest-file", "from-flag.yaml"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 1024, cfg.Encoding.BufferSize)
	assert.Equal(t, "fixed", cfg.Encoding.Boundary)
	assert.Equal(t, "text/plain", cfg.Encoding.DefaultMimeType)
	assert.Equal(t, "https://api.example.com", cfg.EndpointConfig.BaseURL)
	assert.Equal(t, AuthTypeOAuth1, cfg.EndpointConfig.AuthType)
	assert.Equal(t, "ck", cfg.EndpointConfig.AuthConfig["consumer_key"])
	assert.Equal(t, "multipart", cfg.Mode)
	assert.Equal(t, "from-flag.yaml", cfg.ManifestFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{Encoding: EncodingConfig{BufferSize: 1}},
		},
		{
			name:    "zero buffer",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "unknown auth type",
			cfg: Config{
				Encoding:       EncodingConfig{BufferSize: 1},
				EndpointConfig: EndpointConfig{AuthType: "kerberos"},
			},
			wantErr: true,
		},
		{
			name:    "boundary with whitespace",
			cfg:     Config{Encoding: EncodingConfig{BufferSize: 1, Boundary: "a b"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
