package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brizzai/oauth-params/internal/config"
	"github.com/brizzai/oauth-params/internal/logger"
	"github.com/brizzai/oauth-params/internal/models"
	"github.com/brizzai/oauth-params/internal/params"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader turns YAML request manifests into parameter lists
type Loader struct {
	bufferSize      int
	defaultMimeType string
	boundary        *params.Boundary
}

// NewLoader creates a Loader using the encoding settings and boundary given
func NewLoader(cfg *config.EncodingConfig, boundary *params.Boundary) *Loader {
	l := &Loader{boundary: boundary}
	if cfg != nil {
		l.bufferSize = cfg.BufferSize
		l.defaultMimeType = cfg.DefaultMimeType
	}
	return l
}

// NewBoundary returns the boundary pinned in the configuration, or the
// process-wide random one
func NewBoundary(cfg *config.EncodingConfig) *params.Boundary {
	if cfg != nil && cfg.Boundary != "" {
		return params.FixedBoundary(cfg.Boundary)
	}
	return params.DefaultBoundary
}

// NewList returns an empty list sharing the loader's boundary
func (l *Loader) NewList() *params.List {
	return params.NewList(params.WithBoundary(l.boundary))
}

// Load reads a manifest from a YAML file. File paths inside the manifest
// are resolved relative to the manifest's directory. An empty path yields
// an empty list.
func (l *Loader) Load(filePath string) (*params.List, error) {
	if filePath == "" {
		logger.Debug("No manifest file provided")
		return l.NewList(), nil
	}

	logger.Info("Loading manifest from file", zap.String("file", filePath))
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m models.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, err)
	}

	return l.Build(&m, filepath.Dir(filePath))
}

// Build converts a manifest into a list. Relative file paths are joined
// to baseDir.
func (l *Loader) Build(m *models.Manifest, baseDir string) (*params.List, error) {
	list := l.NewList()
	if m == nil {
		return list, nil
	}

	if m.Query != "" {
		list.AddQueryString(m.Query)
	}

	for i, entry := range m.Params {
		if entry.Key == "" {
			return nil, fmt.Errorf("manifest param %d: key is required", i)
		}
		p, err := l.buildParam(entry, baseDir)
		if err != nil {
			return nil, fmt.Errorf("manifest param %q: %w", entry.Key, err)
		}
		list.Add(p)
	}

	logger.Debug("Built parameter list",
		zap.Int("params", list.Len()),
		zap.Bool("chunking_recommended", list.ChunkingRecommended()))
	return list, nil
}

// FileParam creates a file parameter with the loader's buffer size and
// default MIME type
func (l *Loader) FileParam(key, path, mimeType string) *params.FileParam {
	if mimeType == "" {
		mimeType = l.defaultMimeType
	}
	return params.NewFileParam(key, path,
		params.WithMimeType(mimeType),
		params.WithBufferSize(l.bufferSize))
}

func (l *Loader) buildParam(entry models.ManifestParam, baseDir string) (params.Parameter, error) {
	var p interface {
		params.Parameter
		SetDisposition(params.Disposition) error
	}

	if entry.File != "" {
		if entry.Value != "" {
			return nil, fmt.Errorf("value and file are mutually exclusive")
		}
		path := entry.File
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		p = l.FileParam(entry.Key, path, entry.MimeType)
	} else {
		if entry.MimeType != "" {
			return nil, fmt.Errorf("mime_type requires file")
		}
		p = params.NewParam(entry.Key, entry.Value)
	}

	if entry.Disposition != "" {
		if err := p.SetDisposition(params.Disposition(entry.Disposition)); err != nil {
			return nil, err
		}
	}
	return p, nil
}
