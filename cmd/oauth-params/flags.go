package main

import (
	"fmt"
	"strings"

	"github.com/brizzai/oauth-params/internal/manifest"
	"github.com/brizzai/oauth-params/internal/params"
	"github.com/spf13/cobra"
)

// listFlags are the parameter sources shared by encode and send
type listFlags struct {
	query  string
	params []string
	files  []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.query, "query", "", "Query string to add (a=1&b=2)")
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "Parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&f.files, "file", "f", nil, "File parameter as key=path[;type=mime] (repeatable)")
}

// parsePair splits key=value. The value may be empty but the key may not.
func parsePair(s string) (string, string, error) {
	key, value, _ := strings.Cut(s, "=")
	if key == "" {
		return "", "", fmt.Errorf("invalid parameter %q: missing key", s)
	}
	return key, value, nil
}

// parseFileFlag splits key=path[;type=mime]
func parseFileFlag(s string) (key, path, mimeType string, err error) {
	key, rest, found := strings.Cut(s, "=")
	if key == "" || !found || rest == "" {
		return "", "", "", fmt.Errorf("invalid file parameter %q: expected key=path", s)
	}
	path, opt, hasOpt := strings.Cut(rest, ";")
	if hasOpt {
		name, value, _ := strings.Cut(opt, "=")
		if strings.TrimSpace(name) != "type" || value == "" {
			return "", "", "", fmt.Errorf("invalid file parameter %q: unknown option %q", s, opt)
		}
		mimeType = value
	}
	return key, path, mimeType, nil
}

// buildList loads the manifest, if any, and appends the flag parameters
// in order: query string, pairs, files.
func (f *listFlags) buildList(loader *manifest.Loader, manifestFile string) (*params.List, error) {
	list, err := loader.Load(manifestFile)
	if err != nil {
		return nil, err
	}
	if f.query != "" {
		list.AddQueryString(f.query)
	}
	for _, p := range f.params {
		key, value, err := parsePair(p)
		if err != nil {
			return nil, err
		}
		list.AddPair(key, value)
	}
	for _, file := range f.files {
		key, path, mimeType, err := parseFileFlag(file)
		if err != nil {
			return nil, err
		}
		list.Add(loader.FileParam(key, path, mimeType))
	}
	return list, nil
}
