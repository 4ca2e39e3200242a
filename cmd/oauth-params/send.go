package main

import (
	"fmt"
	"sort"

	"github.com/brizzai/oauth-params/internal/logger"
	"github.com/brizzai/oauth-params/internal/manifest"
	"github.com/brizzai/oauth-params/internal/requester"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSendCmd() *cobra.Command {
	var (
		flags  listFlags
		route  requester.RouteConfig
		url    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Build, sign and send a request",
		Long: `Build a request from the parameter list, apply the configured authentication
(including OAuth 1.0 HMAC-SHA1 signing) and send it. Lists holding files are
sent as chunked multipart bodies.`,
		Example: `  oauth-params send --url https://api.example.com --path /1.1/statuses/update.json \
    --method POST -p status="Hello world"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if url != "" {
				cfg.EndpointConfig.BaseURL = url
			}
			if route.Method == "" {
				route.Method = cfg.EndpointConfig.Method
			}

			var (
				loader  *manifest.Loader
				client  *requester.HTTPRequester
				builder *requester.HTTPRequestBuilder
			)
			if err := populate(cmd.Context(), cfg, &route, &loader, &client, &builder); err != nil {
				return err
			}

			list, err := flags.buildList(loader, cfg.ManifestFile)
			if err != nil {
				return err
			}

			if dryRun {
				req, err := builder.BuildRequest(cmd.Context(), list)
				if err != nil {
					return err
				}
				printRequest(req)
				return nil
			}

			execute, err := client.BuildRouteExecutor(&route)
			if err != nil {
				return err
			}
			resp, err := execute(cmd.Context(), list)
			if err != nil {
				return err
			}

			logger.Debug("Received response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(resp.Body)))
			if resp.StatusCode >= 400 {
				pterm.Warning.Printfln("%s %s returned %d", route.Method, route.Path, resp.StatusCode)
			} else {
				pterm.Success.Printfln("%s %s returned %d", route.Method, route.Path, resp.StatusCode)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&url, "url", "", "Base URL (overrides endpoint.base_url)")
	cmd.Flags().StringVar(&route.Path, "path", "", "Request path appended to the base URL")
	cmd.Flags().StringVarP(&route.Method, "method", "X", "", "HTTP method (defaults to endpoint.method)")
	cmd.Flags().BoolVar(&route.Multipart, "multipart", false, "Send a multipart body even without files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the signed request instead of sending it")
	return cmd
}

// printRequest shows the request line and headers of a built request
func printRequest(req *requester.Request) {
	pterm.DefaultSection.Println(req.Method + " " + req.URL)

	names := make([]string, 0, len(req.HttpRequest.Header))
	for name := range req.HttpRequest.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := pterm.TableData{{"Header", "Value"}}
	for _, name := range names {
		rows = append(rows, []string{name, req.HttpRequest.Header.Get(name)})
	}
	if req.Chunked() {
		rows = append(rows, []string{"Transfer-Encoding", "chunked"})
	} else if req.Body != nil {
		rows = append(rows, []string{"Content-Length", fmt.Sprint(req.ContentLength)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
