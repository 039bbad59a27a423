package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ledwall/internal/server"
	"github.com/matzehuels/ledwall/pkg/pipeline"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cacheURL string
		maxBody  int64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wiring pipeline over HTTP",
		Long: `Serve the wiring pipeline over HTTP.

Routes:
  GET  /healthz
  POST /v1/plan                     {"descriptor": "..."} or {"config": {...}}
  POST /v1/render/{view}.{format}   same body plus layers, color1, color2, scale

The cache backend is chosen by --cache-url: file (default), none,
redis://host:6379/0 or mongodb://host.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.Logger.SetPrefix("serve")

			backend, err := openCache(ctx, cacheURL)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			runner := pipeline.NewRunner(backend, nil, c.Logger)
			defer runner.Close()

			printKeyValue("Listening", StyleLink.Render("http://"+addr))
			printKeyValue("Cache", cacheLabel(cacheURL))
			printNewline()

			srv := server.New(runner, c.Logger, server.WithMaxBodyBytes(maxBody))
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&cacheURL, "cache-url", "", "cache backend: file (default), none, redis://..., mongodb://...")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	registerCacheURLCompletion(cmd)
	return cmd
}

// cacheLabel describes the backend without credentials.
func cacheLabel(raw string) string {
	switch raw {
	case "", "file":
		dir, err := cacheDir()
		if err != nil {
			return "none"
		}
		return dir
	default:
		u, err := url.Parse(raw)
		if err != nil {
			return "(unparseable url)"
		}
		return u.Redacted()
	}
}
