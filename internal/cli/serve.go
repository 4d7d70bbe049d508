package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/internal/server"
	"github.com/matzehuels/commute/pkg/observability"
	"github.com/matzehuels/commute/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion API over HTTP",
		Long: `Serve starts an HTTP server exposing derive, reconstruct, check, inspect and
render under /v1, plus a /v1/diagrams collection backed by the configured
store. It stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.settings().Server.Addr
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer c.closeRunner(runner)

			var st store.Store
			if !noStore {
				st, err = c.newStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: c.Logger})
			observability.SetCacheHooks(observability.LogCacheHooks{Logger: c.Logger})

			srv := server.New(runner, st, c.Logger, c.baseOptions())
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable the /v1/diagrams routes")

	return cmd
}
