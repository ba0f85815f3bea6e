package cli

import (
	"github.com/spf13/cobra"

	"github.com/lvillar/docstamp/internal/buildinfo"
	"github.com/lvillar/docstamp/mcp"
	"github.com/lvillar/docstamp/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve accepts POST /v1/documents with a JSON payload and answers with the
rendered PDF. It shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.newEngine()
			if err != nil {
				return err
			}
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			return server.New(eng, cfg, loggerFromContext(cmd.Context())).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (c *CLI) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol tool server on stdio",
		Long: `MCP serves JSON-RPC 2.0 on stdin and stdout. Logs go to stderr.

Example client configuration:

  {"mcpServers": {"docstamp": {"command": "docstamp", "args": ["mcp"]}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.newEngine()
			if err != nil {
				return err
			}
			s := mcp.NewServer(appName, buildinfo.Version, c.in, c.out, loggerFromContext(cmd.Context()))
			mcp.Register(s, eng)
			return s.Run(cmd.Context())
		},
	}
}
