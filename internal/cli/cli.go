// Package cli implements the docstamp command-line interface.
//
// # Commands
//
//   - render: render an invoice or quotation payload to PDF
//   - inspect: print the page count, metadata and text of a PDF
//   - template preview: render the bare invoice base template
//   - serve: run the HTTP API
//   - mcp: run the stdio tool server for AI assistants
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging; otherwise the
// level comes from the [log] section of the --config file. The logger is
// passed to commands through context.Context.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lvillar/docstamp/assets"
	"github.com/lvillar/docstamp/config"
	"github.com/lvillar/docstamp/internal/buildinfo"
	"github.com/lvillar/docstamp/render"
)

const appName = "docstamp"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
	in         io.Reader
	out        io.Writer
}

// New creates a CLI writing logs to logs and command output to out. Commands
// that read a payload from "-" read from in.
func New(in io.Reader, out, logs io.Writer) *CLI {
	return &CLI{
		Logger: newLogger(logs, LogInfo),
		Config: config.Default(),
		in:     in,
		out:    out,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "docstamp renders invoices and quotations onto a fixed PDF layout",
		Long:              `docstamp fills a versioned invoice template and draws quotations from scratch, producing byte-identical two-page PDFs for identical payloads.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.verbose {
		level = LogDebug
	}
	c.Logger.SetLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("configuration loaded", "path", c.configPath)
	return nil
}

// newEngine loads the configured assets and builds a render engine.
func (c *CLI) newEngine() (*render.Engine, error) {
	b, err := assets.Load(c.Config.Assets)
	if err != nil {
		return nil, err
	}
	return render.New(b,
		render.WithProducer(c.Config.Render.Producer),
		render.WithCompression(c.Config.Render.Compress),
		render.WithLogger(c.Logger),
	), nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return err
		},
	}
}
