package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lvillar/docstamp"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	payload string // payload JSON file, or "-" for stdin
	output  string // output PDF path; empty derives it from the payload
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an invoice or quotation payload to PDF",
		Long: `Render reads a JSON payload whose "type" is "invoice" or "quote" and writes
the two-page document. Without --out the file is named after the payload,
e.g. invoice-INV-001.pdf, in the current directory.`,
		Example: `  docstamp render --payload invoice.json
  cat quote.json | docstamp render --payload - --out quote.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.payload, "payload", "p", "", "payload JSON file (- for stdin)")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output PDF path")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	data, err := c.readPayload(opts.payload)
	if err != nil {
		return err
	}
	p, err := docstamp.DecodePayload(data)
	if err != nil {
		return err
	}

	eng, err := c.newEngine()
	if err != nil {
		return err
	}
	pdf, err := eng.Render(p)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = docstamp.Filename(p)
	}
	if err := writeFile(out, pdf); err != nil {
		return err
	}
	prog.done("Wrote "+out, "kind", p.Kind(), "number", p.DocumentNumber(), "bytes", len(pdf))
	return nil
}

func (c *CLI) readPayload(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return nil, fmt.Errorf("reading payload from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return data, nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
