// Command docstamp renders invoices and quotations to PDF.
//
// # Installation
//
//	go install github.com/lvillar/docstamp/cmd/docstamp@latest
//
// # Usage
//
//	docstamp render --payload invoice.json --out invoice.pdf
//	docstamp inspect invoice.pdf
//	docstamp serve --config docstamp.toml
//	docstamp mcp
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stdin, os.Stdout, os.Stderr)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		c.Logger.Error(err, "code", docstamp.CodeOf(err))
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes bad input from failures of the installation.
func exitCode(err error) int {
	switch docstamp.CodeOf(err) {
	case docstamp.CodeValidation, docstamp.CodeCapacityExceeded:
		return 2
	default:
		return 1
	}
}

