package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvillar/docstamp/inspect"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var runs bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the page count, metadata and text of a PDF",
		Long: `Inspect parses a PDF with classic cross-reference tables, such as the ones
docstamp writes, and prints its information dictionary followed by the text of
every page. With --runs each text run is listed with its origin, font and size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := inspect.Open(args[0])
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("opened document", "path", args[0], "version", doc.Version)
			return printDocument(cmd.OutOrStdout(), doc, runs)
		},
	}
	cmd.Flags().BoolVar(&runs, "runs", false, "list text runs with position, font and size")
	return cmd
}

func printDocument(w io.Writer, doc *inspect.Document, runs bool) error {
	info := doc.Info()
	fmt.Fprintf(w, "PDF %s, %d pages\n", doc.Version, doc.NumPages())
	for _, f := range []struct{ key, value string }{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Creator", info.Creator},
		{"Producer", info.Producer},
		{"Created", formatTime(info.Created)},
		{"Modified", formatTime(info.Modified)},
	} {
		if f.value != "" {
			fmt.Fprintf(w, "%-9s %s\n", f.key+":", f.value)
		}
	}

	for n, page := range doc.Pages() {
		fmt.Fprintf(w, "\n--- Page %d (%.2f x %.2f pt) ---\n", n, page.MediaBox.Width(), page.MediaBox.Height())
		if !runs {
			text, err := page.Text()
			if err != nil {
				return fmt.Errorf("page %d: %w", n, err)
			}
			fmt.Fprintln(w, text)
			continue
		}
		rs, err := page.Runs()
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}
		for _, r := range rs {
			fmt.Fprintf(w, "%7.2f %7.2f  %-16s %5.1f  %s\n", r.X, r.Y, r.Font, r.Size, strings.TrimSpace(r.Text))
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
