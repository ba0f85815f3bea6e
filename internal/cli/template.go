package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Work with the invoice base template",
	}
	cmd.AddCommand(c.templatePreviewCommand())
	cmd.AddCommand(c.templateShowCommand())
	return cmd
}

func (c *CLI) templatePreviewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the bare base artwork of the invoice template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			eng, err := c.newEngine()
			if err != nil {
				return err
			}
			pdf, err := eng.Preview()
			if err != nil {
				return err
			}
			if err := writeFile(output, pdf); err != nil {
				return err
			}
			tpl := eng.Assets().Template()
			prog.done("Wrote "+output, "template", tpl.Name, "version", tpl.Version, "bytes", len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "template-preview.pdf", "output PDF path")
	return cmd
}

func (c *CLI) templateShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the layout table of the configured invoice template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.newEngine()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", eng.Assets().TemplateJSON())
			return err
		},
	}
}
