package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/gitakids/internal/export"
)

func (c *cli) newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <chapter>",
		Short: "Write a printable PDF worksheet for a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber("chapter", args[0])
			if err != nil {
				return err
			}
			lib, err := c.library()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			ch, err := lib.Chapter(n)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", n, err)
			}

			if output == "" {
				output = fmt.Sprintf("chapter-%d-worksheet.pdf", n)
			}
			if err := export.WriteWorksheetFile(output, ch); err != nil {
				return err
			}
			c.log.Info("wrote worksheet for chapter %d to %s", n, output)
			fmt.Fprintf(cmd.OutOrStdout(), "Worksheet for chapter %d written to %s\n", n, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default chapter-N-worksheet.pdf)")
	return cmd
}
