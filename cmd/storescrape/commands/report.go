package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"storescrape/internal/formatter"
	"storescrape/internal/output"
)

func newReportCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "report <path/to/output.json>",
		Short: "Prints a scraped document as an aligned table.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := output.ReadRecords(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, formatter.RenderRecords(records, width))
			fmt.Fprintf(w, "\n%d records\n", len(records))

			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", formatter.DefaultCellWidth, "Maximum cell width, 0 for unlimited")

	return cmd
}
