package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/sheetkeeper/internal/client/export"
)

type exportOptions struct {
	output string
}

func (c *Cli) newExportCommand() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <sheet-id> <tab>",
		Short: "Write the cached snapshot of a tab to an .xlsx workbook",
		Long: `Write the locally cached snapshot of a tab to an .xlsx workbook.

Export never contacts the gateway: it works offline and includes changes
that are still waiting to be synced. Run 'sheetkeeper view' first to
refresh the cache.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, ok := c.cache.Load(cmd.Context(), args[0], args[1])
			if !ok {
				return NewExitError(ExitFailure, fmt.Sprintf("no cached data for %s / %s, run 'sheetkeeper view' first", args[0], args[1]))
			}

			path := opts.output
			if path == "" {
				path = export.SheetName(args[1]) + ".xlsx"
			}

			f, err := os.Create(path)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to create file", err)
			}
			defer f.Close()

			if err := export.WriteXLSX(snapshot, f); err != nil {
				return WrapExitError(ExitFailure, "failed to export", err)
			}
			if err := f.Close(); err != nil {
				return WrapExitError(ExitFailure, "failed to write file", err)
			}

			c.out.SetData(map[string]any{"path": path, "rows": snapshot.SheetStats.RowCount})
			c.out.Printf("✓ Exported %d row(s) to %s\n", snapshot.SheetStats.RowCount, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <tab>.xlsx)")
	return cmd
}
