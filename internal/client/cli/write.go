package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/sheetkeeper/internal/client/sync"
)

// writeJSON описывает результат записи строки
type writeJSON struct {
	View   *ViewJSON `json:"view,omitempty"`
	Result string    `json:"result"`
}

func (c *Cli) newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update <sheet-id> <tab> <row> [values...]",
		Short: "Overwrite a row (row 1 is the header)",
		Long: `Overwrite one row of a tab with the given values.

Values are interpreted the way Google Sheets interprets user input, so
"=SUM(A1:A3)" is stored as a formula. When the gateway is unreachable the
change is queued and shown locally until it is synced.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRowNumber(args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c.prepare(ctx)

			result, err := c.engine.UpdateRow(ctx, args[0], args[1], row, rowValues(args[3:]))
			return c.writeOutcome(result, err, fmt.Sprintf("Row %d updated", row))
		},
	}
}

func (c *Cli) newAppendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "append <sheet-id> <tab> [values...]",
		Short: "Append a row after the last occupied row",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.prepare(ctx)

			result, err := c.engine.AppendRow(ctx, args[0], args[1], rowValues(args[2:]))
			return c.writeOutcome(result, err, "Row appended")
		},
	}
}

func (c *Cli) writeOutcome(result sync.WriteResult, err error, applied string) error {
	c.out.SetData(writeJSON{Result: string(result), View: c.out.LastView()})

	switch result {
	case sync.WriteApplied:
		c.out.Printf("✓ %s\n", applied)
	case sync.WriteQueued:
		c.out.Println("Run 'sheetkeeper sync' or 'sheetkeeper watch' to push it once the gateway is reachable.")
	default:
		return WrapExitError(ExitFailure, "write rejected", err)
	}
	return nil
}

// rowValues копирует значения, без аргументов получается пустая строка таблицы
func rowValues(args []string) []string {
	return append([]string{}, args...)
}
