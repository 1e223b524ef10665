package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/sheetkeeper/internal/client/sync"
	"github.com/iudanet/sheetkeeper/internal/models"
)

// replayJSON описывает результат воспроизведения очереди
type replayJSON struct {
	Error        string `json:"error,omitempty"`
	Attempted    int    `json:"attempted"`
	Settled      int    `json:"settled"`
	Remaining    int    `json:"remaining"`
	DeadLettered int    `json:"deadLettered"`
}

func (c *Cli) newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay pending changes now, even if the last health check failed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.out.Println("=== Synchronization ===")
			c.out.Println()

			result := c.replay(cmd.Context(), true)
			out := replayJSON{
				Attempted:    result.Attempted,
				Settled:      result.Settled,
				Remaining:    result.Remaining,
				DeadLettered: result.DeadLettered,
			}
			if result.Err != nil {
				out.Error = result.Err.Error()
			}
			c.out.SetData(out)

			if result.Attempted == 0 {
				c.out.Println("✓ Nothing to sync")
				return nil
			}

			c.out.Printf("Sent:          %d change(s)\n", result.Settled)
			c.out.Printf("Still pending: %d change(s)\n", result.Remaining)
			if result.DeadLettered > 0 {
				c.out.Printf("Set aside:     %d change(s)\n", result.DeadLettered)
			}

			if result.Err != nil {
				if sync.Classify(result.Err) == sync.KindAuthorization {
					return WrapExitError(ExitFailure, "sync stopped, run 'sheetkeeper login'", result.Err)
				}
				return WrapExitError(ExitFailure, "sync stopped", result.Err)
			}
			return nil
		},
	}
}

type pendingOptions struct {
	dead  bool
	clear bool
}

// pendingJSON описывает содержимое очереди
type pendingJSON struct {
	Queue      string                    `json:"queue"`
	Operations []models.PendingOperation `json:"operations"`
	Cleared    bool                      `json:"cleared,omitempty"`
}

func (c *Cli) newPendingCommand() *cobra.Command {
	opts := &pendingOptions{}

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Show queued changes that have not reached the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name, ops := "pending", c.queue.ReadAll(ctx)
			if opts.dead {
				name, ops = "dead", c.queue.ReadDead(ctx)
			}

			if opts.clear {
				cleared := c.queue.Clear(ctx)
				if opts.dead {
					cleared = c.queue.ClearDead(ctx)
				}
				if !cleared {
					return NewExitError(ExitCommandError, "failed to clear queue")
				}
				c.out.SetData(pendingJSON{Queue: name, Operations: ops, Cleared: true})
				c.out.Printf("✓ Removed %d change(s)\n", len(ops))
				return nil
			}

			c.out.SetData(pendingJSON{Queue: name, Operations: ops})
			if len(ops) == 0 {
				c.out.Println("✓ No pending changes")
				return nil
			}

			rows := make([][]string, 0, len(ops))
			for _, op := range ops {
				row := "-"
				if op.Kind == models.OperationUpdate {
					row = fmt.Sprint(op.Payload.RowNumber)
				}
				rows = append(rows, []string{
					op.ID,
					string(op.Kind),
					op.SheetID + "/" + op.Tab,
					row,
					strings.Join(op.Payload.Values, ", "),
					fmt.Sprint(op.Attempts),
					op.LastError,
				})
			}
			c.out.Table([]string{"ID", "TYPE", "TAB", "ROW", "VALUES", "ATTEMPTS", "LAST ERROR"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.dead, "dead", false, "show changes set aside after repeated failures")
	cmd.Flags().BoolVar(&opts.clear, "clear", false, "discard the listed changes")
	return cmd
}
