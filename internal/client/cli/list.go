package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List spreadsheets available to the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.apiClient.ListSpreadsheets(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list spreadsheets", err)
			}

			c.out.SetData(resp.Files)
			if len(resp.Files) == 0 {
				c.out.Println("No spreadsheets found.")
				return nil
			}

			rows := make([][]string, 0, len(resp.Files))
			for _, f := range resp.Files {
				rows = append(rows, []string{f.ID, f.Name, f.ModifiedTime, strings.Join(f.Owners, ", ")})
			}
			c.out.Table([]string{"ID", "NAME", "MODIFIED", "OWNERS"}, rows)
			return nil
		},
	}
}

func (c *Cli) newTabsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs <sheet-id>",
		Short: "List tabs of a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.apiClient.ListTabs(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list tabs", err)
			}

			c.out.SetData(resp)
			c.out.Printf("%s\n", resp.Title)
			for _, tab := range resp.Tabs {
				c.out.Printf("  %s\n", tab)
			}
			return nil
		},
	}
}
