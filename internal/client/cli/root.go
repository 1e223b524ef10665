package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Version печатается командой --version, задается из main
var Version = "dev"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	ServerURL  string // переопределяет client.server_url
	DBPath     string // переопределяет client.db_path
	Format     string
	Verbose    bool
}

// NewRootCommand creates the root command of the sheetkeeper client.
func (c *Cli) NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetkeeper",
		Short: "Offline-resilient Google Sheets client",
		Long: `sheetkeeper reads and edits Google Sheets through the sheetkeeper gateway.

Every tab that was read once stays available offline. Writes made while the
gateway is unreachable are queued locally and replayed in order once it is back.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, c.opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", c.opts.Format, ValidFormats))
			}
			return c.bootstrap(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.opts.ConfigPath, "config", "", "path to YAML config file")
	flags.StringVar(&c.opts.ServerURL, "server", "", "gateway URL (overrides config)")
	flags.StringVar(&c.opts.DBPath, "db", "", "path to local database (overrides config)")
	flags.StringVar(&c.opts.Format, "format", FormatText, "output format (json|text)")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newStatusCommand(),
		c.newListCommand(),
		c.newTabsCommand(),
		c.newViewCommand(),
		c.newUpdateCommand(),
		c.newAppendCommand(),
		c.newSyncCommand(),
		c.newPendingCommand(),
		c.newExportCommand(),
		c.newWatchCommand(),
		c.newPushCommand(),
	)

	return cmd
}
