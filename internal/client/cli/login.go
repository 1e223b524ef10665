package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/sheetkeeper/internal/client/storage"
	"github.com/iudanet/sheetkeeper/internal/config"
)

type loginOptions struct {
	token       string
	accessToken string
	email       string
}

// sessionJSON описывает сохраненную сессию
type sessionJSON struct {
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (c *Cli) newLoginCommand() *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange a Google access token for a gateway session",
		Long: `Exchange a Google OAuth access token for a gateway session and store it locally.

With --token an already issued session token is stored as is.
Without flags the access token is read from the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var data *storage.AuthData
			var err error
			switch {
			case opts.token != "":
				data, err = c.authService.UseToken(ctx, opts.token)
			default:
				accessToken := opts.accessToken
				if accessToken == "" {
					accessToken, err = c.io.ReadPassword("Google access token: ")
					if err != nil {
						return WrapExitError(ExitCommandError, "failed to read access token", err)
					}
				}
				data, err = c.authService.Login(ctx, accessToken, opts.email)
			}
			if err != nil {
				return WrapExitError(ExitFailure, "login failed", err)
			}

			c.logger.Info("Session saved", "subject", data.Subject)

			out := sessionJSON{Subject: data.Subject}
			c.out.Println("✓ Login successful!")
			if data.Subject != "" {
				c.out.Printf("Account: %s\n", data.Subject)
			}
			if data.ExpiresAt > 0 {
				expiresAt := time.Unix(data.ExpiresAt, 0).UTC()
				out.ExpiresAt = &expiresAt
				c.out.Printf("Session expires: %s\n", expiresAt.Format(time.RFC3339))
			}
			c.out.SetData(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "", "store an existing gateway session token")
	cmd.Flags().StringVar(&opts.accessToken, "access-token", "", "Google OAuth access token (prompted when empty)")
	cmd.Flags().StringVar(&opts.email, "email", "", "account email shown in status")

	return cmd
}

func (c *Cli) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.authService.Logout(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "logout failed", err)
			}
			c.out.Println("✓ Logged out")
			c.out.SetData(map[string]bool{"loggedOut": true})
			if c.getenv(config.EnvSessionToken) != "" {
				c.out.Printf("Note: %s is set and is still used as the session\n", config.EnvSessionToken)
			}
			return nil
		},
	}
}
