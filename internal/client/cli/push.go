package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/sheetkeeper/pkg/api"
)

func (c *Cli) newPushCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Manage the Web Push subscription of the current session",
	}

	cmd.AddCommand(c.newPushSubscribeCommand(), c.newPushUnsubscribeCommand())
	return cmd
}

func (c *Cli) newPushSubscribeCommand() *cobra.Command {
	sub := api.PushSubscription{}

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Register a Web Push subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sub.Valid() {
				return NewExitError(ExitCommandError, "--endpoint, --p256dh and --auth are required")
			}

			if err := c.apiClient.SubscribePush(cmd.Context(), sub); err != nil {
				return WrapExitError(ExitFailure, "failed to subscribe", err)
			}

			c.out.SetData(map[string]any{"subscribed": true, "endpoint": sub.Endpoint})
			c.out.Println("✓ Subscribed")
			return nil
		},
	}

	cmd.Flags().StringVar(&sub.Endpoint, "endpoint", "", "push service endpoint URL")
	cmd.Flags().StringVar(&sub.Keys.P256dh, "p256dh", "", "client public key (base64url)")
	cmd.Flags().StringVar(&sub.Keys.Auth, "auth", "", "client auth secret (base64url)")
	return cmd
}

func (c *Cli) newPushUnsubscribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe",
		Short: "Remove the Web Push subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.apiClient.UnsubscribePush(cmd.Context()); err != nil {
				return WrapExitError(ExitFailure, "failed to unsubscribe", err)
			}

			c.out.SetData(map[string]any{"subscribed": false})
			c.out.Println("✓ Unsubscribed")
			return nil
		},
	}
}
