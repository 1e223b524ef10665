package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/sheetkeeper/internal/client/sync"
	"github.com/iudanet/sheetkeeper/internal/config"
)

func (c *Cli) newViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <sheet-id> <tab>",
		Short: "Show a tab, falling back to cached data when offline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.prepare(ctx)

			view := c.engine.FetchAndRender(ctx, args[0], args[1])
			return viewError(view)
		},
	}
}

// viewError превращает представление без данных в ошибку команды
func viewError(view sync.View) error {
	switch view.State {
	case sync.ViewSessionExpired:
		return WrapExitError(ExitFailure, "session expired, run 'sheetkeeper login'", view.Err)
	case sync.ViewUnavailable:
		return WrapExitError(ExitFailure, "sheet unavailable", view.Err)
	case sync.ViewError:
		return WrapExitError(ExitFailure, "failed to fetch sheet", view.Err)
	}
	return nil
}

type watchOptions struct {
	interval time.Duration
}

func (c *Cli) newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <sheet-id> <tab>",
		Short: "Keep a tab on screen and sync pending changes whenever the gateway is reachable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheetID, tab := args[0], args[1]

			interval := opts.interval
			if interval <= 0 {
				interval = config.ParseDuration(c.cfg.Client.CheckInterval, time.Minute, c.logger)
			}

			unregister := c.monitor.OnChange(func(online bool) {
				if !online {
					c.out.Println("⚠️  Gateway unreachable, showing cached data")
				}
			})
			defer unregister()

			g, ctx := errgroup.WithContext(cmd.Context())

			// Переход в онлайн запускает воспроизведение очереди
			g.Go(func() error {
				return c.monitor.Run(ctx, func(ctx context.Context) {
					c.replay(ctx, false)
					c.engine.FetchAndRender(ctx, sheetID, tab)
				})
			})

			g.Go(func() error {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-ticker.C:
						c.engine.FetchAndRender(ctx, sheetID, tab)
					}
				}
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return WrapExitError(ExitFailure, "watch stopped", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "refresh interval (default: client.check_interval)")
	return cmd
}
