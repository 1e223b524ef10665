package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/sheetkeeper/internal/client/auth"
)

// statusJSON описывает состояние клиента
type statusJSON struct {
	Session    sessionStatusJSON `json:"session"`
	LastSyncAt *time.Time        `json:"lastSyncAt,omitempty"`
	LastReplay *lastReplayJSON   `json:"lastReplay,omitempty"`
	Server     string            `json:"server"`
	CachedTabs []string          `json:"cachedTabs"`
	Pending    int               `json:"pending"`
	Dead       int               `json:"dead"`
	Online     bool              `json:"online"`
}

// lastReplayJSON описывает итог последнего прохода очереди
type lastReplayJSON struct {
	FinishedAt   time.Time `json:"finishedAt"`
	Error        string    `json:"error,omitempty"`
	Attempted    int       `json:"attempted"`
	Settled      int       `json:"settled"`
	Remaining    int       `json:"remaining"`
	DeadLettered int       `json:"deadLettered"`
}

type sessionStatusJSON struct {
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	Source        string     `json:"source"`
	Subject       string     `json:"subject,omitempty"`
	Authenticated bool       `json:"authenticated"`
}

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, connectivity and pending changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := c.authService.Status(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to check session", err)
			}

			report := statusJSON{
				Server:     c.cfg.Client.ServerURL,
				Online:     c.monitor.Check(ctx),
				Pending:    len(c.queue.ReadAll(ctx)),
				Dead:       len(c.queue.ReadDead(ctx)),
				CachedTabs: c.cache.Keys(ctx),
				Session: sessionStatusJSON{
					Source:        session.Source,
					Subject:       session.Subject,
					Authenticated: session.Authenticated,
				},
			}
			if !session.ExpiresAt.IsZero() {
				expiresAt := session.ExpiresAt.UTC()
				report.Session.ExpiresAt = &expiresAt
			}

			// Ошибка чтения метаданных не прерывает команду
			if rec, err := c.db.GetReplayRecord(ctx); err != nil {
				c.logger.Warn("Failed to get replay record", "error", err)
			} else if rec != nil {
				if !rec.LastSettledAt.IsZero() {
					lastSync := rec.LastSettledAt.UTC()
					report.LastSyncAt = &lastSync
				}
				report.LastReplay = &lastReplayJSON{
					FinishedAt:   rec.FinishedAt.UTC(),
					Error:        rec.Error,
					Attempted:    rec.Attempted,
					Settled:      rec.Settled,
					Remaining:    rec.Remaining,
					DeadLettered: rec.DeadLettered,
				}
			}

			c.out.SetData(report)
			c.printStatus(report)
			return nil
		},
	}
}

func (c *Cli) printStatus(report statusJSON) {
	c.out.Println("=== Status ===")
	c.out.Println()

	switch {
	case report.Session.Source == auth.SourceNone:
		c.out.Println("Session: Not authenticated")
		c.out.Println("Run 'sheetkeeper login' to authenticate.")
	case !report.Session.Authenticated:
		c.out.Printf("Session: Expired (%s)\n", report.Session.Source)
		c.out.Println("⚠️  Please login again.")
	default:
		c.out.Printf("Session: Authenticated (%s)\n", report.Session.Source)
	}
	if report.Session.Subject != "" {
		c.out.Printf("Account: %s\n", report.Session.Subject)
	}
	if report.Session.ExpiresAt != nil {
		c.out.Printf("Session expires: %s\n", report.Session.ExpiresAt.Format(time.RFC3339))
	}

	c.out.Println()
	if report.Online {
		c.out.Printf("Gateway: %s (online)\n", report.Server)
	} else {
		c.out.Printf("Gateway: %s (offline)\n", report.Server)
	}
	if report.LastSyncAt != nil {
		c.out.Printf("Last sync: %s\n", report.LastSyncAt.Format(time.RFC3339))
	}
	if r := report.LastReplay; r != nil {
		c.out.Printf("Last replay: %s, %d of %d sent, %d dead-lettered\n",
			r.FinishedAt.Format(time.RFC3339), r.Settled, r.Attempted, r.DeadLettered)
		if r.Error != "" {
			c.out.Printf("⚠️  Last replay stopped: %s\n", r.Error)
		}
	}

	c.out.Println()
	if report.Pending > 0 {
		c.out.Printf("⚠️  Pending sync: %d change(s) waiting to be synchronized\n", report.Pending)
		c.out.Println("Run 'sheetkeeper sync' to synchronize with the gateway.")
	} else {
		c.out.Println("✓ No pending changes")
	}
	if report.Dead > 0 {
		c.out.Printf("✗ %d change(s) could not be synced, see 'sheetkeeper pending --dead'\n", report.Dead)
	}

	c.out.Printf("Cached tabs: %d\n", len(report.CachedTabs))
	for _, key := range report.CachedTabs {
		c.out.Printf("  %s\n", key)
	}
}
