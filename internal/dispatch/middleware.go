package dispatch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/keshon/commandkit"

	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/storage"
)

// WithRecover turns a handler panic into a *interactive.HandlerError.
func WithRecover() commandkit.Middleware {
	return func(c commandkit.Command) commandkit.Command {
		return commandkit.Wrap(c, func(ctx context.Context, inv *commandkit.Invocation) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &interactive.HandlerError{
						Family: c.Description(),
						Path:   interactive.Path(inv.Args),
						Panic:  r,
					}
				}
			}()
			return c.Run(ctx, inv)
		})
	}
}

// WithTiming logs how long each handler took.
func WithTiming(logger *log.Logger) commandkit.Middleware {
	return func(c commandkit.Command) commandkit.Command {
		return commandkit.Wrap(c, func(ctx context.Context, inv *commandkit.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)
			logger.Debug("Handler finished", "family", c.Description(), "path", c.Name(), "took", time.Since(start), "failed", err != nil)
			return err
		})
	}
}

// HistoryStore keeps a per-guild interaction history.
type HistoryStore interface {
	AppendInteraction(guildID string, rec storage.InteractionRecord) error
}

// WithHistory records every guild interaction after it ran. Direct messages
// are not recorded.
func WithHistory(store HistoryStore, logger *log.Logger) commandkit.Middleware {
	return func(c commandkit.Command) commandkit.Command {
		return commandkit.Wrap(c, func(ctx context.Context, inv *commandkit.Invocation) error {
			err := c.Run(ctx, inv)

			ev, ok := inv.Data.(interactive.Event)
			if !ok || ev.GuildID() == "" {
				return err
			}
			user := ev.User()
			rec := storage.InteractionRecord{
				ChannelID: ev.ChannelID(),
				Family:    c.Description(),
				Path:      c.Name(),
				Failed:    err != nil,
				Datetime:  time.Now(),
			}
			if user != nil {
				rec.UserID = user.ID
				rec.Username = user.Username
			}
			if e := store.AppendInteraction(ev.GuildID(), rec); e != nil {
				logger.Warn("Failed to record interaction", "path", c.Name(), "err", e)
			}
			return err
		})
	}
}
