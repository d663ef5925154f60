// Package dispatch routes inbound interactions to their registry and makes
// sure the user sees a reply when something goes wrong.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/keshon/commandkit"
	"golang.org/x/sync/errgroup"

	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/registry"
)

const (
	commandErrorMessage   = "There was an error while executing this command!"
	componentErrorMessage = "There was an error while replying this message component!"
)

// ErrUnknownKind is reported for interactions no family handles.
var ErrUnknownKind = errors.New("unsupported interaction kind")

// Outcome is the result of one dispatch.
type Outcome struct {
	Family string
	Path   interactive.Path
	Err    error
}

func (o *Outcome) OK() bool { return o.Err == nil }

// Dispatcher owns one registry per family.
type Dispatcher struct {
	chatInput   *registry.ChatInput
	contextMenu *registry.ContextMenu
	buttons     *registry.Buttons
	selectMenus *registry.SelectMenus

	families []registry.Family
	byKind   map[interactive.Kind]registry.Family
	mws      []commandkit.Middleware
	log      *log.Logger
}

// New builds an empty dispatcher. The last of mws is outermost; panic
// recovery sits innermost so every middleware sees a panic as an error.
func New(logger *log.Logger, mws ...commandkit.Middleware) *Dispatcher {
	d := &Dispatcher{
		chatInput:   registry.NewChatInput(),
		contextMenu: registry.NewContextMenu(),
		buttons:     registry.NewButtons(),
		selectMenus: registry.NewSelectMenus(),
		mws:         append([]commandkit.Middleware{WithRecover()}, mws...),
		log:         logger,
	}
	d.families = []registry.Family{d.chatInput, d.contextMenu, d.buttons, d.selectMenus}
	d.byKind = map[interactive.Kind]registry.Family{
		interactive.KindChatInput:      d.chatInput,
		interactive.KindUserCommand:    d.contextMenu,
		interactive.KindMessageCommand: d.contextMenu,
		interactive.KindButton:         d.buttons,
		interactive.KindSelectMenu:     d.selectMenus,
	}
	return d
}

// Register loads set into every family and logs each family's tree. A family
// that fails keeps what it had; the others are still updated.
func (d *Dispatcher) Register(set interactive.Set) error {
	var errs []error
	for _, f := range d.families {
		if err := f.Register(set); err != nil {
			d.log.Error("Failed to register", "family", f.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			continue
		}
		rep := f.Report()
		d.log.Infof("Registered %d %s(s)\n%s", rep.Len(), f.Name(), rep)
	}
	return errors.Join(errs...)
}

// Reports returns the current tree of every family.
func (d *Dispatcher) Reports() []*registry.Report {
	out := make([]*registry.Report, 0, len(d.families))
	for _, f := range d.families {
		out = append(out, f.Report())
	}
	return out
}

// Dispatch resolves and runs the handler for ev. On a miss or a failure it
// sends a generic error reply; the handler's error is only logged.
func (d *Dispatcher) Dispatch(ctx context.Context, ev interactive.Event) *Outcome {
	fam, ok := d.byKind[ev.Kind()]
	if !ok {
		d.log.Warn("Unsupported interaction", "kind", ev.Kind())
		return &Outcome{Err: ErrUnknownKind}
	}

	m, path := fam.Resolve(ev)
	out := &Outcome{Family: fam.Name(), Path: path}
	logger := d.log.With("family", fam.Name(), "path", path.String())

	if m == nil {
		logger.Warn("Interaction is not registered")
		out.Err = interactive.ErrLookupMiss
	} else {
		cmd := commandkit.Apply(&invocation{family: fam, match: m}, d.mws...)
		if err := cmd.Run(ctx, &commandkit.Invocation{Args: path, Data: ev}); err != nil {
			out.Err = asHandlerError(fam.Name(), path, err)
		}
	}

	if out.Err == nil {
		logger.Debug("Interaction handled")
		return out
	}

	logger.Error("Interaction failed", "err", out.Err)
	d.fallback(context.WithoutCancel(ctx), ev, logger)
	return out
}

// fallback tells the user something went wrong. Commands get a reply, or a
// follow-up when they already replied. Components get their buttons cleared
// and a follow-up, both attempted.
func (d *Dispatcher) fallback(ctx context.Context, ev interactive.Event, logger *log.Logger) {
	if ev.Kind().Component() {
		var g errgroup.Group
		g.Go(func() error {
			err := ev.Update(ctx, interactive.Response{Components: []discordgo.MessageComponent{}})
			if err != nil {
				logger.Error("Failed to clear components", "err", err)
			}
			return err
		})
		g.Go(func() error {
			err := ev.FollowUp(ctx, interactive.Response{Content: componentErrorMessage, Ephemeral: true})
			if err != nil {
				logger.Error("Failed to send error follow-up", "err", err)
			}
			return err
		})
		_ = g.Wait()
		return
	}

	resp := interactive.Response{Content: commandErrorMessage, Ephemeral: true}
	if ev.Replied() {
		if err := ev.FollowUp(ctx, resp); err != nil {
			logger.Error("Failed to send error follow-up", "err", err)
		}
		return
	}
	if err := ev.Reply(ctx, resp); err != nil {
		logger.Error("Failed to send error reply", "err", err)
	}
}

func asHandlerError(family string, path interactive.Path, err error) error {
	var he *interactive.HandlerError
	if errors.As(err, &he) {
		return err
	}
	return &interactive.HandlerError{Family: family, Path: path, Err: err}
}

// invocation adapts a resolved match to a commandkit command so the
// middleware chain can wrap it.
type invocation struct {
	family registry.Family
	match  *registry.Match
}

func (c *invocation) Name() string        { return c.match.Path.String() }
func (c *invocation) Description() string { return c.family.Name() }

func (c *invocation) Run(ctx context.Context, inv *commandkit.Invocation) error {
	ev, ok := inv.Data.(interactive.Event)
	if !ok {
		return fmt.Errorf("unexpected invocation data %T", inv.Data)
	}
	return c.family.Invoke(ctx, ev, c.match)
}
