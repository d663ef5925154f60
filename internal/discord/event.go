package discord

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/interactives/internal/interactive"
)

// Event wraps one InteractionCreate. It is safe for concurrent use.
type Event struct {
	s Session
	i *discordgo.Interaction

	kind    interactive.Kind
	command discordgo.ApplicationCommandInteractionData
	comp    discordgo.MessageComponentInteractionData

	group   string
	sub     string
	options []*discordgo.ApplicationCommandInteractionDataOption

	replied atomic.Bool
	// updated is set once the component message was acknowledged with a
	// deferred update, so later edits go through the interaction webhook.
	updated atomic.Bool

	// acked is closed after the first initial response was attempted.
	ackOnce sync.Once
	acked   chan struct{}
	ackWait time.Duration
}

// ackWindow is how long Discord keeps an unacknowledged interaction alive.
const ackWindow = 3 * time.Second

var _ interactive.Event = (*Event)(nil)

func NewEvent(s Session, ic *discordgo.InteractionCreate) *Event {
	e := &Event{s: s, i: ic.Interaction, acked: make(chan struct{}), ackWait: ackWindow}

	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		e.command = ic.ApplicationCommandData()
		e.kind = commandKind(e.command.CommandType)
		e.group, e.sub, e.options = flattenOptions(e.command.Options)
	case discordgo.InteractionMessageComponent:
		e.comp = ic.MessageComponentData()
		e.kind = componentKind(e.comp.ComponentType)
	}
	return e
}

func commandKind(t discordgo.ApplicationCommandType) interactive.Kind {
	switch t {
	case discordgo.ChatApplicationCommand, 0:
		return interactive.KindChatInput
	case discordgo.UserApplicationCommand:
		return interactive.KindUserCommand
	case discordgo.MessageApplicationCommand:
		return interactive.KindMessageCommand
	}
	return interactive.KindUnknown
}

func componentKind(t discordgo.ComponentType) interactive.Kind {
	switch t {
	case discordgo.ButtonComponent:
		return interactive.KindButton
	case discordgo.SelectMenuComponent, discordgo.UserSelectMenuComponent, discordgo.RoleSelectMenuComponent,
		discordgo.MentionableSelectMenuComponent, discordgo.ChannelSelectMenuComponent:
		return interactive.KindSelectMenu
	}
	return interactive.KindUnknown
}

// flattenOptions peels off the group and subcommand layers and returns the
// options given to the invoked leaf.
func flattenOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) (group, sub string, leaf []*discordgo.ApplicationCommandInteractionDataOption) {
	leaf = opts
	if len(leaf) > 0 && leaf[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup {
		group = leaf[0].Name
		leaf = leaf[0].Options
	}
	if len(leaf) > 0 && leaf[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		sub = leaf[0].Name
		leaf = leaf[0].Options
	}
	return group, sub, leaf
}

func (e *Event) Interaction() *discordgo.Interaction { return e.i }

func (e *Event) Kind() interactive.Kind { return e.kind }

func (e *Event) CommandName() string     { return e.command.Name }
func (e *Event) SubcommandGroup() string { return e.group }
func (e *Event) Subcommand() string      { return e.sub }

func (e *Event) Option(name string) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, o := range e.options {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

func (e *Event) Resolved() *discordgo.ApplicationCommandInteractionDataResolved {
	return e.command.Resolved
}

func (e *Event) TargetUser() *discordgo.User {
	if e.kind != interactive.KindUserCommand || e.command.Resolved == nil {
		return nil
	}
	return e.command.Resolved.Users[e.command.TargetID]
}

func (e *Event) TargetMessage() *discordgo.Message {
	if e.kind != interactive.KindMessageCommand || e.command.Resolved == nil {
		return nil
	}
	return e.command.Resolved.Messages[e.command.TargetID]
}

func (e *Event) CustomID() string { return e.comp.CustomID }
func (e *Event) Values() []string { return e.comp.Values }

func (e *Event) GuildID() string   { return e.i.GuildID }
func (e *Event) ChannelID() string { return e.i.ChannelID }

func (e *Event) User() *discordgo.User {
	if e.i.Member != nil && e.i.Member.User != nil {
		return e.i.Member.User
	}
	return e.i.User
}

func (e *Event) Replied() bool { return e.replied.Load() }

func messageFlags(r interactive.Response) discordgo.MessageFlags {
	if r.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

// Reply sends the initial response.
func (e *Event) Reply(ctx context.Context, r interactive.Response) error {
	err := e.s.InteractionRespond(e.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     r.Embeds,
			Components: r.Components,
			Flags:      messageFlags(r),
		},
	}, discordgo.WithContext(ctx))
	if err == nil {
		e.replied.Store(true)
	}
	e.settle()
	return err
}

func (e *Event) settle() {
	e.ackOnce.Do(func() { close(e.acked) })
}

// awaitAck blocks until an initial response was attempted, ctx is done or
// the acknowledgement window passed.
func (e *Event) awaitAck(ctx context.Context) error {
	if e.replied.Load() {
		return nil
	}
	t := time.NewTimer(e.ackWait)
	defer t.Stop()
	select {
	case <-e.acked:
	case <-t.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// FollowUp sends an additional message. It does not change the replied state.
// Discord rejects follow-ups on unacknowledged interactions, so an acknowledgement
// running concurrently is waited for.
func (e *Event) FollowUp(ctx context.Context, r interactive.Response) error {
	if err := e.awaitAck(ctx); err != nil {
		return err
	}
	_, err := e.s.FollowupMessageCreate(e.i, true, &discordgo.WebhookParams{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
		Flags:      messageFlags(r),
	}, discordgo.WithContext(ctx))
	return err
}

// Update edits the message the interaction came from. Content and embeds
// are only touched when set; Components are always replaced.
//
// Before any reply the interaction is acknowledged with a deferred update
// (a deferred message for commands) and the original response is edited.
// After a regular reply a component's message is edited through the channel.
func (e *Event) Update(ctx context.Context, r interactive.Response) error {
	comps := r.Components
	if comps == nil {
		comps = []discordgo.MessageComponent{}
	}

	if !e.replied.Load() {
		ack := discordgo.InteractionResponseDeferredMessageUpdate
		if !e.kind.Component() {
			ack = discordgo.InteractionResponseDeferredChannelMessageWithSource
		}
		err := e.s.InteractionRespond(e.i, &discordgo.InteractionResponse{Type: ack}, discordgo.WithContext(ctx))
		if err != nil {
			e.settle()
			return err
		}
		e.replied.Store(true)
		e.updated.Store(true)
		e.settle()
	}

	if e.updated.Load() || e.i.Message == nil || !e.kind.Component() {
		edit := &discordgo.WebhookEdit{Components: &comps}
		if r.Content != "" {
			edit.Content = &r.Content
		}
		if r.Embeds != nil {
			edit.Embeds = &r.Embeds
		}
		_, err := e.s.InteractionResponseEdit(e.i, edit, discordgo.WithContext(ctx))
		return err
	}

	edit := discordgo.NewMessageEdit(e.i.Message.ChannelID, e.i.Message.ID)
	edit.Components = &comps
	if r.Content != "" {
		edit.Content = &r.Content
	}
	if r.Embeds != nil {
		edit.Embeds = &r.Embeds
	}
	_, err := e.s.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	return err
}
