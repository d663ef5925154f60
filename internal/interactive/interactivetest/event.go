// Package interactivetest provides an in-memory interactive.Event for tests.
package interactivetest

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/interactives/internal/interactive"
)

// Call records one outbound response.
type Call struct {
	Method   string // Reply, FollowUp or Update
	Response interactive.Response
}

// Event is a scripted interaction. Set the exported fields before use.
// ReplyErr, FollowUpErr and UpdateErr make the matching call fail.
type Event struct {
	EventKind     interactive.Kind
	Name          string
	Group         string
	Sub           string
	Options       []*discordgo.ApplicationCommandInteractionDataOption
	ResolvedData  *discordgo.ApplicationCommandInteractionDataResolved
	Target        *discordgo.User
	TargetMsg     *discordgo.Message
	ID            string
	SelectedItems []string
	Guild         string
	Channel       string
	Author        *discordgo.User

	AlreadyReplied bool
	ReplyErr       error
	FollowUpErr    error
	UpdateErr      error

	mu    sync.Mutex
	calls []Call
}

var _ interactive.Event = (*Event)(nil)

// ChatInput builds a slash command event. Group and subcommand may be empty.
func ChatInput(name, group, sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *Event {
	return &Event{EventKind: interactive.KindChatInput, Name: name, Group: group, Sub: sub, Options: opts}
}

// Button builds a button event.
func Button(customID string) *Event {
	return &Event{EventKind: interactive.KindButton, ID: customID}
}

// SelectMenu builds a select menu event.
func SelectMenu(customID string, values ...string) *Event {
	return &Event{EventKind: interactive.KindSelectMenu, ID: customID, SelectedItems: values}
}

// Opt builds a leaf option as Discord delivers it. Integer and Number values
// must be float64.
func Opt(name string, typ discordgo.ApplicationCommandOptionType, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: typ, Value: value}
}

func (e *Event) Kind() interactive.Kind { return e.EventKind }
func (e *Event) CommandName() string    { return e.Name }
func (e *Event) SubcommandGroup() string {
	return e.Group
}
func (e *Event) Subcommand() string { return e.Sub }

func (e *Event) Option(name string) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, o := range e.Options {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

func (e *Event) Resolved() *discordgo.ApplicationCommandInteractionDataResolved {
	return e.ResolvedData
}

func (e *Event) TargetUser() *discordgo.User       { return e.Target }
func (e *Event) TargetMessage() *discordgo.Message { return e.TargetMsg }
func (e *Event) CustomID() string                  { return e.ID }
func (e *Event) Values() []string                  { return e.SelectedItems }
func (e *Event) GuildID() string                   { return e.Guild }
func (e *Event) ChannelID() string                 { return e.Channel }

func (e *Event) User() *discordgo.User {
	if e.Author == nil {
		return &discordgo.User{ID: "0", Username: "tester"}
	}
	return e.Author
}

func (e *Event) Replied() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.AlreadyReplied
}

func (e *Event) Reply(_ context.Context, r interactive.Response) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Method: "Reply", Response: r})
	if e.ReplyErr != nil {
		return e.ReplyErr
	}
	e.AlreadyReplied = true
	return nil
}

func (e *Event) FollowUp(_ context.Context, r interactive.Response) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Method: "FollowUp", Response: r})
	return e.FollowUpErr
}

func (e *Event) Update(_ context.Context, r interactive.Response) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Method: "Update", Response: r})
	if e.UpdateErr != nil {
		return e.UpdateErr
	}
	e.AlreadyReplied = true
	return nil
}

// Calls returns the recorded responses in call order.
func (e *Event) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Methods returns the names of the recorded calls.
func (e *Event) Methods() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.calls))
	for _, c := range e.calls {
		out = append(out, c.Method)
	}
	return out
}
