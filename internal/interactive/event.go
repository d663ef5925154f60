package interactive

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Kind is the family an inbound interaction belongs to.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindChatInput
	KindUserCommand
	KindMessageCommand
	KindButton
	KindSelectMenu
)

func (k Kind) String() string {
	switch k {
	case KindChatInput:
		return "chat input"
	case KindUserCommand:
		return "user command"
	case KindMessageCommand:
		return "message command"
	case KindButton:
		return "button"
	case KindSelectMenu:
		return "select menu"
	default:
		return "unknown"
	}
}

// Component reports whether k is a message component kind.
func (k Kind) Component() bool {
	return k == KindButton || k == KindSelectMenu
}

// Response is what a handler or the dispatcher sends back.
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// Event is an inbound interaction as seen by registries and handlers.
// Implementations track whether an initial reply has been sent.
type Event interface {
	Kind() Kind

	CommandName() string
	SubcommandGroup() string
	Subcommand() string
	// Option returns the raw option supplied for the invoked leaf command.
	Option(name string) (*discordgo.ApplicationCommandInteractionDataOption, bool)
	Resolved() *discordgo.ApplicationCommandInteractionDataResolved
	TargetUser() *discordgo.User
	TargetMessage() *discordgo.Message

	CustomID() string
	Values() []string

	GuildID() string
	ChannelID() string
	User() *discordgo.User

	Replied() bool
	Reply(ctx context.Context, r Response) error
	FollowUp(ctx context.Context, r Response) error
	// Update edits the message a component is attached to. Empty
	// Components clears them.
	Update(ctx context.Context, r Response) error
}

// Path is the sequence of names walked while resolving an event.
type Path []string

func (p Path) String() string {
	return strings.Join(p, "/")
}
