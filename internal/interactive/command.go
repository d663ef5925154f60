package interactive

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// CommandType mirrors discordgo.ApplicationCommandType.
type CommandType uint8

const (
	ChatInput CommandType = CommandType(discordgo.ChatApplicationCommand)
	User      CommandType = CommandType(discordgo.UserApplicationCommand)
	Message   CommandType = CommandType(discordgo.MessageApplicationCommand)
)

func (t CommandType) String() string {
	switch t {
	case ChatInput:
		return "ChatInput"
	case User:
		return "User"
	case Message:
		return "Message"
	default:
		return "Unknown"
	}
}

// Options holds the resolved option values passed to a handler, keyed by the
// declared option name. Optional options that were not supplied map to nil.
type Options map[string]any

func (o Options) String(name string) string {
	v, _ := o[name].(string)
	return v
}

func (o Options) Int(name string) int64 {
	v, _ := o[name].(int64)
	return v
}

func (o Options) Float(name string) float64 {
	v, _ := o[name].(float64)
	return v
}

func (o Options) Bool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

func (o Options) User(name string) *discordgo.User {
	v, _ := o[name].(*discordgo.User)
	return v
}

func (o Options) Message(name string) *discordgo.Message {
	v, _ := o[name].(*discordgo.Message)
	return v
}

// Handler signatures. A returned error or a panic counts as a failed invocation.
type (
	CommandHandler    func(ctx context.Context, ev Event, opts Options) error
	ButtonHandler     func(ctx context.Context, ev Event) error
	SelectMenuHandler func(ctx context.Context, ev Event, values []string) error
)

// Command is a slash command or a context-menu command definition.
type Command struct {
	Name        string
	Description string
	Type        CommandType

	// DefaultMemberPermissions is the permission bitmask a member needs by
	// default. Nil leaves the command open to everyone.
	DefaultMemberPermissions *int64
	// PermissionKeys are resolved to per-guild overwrites at deploy time.
	PermissionKeys []string

	// Contexts limits where the command shows up. Nil means everywhere.
	Contexts *[]discordgo.InteractionContextType
	NSFW     *bool

	// Options applies to ChatInput only.
	Options []*Option
	Handler CommandHandler
}

// Button covers every button carrying CustomID.
type Button struct {
	CustomID string
	Handler  ButtonHandler
}

// SelectMenu covers every select menu carrying CustomID.
type SelectMenu struct {
	CustomID string
	Handler  SelectMenuHandler
}

// Kind is the command's type. An unset Type means a slash command.
func (c *Command) Kind() CommandType {
	if c.Type == 0 {
		return ChatInput
	}
	return c.Type
}

// Set is everything a bot declares.
type Set struct {
	Commands    []*Command
	Buttons     []*Button
	SelectMenus []*SelectMenu
}

// Merge appends the contents of other sets to s.
func (s Set) Merge(others ...Set) Set {
	for _, o := range others {
		s.Commands = append(s.Commands, o.Commands...)
		s.Buttons = append(s.Buttons, o.Buttons...)
		s.SelectMenus = append(s.SelectMenus, o.SelectMenus...)
	}
	return s
}

// ChatInputCommands returns the slash commands of the set.
func (s Set) ChatInputCommands() []*Command {
	var out []*Command
	for _, c := range s.Commands {
		if c.Kind() == ChatInput {
			out = append(out, c)
		}
	}
	return out
}

// ContextMenuCommands returns the user and message commands of the set.
func (s Set) ContextMenuCommands() []*Command {
	var out []*Command
	for _, c := range s.Commands {
		if k := c.Kind(); k == User || k == Message {
			out = append(out, c)
		}
	}
	return out
}

// Only returns a set holding the named commands. Components are kept as is.
func (s Set) Only(names ...string) Set {
	if len(names) == 0 {
		return s
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := Set{Buttons: s.Buttons, SelectMenus: s.SelectMenus}
	for _, c := range s.Commands {
		if _, ok := want[c.Name]; ok {
			out.Commands = append(out.Commands, c)
		}
	}
	return out
}
