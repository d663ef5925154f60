package interactive_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/interactives/internal/interactive"
)

func noop(context.Context, interactive.Event, interactive.Options) error { return nil }

func configCommand() *interactive.Command {
	minLen := 2
	return &interactive.Command{
		Name:        "config",
		Description: "Manage settings",
		Type:        interactive.ChatInput,
		Options: []*interactive.Option{
			{
				Name: "set", Description: "Set values", Type: interactive.OptionSubcommandGroup,
				Options: []*interactive.Option{
					{
						Name: "value", Description: "Set a value", Type: interactive.OptionSubcommand, Handler: noop,
						Options: []*interactive.Option{
							{Name: "key", Description: "Key", Type: interactive.OptionString, Required: true, MinLength: &minLen},
							{Name: "level", Description: "Level", Type: interactive.OptionInteger, Choices: []interactive.Choice{{Name: "one", Value: 1}}},
						},
					},
				},
			},
			{Name: "show", Description: "Show values", Type: interactive.OptionSubcommand, Handler: noop},
		},
	}
}

func TestCommand_Validate_Success(t *testing.T) {
	require.NoError(t, configCommand().Validate())

	ctx := &interactive.Command{Name: "Inspect", Type: interactive.User, Handler: noop}
	require.NoError(t, ctx.Validate())
}

func TestCommand_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *interactive.Command)
		path   string
	}{
		{
			name: "duplicate sibling",
			mutate: func(c *interactive.Command) {
				c.Options = append(c.Options, &interactive.Option{Name: "show", Description: "again", Type: interactive.OptionSubcommand, Handler: noop})
			},
			path: "config/show",
		},
		{
			name: "leaf inside group",
			mutate: func(c *interactive.Command) {
				c.Options[0].Options = append(c.Options[0].Options, &interactive.Option{Name: "flag", Description: "x", Type: interactive.OptionBoolean})
			},
			path: "config/set/flag",
		},
		{
			name: "group inside group",
			mutate: func(c *interactive.Command) {
				c.Options[0].Options[0].Options = []*interactive.Option{{Name: "deep", Description: "x", Type: interactive.OptionSubcommandGroup}}
			},
			path: "config/set/value/deep",
		},
		{
			name: "subcommand without handler",
			mutate: func(c *interactive.Command) {
				c.Options[1].Handler = nil
			},
			path: "config/show",
		},
		{
			name: "mixed subcommands and values",
			mutate: func(c *interactive.Command) {
				c.Options = append(c.Options, &interactive.Option{Name: "verbose", Description: "x", Type: interactive.OptionBoolean})
			},
			path: "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := configCommand()
			tt.mutate(c)

			err := c.Validate()
			var cfgErr *interactive.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.path, cfgErr.Path.String())
		})
	}
}

func TestCommand_Validate_ContextMenuWithOptions(t *testing.T) {
	c := &interactive.Command{
		Name: "Report", Type: interactive.Message, Handler: noop,
		Options: []*interactive.Option{{Name: "x", Type: interactive.OptionString}},
	}
	var cfgErr *interactive.ConfigurationError
	assert.ErrorAs(t, c.Validate(), &cfgErr)
}

func TestCommand_ApplicationCommand(t *testing.T) {
	perms := int64(discordgo.PermissionManageGuild)
	c := configCommand()
	c.DefaultMemberPermissions = &perms

	ac := c.ApplicationCommand()

	assert.Equal(t, discordgo.ChatApplicationCommand, ac.Type)
	assert.Equal(t, "config", ac.Name)
	assert.Equal(t, &perms, ac.DefaultMemberPermissions)
	require.Len(t, ac.Options, 2)

	group := ac.Options[0]
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommandGroup, group.Type)
	require.Len(t, group.Options, 1)
	leaves := group.Options[0].Options
	require.Len(t, leaves, 2)
	assert.True(t, leaves[0].Required)
	assert.Equal(t, 2, *leaves[0].MinLength)
	require.Len(t, leaves[1].Choices, 1)
	assert.Equal(t, "one", leaves[1].Choices[0].Name)
}

func TestCommand_ApplicationCommand_ContextMenuDropsDescription(t *testing.T) {
	c := &interactive.Command{Name: "Inspect", Description: "ignored", Type: interactive.User, Handler: noop}

	ac := c.ApplicationCommand()

	assert.Equal(t, discordgo.UserApplicationCommand, ac.Type)
	assert.Empty(t, ac.Description)
	assert.Nil(t, ac.Options)
}

func TestSet_SplitAndOnly(t *testing.T) {
	set := interactive.Set{
		Commands: []*interactive.Command{
			configCommand(),
			{Name: "Inspect", Type: interactive.User, Handler: noop},
			{Name: "Quote", Type: interactive.Message, Handler: noop},
		},
		Buttons: []*interactive.Button{{CustomID: "ok"}},
	}

	assert.Len(t, set.ChatInputCommands(), 1)
	assert.Len(t, set.ContextMenuCommands(), 2)

	only := set.Only("Quote")
	require.Len(t, only.Commands, 1)
	assert.Equal(t, "Quote", only.Commands[0].Name)
	assert.Len(t, only.Buttons, 1)
}

func TestHandlerError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &interactive.HandlerError{Family: "button", Path: interactive.Path{"ok"}, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `button "ok" failed`)
}

func TestCommand_UnsetTypeIsChatInput(t *testing.T) {
	c := &interactive.Command{Name: "ping", Description: "Ping", Handler: noop}

	require.NoError(t, c.Validate())
	assert.Equal(t, interactive.ChatInput, c.Kind())
	assert.Equal(t, discordgo.ChatApplicationCommand, c.ApplicationCommand().Type)
	assert.Equal(t, "Ping", c.ApplicationCommand().Description)

	set := interactive.Set{Commands: []*interactive.Command{c}}
	assert.Len(t, set.ChatInputCommands(), 1)
	assert.Empty(t, set.ContextMenuCommands())
}
