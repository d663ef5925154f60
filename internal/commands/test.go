package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/interactives/internal/interactive"
)

const (
	testButtonID     = "testMessageButton"
	testSelectMenuID = "testSelectMenu"
)

var errTest = errors.New("test")

func adminOnly() *int64 {
	p := int64(discordgo.PermissionAdministrator)
	return &p
}

// testModule exercises every interactive family: nested subcommands, every
// scalar option type, a button, a select menu and both context menus.
func testModule() interactive.Set {
	return interactive.Set{
		Commands: []*interactive.Command{
			{
				Name:                     "test",
				Description:              "test",
				Type:                     interactive.ChatInput,
				DefaultMemberPermissions: adminOnly(),
				Options: []*interactive.Option{
					{Name: "button", Description: "test button", Type: interactive.OptionSubcommand, Handler: testButtonReply},
					{Name: "selectmenu", Description: "test select menu", Type: interactive.OptionSubcommand, Handler: testSelectMenuReply},
					{Name: "error", Description: "test error", Type: interactive.OptionSubcommand, Handler: func(context.Context, interactive.Event, interactive.Options) error {
						return errTest
					}},
					{
						Name: "subcommandgroup", Description: "test subcommand group", Type: interactive.OptionSubcommandGroup,
						Options: []*interactive.Option{{
							Name: "subcommand", Description: "test subcommand", Type: interactive.OptionSubcommand,
							Options: []*interactive.Option{
								{Name: "string", Description: "string", Type: interactive.OptionString},
								{Name: "integer", Description: "integer", Type: interactive.OptionInteger},
								{Name: "boolean", Description: "boolean", Type: interactive.OptionBoolean},
								{Name: "user", Description: "user", Type: interactive.OptionUser},
								{Name: "channel", Description: "channel", Type: interactive.OptionChannel},
								{Name: "role", Description: "role", Type: interactive.OptionRole},
								{Name: "mention", Description: "mention", Type: interactive.OptionMentionable},
								{Name: "number", Description: "number", Type: interactive.OptionNumber},
							},
							Handler: func(ctx context.Context, ev interactive.Event, opts interactive.Options) error {
								return replyJSON(ctx, ev, opts)
							},
						}},
					},
				},
			},
			{
				Name:                     "testUserCommand",
				Type:                     interactive.User,
				DefaultMemberPermissions: adminOnly(),
				Handler: func(ctx context.Context, ev interactive.Event, opts interactive.Options) error {
					return replyJSON(ctx, ev, opts.User("user"))
				},
			},
			{
				Name:                     "testMessageCommand",
				Type:                     interactive.Message,
				DefaultMemberPermissions: adminOnly(),
				Handler: func(ctx context.Context, ev interactive.Event, opts interactive.Options) error {
					return replyJSON(ctx, ev, opts.Message("message"))
				},
			},
		},
		Buttons: []*interactive.Button{{
			CustomID: testButtonID,
			Handler: func(ctx context.Context, ev interactive.Event) error {
				return ev.Update(ctx, interactive.Response{Content: testButtonID})
			},
		}},
		SelectMenus: []*interactive.SelectMenu{{
			CustomID: testSelectMenuID,
			Handler: func(ctx context.Context, ev interactive.Event, values []string) error {
				return ev.Update(ctx, interactive.Response{Content: strings.Join(values, "|")})
			},
		}},
	}
}

func testButtonReply(ctx context.Context, ev interactive.Event, _ interactive.Options) error {
	return ev.Reply(ctx, interactive.Response{
		Content: testButtonID,
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: testButtonID, Style: discordgo.PrimaryButton, CustomID: testButtonID},
		}}},
	})
}

func testSelectMenuReply(ctx context.Context, ev interactive.Event, _ interactive.Options) error {
	return ev.Reply(ctx, interactive.Response{
		Content: testSelectMenuID,
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID: testSelectMenuID,
				Options:  []discordgo.SelectMenuOption{{Label: testSelectMenuID, Value: testSelectMenuID}},
			},
		}}},
	})
}

func replyJSON(ctx context.Context, ev interactive.Event, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}
	return ev.Reply(ctx, interactive.Response{Content: "```json\n" + string(data) + "\n```"})
}
