// Package discord adapts discordgo sessions to the interaction engine.
package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Session is the part of *discordgo.Session used to answer interactions.
type Session interface {
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(i *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// CommandSession is the part of *discordgo.Session used to manage the
// application command registry.
type CommandSession interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandPermissionsBatchEdit(appID, guildID string, perms []*discordgo.GuildApplicationCommandPermissions, options ...discordgo.RequestOption) error
}

var (
	_ Session        = (*discordgo.Session)(nil)
	_ CommandSession = (*discordgo.Session)(nil)
)
