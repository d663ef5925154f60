package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/interactives/internal/interactive"
)

const EmbedColor = 0xb01e66

// Embed builds an embed in the bot's color.
func Embed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: EmbedColor}
}

// RespondEmbed is a public response carrying one embed.
func RespondEmbed(embed *discordgo.MessageEmbed) interactive.Response {
	return interactive.Response{Embeds: []*discordgo.MessageEmbed{embed}}
}

// RespondEmbedEphemeral is RespondEmbed visible only to the invoking user.
func RespondEmbedEphemeral(embed *discordgo.MessageEmbed) interactive.Response {
	return interactive.Response{Embeds: []*discordgo.MessageEmbed{embed}, Ephemeral: true}
}

// RespondEphemeral is a plain text response visible only to the invoking user.
func RespondEphemeral(content string) interactive.Response {
	return interactive.Response{Content: content, Ephemeral: true}
}
