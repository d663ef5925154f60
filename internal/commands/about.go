package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/buildinfo"

	"github.com/keshon/interactives/internal/discord"
	"github.com/keshon/interactives/internal/interactive"
)

func aboutModule() interactive.Set {
	return interactive.Set{Commands: []*interactive.Command{{
		Name:        "about",
		Description: "Shows info about the bot.",
		Type:        interactive.ChatInput,
		Handler:     aboutHandler,
	}}}
}

func buildAboutEmbed(info buildinfo.BuildInfo) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("**%s**", info.Project)
	if info.Description != "" {
		desc += ": " + info.Description
	}
	emb := discord.Embed("ℹ️ About", desc)
	emb.Fields = []*discordgo.MessageEmbedField{
		{Name: "Version", Value: fmt.Sprintf("%s (%s)", info.Version, info.Commit), Inline: true},
		{Name: "Built", Value: info.BuildTime, Inline: true},
		{Name: "Runtime", Value: fmt.Sprintf("Go %s, %s", strings.TrimPrefix(info.GoVersion, "go"), info.Platform)},
	}
	return emb
}

func aboutHandler(ctx context.Context, ev interactive.Event, _ interactive.Options) error {
	return ev.Reply(ctx, discord.RespondEmbed(buildAboutEmbed(buildinfo.Get())))
}
