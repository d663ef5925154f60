package interactive

import "github.com/bwmarrin/discordgo"

// ApplicationCommand converts the definition into its wire form.
func (c *Command) ApplicationCommand() *discordgo.ApplicationCommand {
	ac := &discordgo.ApplicationCommand{
		Type:                     discordgo.ApplicationCommandType(c.Kind()),
		Name:                     c.Name,
		DefaultMemberPermissions: c.DefaultMemberPermissions,
		Contexts:                 c.Contexts,
		NSFW:                     c.NSFW,
	}
	if c.Kind() == ChatInput {
		ac.Description = c.Description
		ac.Options = applicationCommandOptions(c.Options)
	}
	return ac
}

// ApplicationCommands converts every definition, keeping order.
func ApplicationCommands(defs []*Command) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ApplicationCommand())
	}
	return out
}

func applicationCommandOptions(opts []*Option) []*discordgo.ApplicationCommandOption {
	if len(opts) == 0 {
		return nil
	}
	out := make([]*discordgo.ApplicationCommandOption, 0, len(opts))
	for _, o := range opts {
		ao := &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionType(o.Type),
			Name:         o.Name,
			Description:  o.Description,
			ChannelTypes: o.ChannelTypes,
			Autocomplete: o.Autocomplete,
			MinValue:     o.MinValue,
			MinLength:    o.MinLength,
			MaxLength:    o.MaxLength,
			Options:      applicationCommandOptions(o.Options),
		}
		if !o.Type.Branch() {
			ao.Required = o.Required
		}
		if o.MaxValue != nil {
			ao.MaxValue = *o.MaxValue
		}
		for _, ch := range o.Choices {
			ao.Choices = append(ao.Choices, &discordgo.ApplicationCommandOptionChoice{Name: ch.Name, Value: ch.Value})
		}
		out = append(out, ao)
	}
	return out
}
