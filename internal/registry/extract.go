package registry

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/interactives/internal/interactive"
)

type extractor func(ev interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error)

// extractors turns a raw option into the value handed to handlers. Entity
// options prefer the resolved payload and fall back to an ID-only object.
var extractors = map[interactive.OptionType]extractor{
	interactive.OptionString: func(_ interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		return valueAs[string](o)
	},
	interactive.OptionInteger: func(_ interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		f, err := valueAs[float64](o)
		if err != nil {
			return nil, err
		}
		return int64(f), nil
	},
	interactive.OptionNumber: func(_ interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		return valueAs[float64](o)
	},
	interactive.OptionBoolean: func(_ interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		return valueAs[bool](o)
	},
	interactive.OptionUser: func(ev interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		id, err := valueAs[string](o)
		if err != nil {
			return nil, err
		}
		if r := ev.Resolved(); r != nil && r.Users[id] != nil {
			return r.Users[id], nil
		}
		return &discordgo.User{ID: id}, nil
	},
	interactive.OptionChannel: func(ev interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		id, err := valueAs[string](o)
		if err != nil {
			return nil, err
		}
		if r := ev.Resolved(); r != nil && r.Channels[id] != nil {
			return r.Channels[id], nil
		}
		return &discordgo.Channel{ID: id}, nil
	},
	interactive.OptionRole: func(ev interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		id, err := valueAs[string](o)
		if err != nil {
			return nil, err
		}
		if r := ev.Resolved(); r != nil && r.Roles[id] != nil {
			return r.Roles[id], nil
		}
		return &discordgo.Role{ID: id}, nil
	},
	// Mentionable yields a *discordgo.User or a *discordgo.Role.
	interactive.OptionMentionable: func(ev interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		id, err := valueAs[string](o)
		if err != nil {
			return nil, err
		}
		if r := ev.Resolved(); r != nil {
			if u := r.Users[id]; u != nil {
				return u, nil
			}
			if role := r.Roles[id]; role != nil {
				return role, nil
			}
		}
		return &discordgo.User{ID: id}, nil
	},
	interactive.OptionAttachment: func(ev interactive.Event, o *discordgo.ApplicationCommandInteractionDataOption) (any, error) {
		id, err := valueAs[string](o)
		if err != nil {
			return nil, err
		}
		if r := ev.Resolved(); r != nil && r.Attachments[id] != nil {
			return r.Attachments[id], nil
		}
		return &discordgo.MessageAttachment{ID: id}, nil
	},
}

func valueAs[T any](o *discordgo.ApplicationCommandInteractionDataOption) (T, error) {
	v, ok := o.Value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("option %q: unexpected value %T", o.Name, o.Value)
	}
	return v, nil
}

// extractOptions builds the handler arguments from the declared leaf options.
func extractOptions(ev interactive.Event, declared []*interactive.Option) (interactive.Options, error) {
	opts := make(interactive.Options, len(declared))
	for _, d := range declared {
		raw, ok := ev.Option(d.Name)
		if !ok || raw == nil {
			if d.Required {
				return nil, fmt.Errorf("required option %q is missing", d.Name)
			}
			opts[d.Name] = nil
			continue
		}
		if raw.Type != discordgo.ApplicationCommandOptionType(d.Type) {
			return nil, fmt.Errorf("option %q: expected %s, got %s", d.Name, d.Type, raw.Type)
		}
		ext, ok := extractors[d.Type]
		if !ok {
			return nil, fmt.Errorf("option %q: no extractor for %s", d.Name, d.Type)
		}
		v, err := ext(ev, raw)
		if err != nil {
			return nil, err
		}
		opts[d.Name] = v
	}
	return opts, nil
}
