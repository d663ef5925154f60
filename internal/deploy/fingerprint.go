package deploy

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Fingerprint hashes the parts of a command set Discord compares, ignoring
// ids and the order of commands, so unchanged scopes can be skipped. Options
// keep their declared order since Discord shows them that way.
func Fingerprint(cmds []*discordgo.ApplicationCommand) string {
	normalized := make([]map[string]any, 0, len(cmds))
	for _, c := range cmds {
		normalized = append(normalized, normalizeCommand(c))
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i]["key"].(string) < normalized[j]["key"].(string)
	})
	data, _ := json.Marshal(normalized)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func normalizeCommand(c *discordgo.ApplicationCommand) map[string]any {
	obj := map[string]any{
		"key":         fmt.Sprintf("%d/%s", c.Type, c.Name),
		"description": c.Description,
	}
	if c.DefaultMemberPermissions != nil {
		obj["permissions"] = *c.DefaultMemberPermissions
	}
	if c.NSFW != nil {
		obj["nsfw"] = *c.NSFW
	}
	if c.Contexts != nil {
		obj["contexts"] = *c.Contexts
	}
	if len(c.Options) > 0 {
		obj["options"] = normalizeOptions(c.Options)
	}
	return obj
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]any {
	normalized := make([]map[string]any, len(opts))
	for i, o := range opts {
		entry := map[string]any{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.ChannelTypes) > 0 {
			entry["channel_types"] = o.ChannelTypes
		}
		if o.MinValue != nil {
			entry["min_value"] = *o.MinValue
		}
		if o.MaxValue != 0 {
			entry["max_value"] = o.MaxValue
		}
		if o.MinLength != nil {
			entry["min_length"] = *o.MinLength
		}
		if o.MaxLength != 0 {
			entry["max_length"] = o.MaxLength
		}
		if o.Autocomplete {
			entry["autocomplete"] = true
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]any, len(o.Choices))
			for j, c := range o.Choices {
				choices[j] = map[string]any{"name": c.Name, "value": c.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		normalized[i] = entry
	}
	return normalized
}
