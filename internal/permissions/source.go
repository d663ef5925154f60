package permissions

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

// ErrUnknownKey is returned by a Source that has nothing stored for a key.
var ErrUnknownKey = errors.New("permission key not found")

// Grant allows or denies one role, user or channel.
type Grant struct {
	ID         string                                     `json:"id"`
	Type       discordgo.ApplicationCommandPermissionType `json:"type"`
	Permission bool                                       `json:"permission"`
}

// ApplicationCommandPermission converts g into its wire form.
func (g Grant) ApplicationCommandPermission() *discordgo.ApplicationCommandPermissions {
	return &discordgo.ApplicationCommandPermissions{ID: g.ID, Type: g.Type, Permission: g.Permission}
}

// Source resolves a permission key into grants for a guild.
type Source interface {
	ResolvePermissions(ctx context.Context, guildID, key string) ([]Grant, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, guildID, key string) ([]Grant, error)

func (f SourceFunc) ResolvePermissions(ctx context.Context, guildID, key string) ([]Grant, error) {
	return f(ctx, guildID, key)
}

// Static is an in-memory Source keyed by permission key, shared by all guilds.
type Static map[string][]Grant

func (s Static) ResolvePermissions(_ context.Context, _ string, key string) ([]Grant, error) {
	g, ok := s[key]
	if !ok {
		return nil, ErrUnknownKey
	}
	return g, nil
}

// ParseGrantType maps "role", "user" and "channel" to their wire type.
func ParseGrantType(s string) (discordgo.ApplicationCommandPermissionType, bool) {
	switch s {
	case "role":
		return discordgo.ApplicationCommandPermissionTypeRole, true
	case "user":
		return discordgo.ApplicationCommandPermissionTypeUser, true
	case "channel":
		return discordgo.ApplicationCommandPermissionTypeChannel, true
	}
	return 0, false
}
