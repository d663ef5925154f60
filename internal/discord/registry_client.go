package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/interactives/internal/deploy"
)

// RegistryClient talks to Discord's application command endpoints on behalf
// of one application.
type RegistryClient struct {
	s     CommandSession
	appID string
}

var _ deploy.RegistryAPI = (*RegistryClient)(nil)

func NewRegistryClient(s CommandSession, appID string) *RegistryClient {
	return &RegistryClient{s: s, appID: appID}
}

// PutCommands bulk overwrites every command of the scope.
func (c *RegistryClient) PutCommands(ctx context.Context, scope deploy.Scope, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	if cmds == nil {
		// a null body is rejected; an empty list clears the scope
		cmds = []*discordgo.ApplicationCommand{}
	}
	return c.s.ApplicationCommandBulkOverwrite(c.appID, scope.GuildID, cmds, discordgo.WithContext(ctx))
}

func (c *RegistryClient) PutGuildPermissions(ctx context.Context, guildID string, perms []*discordgo.GuildApplicationCommandPermissions) error {
	if guildID == "" {
		return errors.New("permission overwrites need a guild")
	}
	return c.s.ApplicationCommandPermissionsBatchEdit(c.appID, guildID, perms, discordgo.WithContext(ctx))
}

// ApplicationID returns configured when set, otherwise the id of the
// session's own user.
func ApplicationID(s interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	u, err := s.User("@me")
	if err != nil {
		return "", err
	}
	return u.ID, nil
}
