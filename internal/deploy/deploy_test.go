package deploy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/logging"
	"github.com/keshon/interactives/internal/permissions"
)

// MockRegistryAPI is a mock implementation of RegistryAPI
type MockRegistryAPI struct {
	mock.Mock
}

func (m *MockRegistryAPI) PutCommands(ctx context.Context, scope Scope, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(ctx, scope, cmds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.ApplicationCommand), args.Error(1)
}

func (m *MockRegistryAPI) PutGuildPermissions(ctx context.Context, guildID string, perms []*discordgo.GuildApplicationCommandPermissions) error {
	args := m.Called(ctx, guildID, perms)
	return args.Error(0)
}

// echoCommands mimics Discord: the payload comes back with ids assigned.
func echoCommands(args mock.Arguments) []*discordgo.ApplicationCommand {
	in := args.Get(2).([]*discordgo.ApplicationCommand)
	out := make([]*discordgo.ApplicationCommand, len(in))
	for i, c := range in {
		cp := *c
		cp.ID = fmt.Sprintf("id-%s", c.Name)
		out[i] = &cp
	}
	return out
}

func handler(context.Context, interactive.Event, interactive.Options) error { return nil }

func commands(typ interactive.CommandType, n int) []*interactive.Command {
	out := make([]*interactive.Command, n)
	for i := range out {
		out[i] = &interactive.Command{Name: fmt.Sprintf("%s-%d", typ, i), Description: "d", Type: typ, Handler: handler}
	}
	return out
}

func TestSynchronizer_Synchronize_Global(t *testing.T) {
	api := &MockRegistryAPI{}
	defs := commands(interactive.ChatInput, 2)

	var echoed []*discordgo.ApplicationCommand
	api.On("PutCommands", mock.Anything, Global(), mock.MatchedBy(func(cmds []*discordgo.ApplicationCommand) bool {
		return len(cmds) == 2 && cmds[0].Name == "ChatInput-0"
	})).Run(func(args mock.Arguments) {
		echoed = echoCommands(args)
	}).Return(nil, nil).Once()

	s := NewSynchronizer(api, nil, logging.Discard())
	res, err := s.Synchronize(context.Background(), defs, Global())

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, Global(), res.Scope)
	assert.Nil(t, echoed[0].Options)
	api.AssertExpectations(t)
	api.AssertNotCalled(t, "PutGuildPermissions", mock.Anything, mock.Anything, mock.Anything)
}

func TestSynchronizer_Synchronize_LimitsAreInclusive(t *testing.T) {
	defs := append(commands(interactive.ChatInput, 100), commands(interactive.User, 5)...)
	defs = append(defs, commands(interactive.Message, 5)...)

	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Guild("g1"), mock.Anything).Return([]*discordgo.ApplicationCommand{}, nil).Once()

	_, err := NewSynchronizer(api, nil, logging.Discard()).Synchronize(context.Background(), defs, Guild("g1"))

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestSynchronizer_Synchronize_OverLimit(t *testing.T) {
	tests := []struct {
		name string
		defs []*interactive.Command
		typ  interactive.CommandType
	}{
		{"chat input", commands(interactive.ChatInput, 101), interactive.ChatInput},
		{"user", commands(interactive.User, 6), interactive.User},
		{"message", commands(interactive.Message, 6), interactive.Message},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &MockRegistryAPI{}

			_, err := NewSynchronizer(api, nil, logging.Discard()).Synchronize(context.Background(), tt.defs, Global())

			var vErr *interactive.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.typ, vErr.Type)
			assert.Equal(t, len(tt.defs), vErr.Count)
			api.AssertNotCalled(t, "PutCommands", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSynchronizer_Synchronize_InvalidDefinition(t *testing.T) {
	api := &MockRegistryAPI{}
	defs := []*interactive.Command{{Name: "broken", Type: interactive.ChatInput}}

	_, err := NewSynchronizer(api, nil, logging.Discard()).Synchronize(context.Background(), defs, Global())

	var cfgErr *interactive.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	api.AssertNotCalled(t, "PutCommands", mock.Anything, mock.Anything, mock.Anything)
}

func TestSynchronizer_Synchronize_TransportError(t *testing.T) {
	api := &MockRegistryAPI{}
	boom := errors.New("503")
	api.On("PutCommands", mock.Anything, Global(), mock.Anything).Return(nil, boom).Once()

	res, err := NewSynchronizer(api, nil, logging.Discard()).Synchronize(context.Background(), commands(interactive.ChatInput, 1), Global())

	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	api.AssertExpectations(t)
}

func TestSynchronizer_Synchronize_WithPermissions(t *testing.T) {
	defs := []*interactive.Command{
		{Name: "config", Description: "d", Type: interactive.ChatInput, Handler: handler, PermissionKeys: []string{"moderators", "owner"}},
		{Name: "ping", Description: "d", Type: interactive.ChatInput, Handler: handler},
		{Name: "Inspect", Type: interactive.User, Handler: handler, PermissionKeys: []string{"moderators"}},
	}
	src := permissions.Static{
		"moderators": {{ID: "role-1", Type: discordgo.ApplicationCommandPermissionTypeRole, Permission: true}},
		"owner":      {{ID: "user-1", Type: discordgo.ApplicationCommandPermissionTypeUser, Permission: true}},
	}

	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Guild("g1"), mock.Anything).
		Return([]*discordgo.ApplicationCommand{
			{ID: "1", Name: "config", Type: discordgo.ChatApplicationCommand},
			{ID: "2", Name: "ping", Type: discordgo.ChatApplicationCommand},
			{ID: "3", Name: "Inspect", Type: discordgo.UserApplicationCommand},
		}, nil).Once()

	var pushed []*discordgo.GuildApplicationCommandPermissions
	api.On("PutGuildPermissions", mock.Anything, "g1", mock.Anything).
		Run(func(args mock.Arguments) {
			pushed = args.Get(2).([]*discordgo.GuildApplicationCommandPermissions)
		}).Return(nil).Once()

	res, err := NewSynchronizer(api, src, logging.Discard()).Synchronize(context.Background(), defs, Guild("g1"), WithPermissions())

	require.NoError(t, err)
	require.Len(t, pushed, 2)
	assert.Equal(t, "1", pushed[0].ID)
	require.Len(t, pushed[0].Permissions, 2)
	assert.Equal(t, "role-1", pushed[0].Permissions[0].ID)
	assert.Equal(t, "user-1", pushed[0].Permissions[1].ID)
	assert.Equal(t, "3", pushed[1].ID)
	assert.Equal(t, pushed, res.Permissions)
	api.AssertExpectations(t)
}

func TestSynchronizer_Synchronize_UnknownPermissionKey(t *testing.T) {
	defs := []*interactive.Command{
		{Name: "config", Description: "d", Type: interactive.ChatInput, Handler: handler, PermissionKeys: []string{"admins"}},
	}
	created := []*discordgo.ApplicationCommand{{ID: "1", Name: "config", Type: discordgo.ChatApplicationCommand}}

	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Guild("g1"), mock.Anything).Return(created, nil).Once()

	res, err := NewSynchronizer(api, permissions.Static{}, logging.Discard()).Synchronize(context.Background(), defs, Guild("g1"), WithPermissions())

	var cfgErr *interactive.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), `"admins"`)
	require.NotNil(t, res)
	assert.Equal(t, created, res.Commands)
	api.AssertNotCalled(t, "PutGuildPermissions", mock.Anything, mock.Anything, mock.Anything)
}

func TestSynchronizer_Synchronize_PermissionsIgnoredForGlobal(t *testing.T) {
	defs := []*interactive.Command{
		{Name: "config", Description: "d", Type: interactive.ChatInput, Handler: handler, PermissionKeys: []string{"admins"}},
	}
	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Global(), mock.Anything).Return([]*discordgo.ApplicationCommand{}, nil).Once()

	_, err := NewSynchronizer(api, permissions.Static{}, logging.Discard()).Synchronize(context.Background(), defs, Global(), WithPermissions())

	require.NoError(t, err)
	api.AssertNotCalled(t, "PutGuildPermissions", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeployer_Deploy_StopsOnFirstError(t *testing.T) {
	boom := errors.New("rate limited")
	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Guild("a"), mock.Anything).Return([]*discordgo.ApplicationCommand{}, nil).Once()
	api.On("PutCommands", mock.Anything, Guild("b"), mock.Anything).Return(nil, boom).Once()

	d := NewDeployer(NewSynchronizer(api, nil, logging.Discard()), 0, logging.Discard())
	results, err := d.Deploy(context.Background(), commands(interactive.ChatInput, 1), []Scope{Guild("a"), Guild("b"), Guild("c")})

	assert.ErrorIs(t, err, boom)
	require.Len(t, results, 1)
	assert.Equal(t, Guild("a"), results[0].Scope)
	api.AssertExpectations(t)
	api.AssertNotCalled(t, "PutCommands", mock.Anything, Guild("c"), mock.Anything)
}

func TestDeployer_Deploy_CanceledContext(t *testing.T) {
	api := &MockRegistryAPI{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDeployer(NewSynchronizer(api, nil, logging.Discard()), 1, logging.Discard())
	_, err := d.Deploy(ctx, commands(interactive.ChatInput, 1), []Scope{Guild("a")})

	assert.Error(t, err)
	api.AssertNotCalled(t, "PutCommands", mock.Anything, mock.Anything, mock.Anything)
}

func TestFingerprint_IgnoresOrderAndIDs(t *testing.T) {
	a := []*discordgo.ApplicationCommand{
		{ID: "1", Name: "ping", Description: "Ping", Type: discordgo.ChatApplicationCommand},
		{ID: "2", Name: "Inspect", Type: discordgo.UserApplicationCommand},
	}
	b := []*discordgo.ApplicationCommand{
		{Name: "Inspect", Type: discordgo.UserApplicationCommand},
		{Name: "ping", Description: "Ping", Type: discordgo.ChatApplicationCommand},
	}
	c := []*discordgo.ApplicationCommand{
		{Name: "ping", Description: "Pong", Type: discordgo.ChatApplicationCommand},
	}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestFingerprint_OptionOrderMatters(t *testing.T) {
	withOptions := func(names ...string) []*discordgo.ApplicationCommand {
		cmd := &discordgo.ApplicationCommand{Name: "config", Description: "Config", Type: discordgo.ChatApplicationCommand}
		for _, n := range names {
			cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{Name: n, Description: n, Type: discordgo.ApplicationCommandOptionString})
		}
		return []*discordgo.ApplicationCommand{cmd}
	}

	assert.Equal(t, Fingerprint(withOptions("key", "value")), Fingerprint(withOptions("key", "value")))
	assert.NotEqual(t, Fingerprint(withOptions("key", "value")), Fingerprint(withOptions("value", "key")))
}

type memoryFingerprints map[string]string

func (m memoryFingerprints) Fingerprint(scope string) (string, error) { return m[scope], nil }

func (m memoryFingerprints) SetFingerprint(scope, fp string) error {
	m[scope] = fp
	return nil
}

func TestDeployer_DeployChanged(t *testing.T) {
	defs := commands(interactive.ChatInput, 1)
	fp := Fingerprint(interactive.ApplicationCommands(defs))
	boom := errors.New("missing access")

	store := memoryFingerprints{"guild:a": fp, "guild:b": "stale"}
	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Guild("b"), mock.Anything).Return([]*discordgo.ApplicationCommand{}, nil).Once()
	api.On("PutCommands", mock.Anything, Guild("c"), mock.Anything).Return(nil, boom).Once()

	d := NewDeployer(NewSynchronizer(api, nil, logging.Discard()), 0, logging.Discard())
	results, skipped, err := d.DeployChanged(context.Background(), defs, []Scope{Guild("a"), Guild("b"), Guild("c")}, store)

	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, Guild("c"), scopeErr.Scope)
	assert.Equal(t, []Scope{Guild("a")}, skipped)
	require.Len(t, results, 1)
	assert.Equal(t, fp, store["guild:b"])
	assert.Empty(t, store["guild:c"])
	api.AssertNotCalled(t, "PutCommands", mock.Anything, Guild("a"), mock.Anything)
	api.AssertExpectations(t)
}

func TestDeployer_DeployChanged_PermissionsForceDeploy(t *testing.T) {
	defs := commands(interactive.ChatInput, 1)
	store := memoryFingerprints{"guild:a": Fingerprint(interactive.ApplicationCommands(defs))}

	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Guild("a"), mock.Anything).Return([]*discordgo.ApplicationCommand{}, nil).Once()
	api.On("PutGuildPermissions", mock.Anything, "a", mock.Anything).Return(nil).Once()

	d := NewDeployer(NewSynchronizer(api, permissions.Static{}, logging.Discard()), 0, logging.Discard())
	_, skipped, err := d.DeployChanged(context.Background(), defs, []Scope{Guild("a")}, store, WithPermissions())

	require.NoError(t, err)
	assert.Empty(t, skipped)
	api.AssertExpectations(t)
}

func TestDeployer_DeployChanged_Force(t *testing.T) {
	defs := commands(interactive.ChatInput, 1)
	store := memoryFingerprints{"global": Fingerprint(interactive.ApplicationCommands(defs))}

	api := &MockRegistryAPI{}
	api.On("PutCommands", mock.Anything, Global(), mock.Anything).Return([]*discordgo.ApplicationCommand{}, nil).Once()

	d := NewDeployer(NewSynchronizer(api, nil, logging.Discard()), 0, logging.Discard())
	results, skipped, err := d.DeployChanged(context.Background(), defs, []Scope{Global()}, store, WithForce())

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Empty(t, skipped)
	api.AssertExpectations(t)
}
