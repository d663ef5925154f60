package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/permissions"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	root := a.root()
	root.SetArgs(args)
	root.SetOut(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseGrant(t *testing.T) {
	g, err := parseGrant("role:123")
	require.NoError(t, err)
	assert.Equal(t, permissions.Grant{ID: "123", Type: discordgo.ApplicationCommandPermissionTypeRole, Permission: true}, g)

	g, err = parseGrant("!channel:9")
	require.NoError(t, err)
	assert.False(t, g.Permission)
	assert.Equal(t, "!channel:9", formatGrant(g))

	for _, bad := range []string{"role", "role:", "team:1"} {
		_, err := parseGrant(bad)
		assert.Error(t, err, bad)
	}
}

func TestReportCommand(t *testing.T) {
	out, err := run(t, "report")

	require.NoError(t, err)
	assert.Contains(t, out, "slash command")
	assert.Contains(t, out, "subcommandgroup")
	assert.Contains(t, out, "testMessageButton")
}

func TestPrintReports_RegisterFailure(t *testing.T) {
	press := func(context.Context, interactive.Event) error { return nil }
	set := interactive.Set{
		Commands: []*interactive.Command{{Name: "ping", Description: "Ping", Handler: func(context.Context, interactive.Event, interactive.Options) error { return nil }}},
		Buttons:  []*interactive.Button{{CustomID: "twice", Handler: press}, {CustomID: "twice", Handler: press}},
	}
	var out bytes.Buffer

	err := printReports(&out, set)

	var cfgErr *interactive.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, out.String(), "twice")
	assert.Contains(t, out.String(), "ping")
}

func TestReportCommand_UnknownModule(t *testing.T) {
	_, err := run(t, "report", "--only", "nope")
	assert.Error(t, err)
}

func TestPermsCommands(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "test.env")
	store := filepath.Join(dir, "store.json")
	require.NoError(t, os.WriteFile(env, []byte("DISCORD_TOKEN=token\nSTORAGE_PATH="+store+"\n"), 0o600))
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("STORAGE_PATH", "")
	os.Unsetenv("DISCORD_TOKEN")
	os.Unsetenv("STORAGE_PATH")

	_, err := run(t, "--env-file", env, "perms", "set", "moderators", "role:1", "!user:2")
	require.NoError(t, err)

	out, err := run(t, "--env-file", env, "perms", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "moderators")
	assert.Contains(t, out, "role:1 !user:2")

	_, err = run(t, "--env-file", env, "perms", "delete", "moderators")
	require.NoError(t, err)
	out, err = run(t, "--env-file", env, "perms", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "moderators")
}

func TestSyncCommand_NeedsScope(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	_, err := run(t, "--env-file", filepath.Join(t.TempDir(), "none.env"), "sync")
	assert.ErrorContains(t, err, "nothing to deploy to")
}
