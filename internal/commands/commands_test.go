package commands

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/buildinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/interactives/internal/deploy"
	"github.com/keshon/interactives/internal/dispatch"
	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/interactive/interactivetest"
	"github.com/keshon/interactives/internal/logging"
)

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	d := dispatch.New(logging.Discard())
	require.NoError(t, d.Register(All()))
	return d
}

func TestAll_Valid(t *testing.T) {
	set := All()

	for _, c := range set.Commands {
		assert.NoError(t, c.Validate(), c.Name)
	}
	assert.NoError(t, deploy.CheckLimits(set.Commands))
	assert.Len(t, set.ContextMenuCommands(), 2)
	assert.Len(t, set.Buttons, 1)
	assert.Len(t, set.SelectMenus, 1)
}

func TestSelect(t *testing.T) {
	set, err := Select("about")
	require.NoError(t, err)
	require.Len(t, set.Commands, 1)
	assert.Equal(t, "about", set.Commands[0].Name)

	_, err = Select("nope")
	assert.Error(t, err)

	all, err := Select()
	require.NoError(t, err)
	assert.Equal(t, len(All().Commands), len(all.Commands))
}

func TestTest_SubcommandEchoesOptions(t *testing.T) {
	d := newDispatcher(t)
	ev := interactivetest.ChatInput("test", "subcommandgroup", "subcommand",
		interactivetest.Opt("string", discordgo.ApplicationCommandOptionString, "hi"),
		interactivetest.Opt("integer", discordgo.ApplicationCommandOptionInteger, float64(3)),
	)

	out := d.Dispatch(context.Background(), ev)

	require.True(t, out.OK(), "%v", out.Err)
	calls := ev.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Response.Content, `"string": "hi"`)
	assert.Contains(t, calls[0].Response.Content, `"integer": 3`)
	assert.Contains(t, calls[0].Response.Content, `"role": null`)
}

func TestTest_ErrorFallsBack(t *testing.T) {
	d := newDispatcher(t)
	ev := interactivetest.ChatInput("test", "", "error")

	out := d.Dispatch(context.Background(), ev)

	assert.ErrorIs(t, out.Err, errTest)
	calls := ev.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Response.Ephemeral)
}

func TestTest_ButtonRoundTrip(t *testing.T) {
	d := newDispatcher(t)

	ev := interactivetest.ChatInput("test", "", "button")
	require.True(t, d.Dispatch(context.Background(), ev).OK())
	require.Len(t, ev.Calls(), 1)
	row := ev.Calls()[0].Response.Components[0].(discordgo.ActionsRow)
	btn := row.Components[0].(discordgo.Button)

	press := interactivetest.Button(btn.CustomID)
	require.True(t, d.Dispatch(context.Background(), press).OK())

	calls := press.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Update", calls[0].Method)
	assert.Equal(t, testButtonID, calls[0].Response.Content)
	assert.Empty(t, calls[0].Response.Components)
}

func TestTest_SelectMenuJoinsValues(t *testing.T) {
	d := newDispatcher(t)
	ev := interactivetest.SelectMenu(testSelectMenuID, "a", "b")

	require.True(t, d.Dispatch(context.Background(), ev).OK())

	calls := ev.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a|b", calls[0].Response.Content)
}

func TestTest_UserCommand(t *testing.T) {
	d := newDispatcher(t)
	ev := &interactivetest.Event{EventKind: interactive.KindUserCommand, Name: "testUserCommand", Target: &discordgo.User{ID: "42"}}

	require.True(t, d.Dispatch(context.Background(), ev).OK())
	assert.Contains(t, ev.Calls()[0].Response.Content, `"id": "42"`)
}

func TestBuildAboutEmbed(t *testing.T) {
	emb := buildAboutEmbed(buildinfo.BuildInfo{Project: "interactives", Version: "v1.2.0", Commit: "abc", GoVersion: "go1.26.0", Platform: "linux/amd64"})

	assert.Contains(t, emb.Description, "interactives")
	require.Len(t, emb.Fields, 3)
	assert.Equal(t, "v1.2.0 (abc)", emb.Fields[0].Value)
	assert.Equal(t, "Go 1.26.0, linux/amd64", emb.Fields[2].Value)
}
