package permissions_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/interactives/internal/permissions"
)

func TestBlocked_FullUniverseIsEmpty(t *testing.T) {
	assert.Empty(t, permissions.Blocked(permissions.Universe))
}

func TestBlocked_ZeroIsEveryFlag(t *testing.T) {
	blocked := permissions.Blocked(0)

	assert.Len(t, blocked, len(permissions.Names))
	assert.Equal(t, "CreateInstantInvite", blocked[0])
}

func TestBlocked_IsComplementOfGranted(t *testing.T) {
	mask := int64(discordgo.PermissionManageGuild | discordgo.PermissionBanMembers)

	blocked := permissions.Blocked(mask)
	granted := permissions.Granted(mask)

	assert.Equal(t, []string{"BanMembers", "ManageGuild"}, granted)
	assert.NotContains(t, blocked, "ManageGuild")
	assert.NotContains(t, blocked, "BanMembers")
	assert.Len(t, blocked, len(permissions.Names)-2)
}

func TestAnnotation(t *testing.T) {
	all := permissions.Universe
	allButAdmin := permissions.Universe &^ int64(discordgo.PermissionAdministrator)

	assert.Equal(t, "", permissions.Annotation(nil, nil))
	assert.Equal(t, "", permissions.Annotation(nil, &all))
	assert.Equal(t, "@moderators", permissions.Annotation([]string{"moderators"}, nil))
	assert.Equal(t, "@moderators|Administrator", permissions.Annotation([]string{"moderators"}, &allButAdmin))
}

func TestStatic_ResolvePermissions(t *testing.T) {
	src := permissions.Static{
		"moderators": {{ID: "42", Type: discordgo.ApplicationCommandPermissionTypeRole, Permission: true}},
	}

	grants, err := src.ResolvePermissions(context.Background(), "g1", "moderators")
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "42", grants[0].ApplicationCommandPermission().ID)

	_, err = src.ResolvePermissions(context.Background(), "g1", "missing")
	assert.ErrorIs(t, err, permissions.ErrUnknownKey)
}

func TestParseGrantType(t *testing.T) {
	typ, ok := permissions.ParseGrantType("channel")
	assert.True(t, ok)
	assert.Equal(t, discordgo.ApplicationCommandPermissionTypeChannel, typ)

	_, ok = permissions.ParseGrantType("guild")
	assert.False(t, ok)
}
