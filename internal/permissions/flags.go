// Package permissions describes Discord permission bitmasks and the external
// source of per-guild command permission grants.
package permissions

import (
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Names labels every standard permission flag.
var Names = map[int64]string{
	discordgo.PermissionCreateInstantInvite:              "CreateInstantInvite",
	discordgo.PermissionKickMembers:                      "KickMembers",
	discordgo.PermissionBanMembers:                       "BanMembers",
	discordgo.PermissionAdministrator:                    "Administrator",
	discordgo.PermissionManageChannels:                   "ManageChannels",
	discordgo.PermissionManageGuild:                      "ManageGuild",
	discordgo.PermissionAddReactions:                     "AddReactions",
	discordgo.PermissionViewAuditLogs:                    "ViewAuditLog",
	discordgo.PermissionVoicePrioritySpeaker:             "PrioritySpeaker",
	discordgo.PermissionVoiceStreamVideo:                 "Stream",
	discordgo.PermissionViewChannel:                      "ViewChannel",
	discordgo.PermissionSendMessages:                     "SendMessages",
	discordgo.PermissionSendTTSMessages:                  "SendTTSMessages",
	discordgo.PermissionManageMessages:                   "ManageMessages",
	discordgo.PermissionEmbedLinks:                       "EmbedLinks",
	discordgo.PermissionAttachFiles:                      "AttachFiles",
	discordgo.PermissionReadMessageHistory:               "ReadMessageHistory",
	discordgo.PermissionMentionEveryone:                  "MentionEveryone",
	discordgo.PermissionUseExternalEmojis:                "UseExternalEmojis",
	discordgo.PermissionViewGuildInsights:                "ViewGuildInsights",
	discordgo.PermissionVoiceConnect:                     "Connect",
	discordgo.PermissionVoiceSpeak:                       "Speak",
	discordgo.PermissionVoiceMuteMembers:                 "MuteMembers",
	discordgo.PermissionVoiceDeafenMembers:               "DeafenMembers",
	discordgo.PermissionVoiceMoveMembers:                 "MoveMembers",
	discordgo.PermissionVoiceUseVAD:                      "UseVAD",
	discordgo.PermissionChangeNickname:                   "ChangeNickname",
	discordgo.PermissionManageNicknames:                  "ManageNicknames",
	discordgo.PermissionManageRoles:                      "ManageRoles",
	discordgo.PermissionManageWebhooks:                   "ManageWebhooks",
	discordgo.PermissionManageGuildExpressions:           "ManageGuildExpressions",
	discordgo.PermissionUseApplicationCommands:           "UseApplicationCommands",
	discordgo.PermissionVoiceRequestToSpeak:              "RequestToSpeak",
	discordgo.PermissionManageEvents:                     "ManageEvents",
	discordgo.PermissionManageThreads:                    "ManageThreads",
	discordgo.PermissionCreatePublicThreads:              "CreatePublicThreads",
	discordgo.PermissionCreatePrivateThreads:             "CreatePrivateThreads",
	discordgo.PermissionUseExternalStickers:              "UseExternalStickers",
	discordgo.PermissionSendMessagesInThreads:            "SendMessagesInThreads",
	discordgo.PermissionUseEmbeddedActivities:            "UseEmbeddedActivities",
	discordgo.PermissionModerateMembers:                  "ModerateMembers",
	discordgo.PermissionViewCreatorMonetizationAnalytics: "ViewCreatorMonetizationAnalytics",
	discordgo.PermissionUseSoundboard:                    "UseSoundboard",
	discordgo.PermissionCreateGuildExpressions:           "CreateGuildExpressions",
	discordgo.PermissionCreateEvents:                     "CreateEvents",
	discordgo.PermissionUseExternalSounds:                "UseExternalSounds",
	discordgo.PermissionSendVoiceMessages:                "SendVoiceMessages",
	discordgo.PermissionSendPolls:                        "SendPolls",
	discordgo.PermissionUseExternalApps:                  "UseExternalApps",
}

// Universe is every flag in Names.
var Universe = func() int64 {
	var all int64
	for bit := range Names {
		all |= bit
	}
	return all
}()

// orderedBits lists the flags lowest bit first.
var orderedBits = func() []int64 {
	bits := make([]int64, 0, len(Names))
	for bit := range Names {
		bits = append(bits, bit)
	}
	slices.Sort(bits)
	return bits
}()

// Blocked returns the names of the flags missing from mask, lowest bit first.
// A full mask yields nothing; zero yields every flag.
func Blocked(mask int64) []string {
	complement := Universe &^ mask
	var out []string
	for _, bit := range orderedBits {
		if complement&bit != 0 {
			out = append(out, Names[bit])
		}
	}
	return out
}

// Granted returns the names of the flags present in mask, lowest bit first.
func Granted(mask int64) []string {
	var out []string
	for _, bit := range orderedBits {
		if mask&bit != 0 {
			out = append(out, Names[bit])
		}
	}
	return out
}

// Annotation renders the restriction label shown in diagnostics: the
// permission keys followed by the flags blocked by default, joined with "|"
// and prefixed with "@". It is empty when mask is nil and there are no keys.
func Annotation(keys []string, mask *int64) string {
	labels := append([]string(nil), keys...)
	if mask != nil {
		labels = append(labels, Blocked(*mask)...)
	}
	if len(labels) == 0 {
		return ""
	}
	return "@" + strings.Join(labels, "|")
}
