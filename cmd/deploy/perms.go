package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/keshon/interactives/internal/permissions"
	"github.com/keshon/interactives/internal/storage"
)

// parseGrant reads "role:<id>", "user:<id>" or "channel:<id>". A leading
// "!" denies instead of allowing.
func parseGrant(s string) (permissions.Grant, error) {
	allow := true
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		allow, s = false, rest
	}
	kind, id, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return permissions.Grant{}, fmt.Errorf("invalid grant %q, want type:id", s)
	}
	typ, ok := permissions.ParseGrantType(kind)
	if !ok {
		return permissions.Grant{}, fmt.Errorf("invalid grant type %q, want role, user or channel", kind)
	}
	return permissions.Grant{ID: id, Type: typ, Permission: allow}, nil
}

func formatGrant(g permissions.Grant) string {
	kind := "role"
	switch g.Type {
	case discordgo.ApplicationCommandPermissionTypeUser:
		kind = "user"
	case discordgo.ApplicationCommandPermissionTypeChannel:
		kind = "channel"
	}
	out := kind + ":" + g.ID
	if !g.Permission {
		out = "!" + out
	}
	return out
}

func (a *app) permsCommand() *cobra.Command {
	var guildID string
	cmd := &cobra.Command{
		Use:   "perms",
		Short: "Manage the grants behind permission keys",
		Long: `Manage the grants a permission key resolves to when syncing with --permissions.

Grants stored without --guild are shared by every guild; a guild's own
grants for a key take precedence.

Examples:
  deploy perms set moderators role:123 user:456
  deploy perms set moderators '!channel:789' --guild 1
  deploy perms list
  deploy perms delete moderators`,
	}
	cmd.PersistentFlags().StringVarP(&guildID, "guild", "g", "", "guild id (default shared by all guilds)")

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <grant>...",
		Short: "Replace the grants of a key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			grants := make([]permissions.Grant, 0, len(args)-1)
			for _, arg := range args[1:] {
				g, err := parseGrant(arg)
				if err != nil {
					return err
				}
				grants = append(grants, g)
			}
			return a.withStorage(cmd.Context(), func(store *storage.Storage) error {
				return store.SetGrants(guildID, args[0], grants)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored keys and their grants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd.Context(), func(store *storage.Storage) error {
				grants, err := store.Grants(guildID)
				if err != nil {
					return err
				}
				for _, key := range slices.Sorted(maps.Keys(grants)) {
					parts := make([]string, len(grants[key]))
					for i, g := range grants[key] {
						parts[i] = formatGrant(g)
					}
					fmt.Fprintf(a.out, "%s %s\n", headingStyle.Render(key), strings.Join(parts, " "))
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd.Context(), func(store *storage.Storage) error {
				return store.DeleteGrants(guildID, args[0])
			})
		},
	})
	return cmd
}
