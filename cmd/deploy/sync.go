package main

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/keshon/interactives/internal/commands"
	"github.com/keshon/interactives/internal/deploy"
	"github.com/keshon/interactives/internal/discord"
	"github.com/keshon/interactives/internal/storage"
)

type syncFlags struct {
	guilds      []string
	global      bool
	permissions bool
	only        []string
	force       bool
}

func (a *app) syncCommand() *cobra.Command {
	var f syncFlags
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Replace the registered commands of guilds or the global scope",
		Long: `Replace every command of each target scope with the local definitions.

Scopes whose definitions did not change since the last sync are skipped
unless --force is given. With --permissions the grants stored for each
command's permission keys are pushed to every guild as well.

Examples:
  deploy sync --guild 123456789012345678
  deploy sync --global --only test
  deploy sync --guild 1 --guild 2 --permissions`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, f)
		},
	}
	cmd.Flags().StringSliceVarP(&f.guilds, "guild", "g", nil, "guild id to deploy to (repeatable)")
	cmd.Flags().BoolVar(&f.global, "global", false, "deploy to the global scope")
	cmd.Flags().BoolVar(&f.permissions, "permissions", false, "also push guild permission overwrites")
	cmd.Flags().StringSliceVar(&f.only, "only", nil, "command modules to deploy (default all)")
	cmd.Flags().BoolVar(&f.force, "force", false, "deploy even when nothing changed")
	return cmd
}

func (a *app) scopes(f syncFlags) ([]deploy.Scope, error) {
	var scopes []deploy.Scope
	if f.global {
		scopes = append(scopes, deploy.Global())
	}
	for _, id := range f.guilds {
		if a.cfg.IsGuildBlacklisted(id) {
			a.log.Warn("Skipping blacklisted guild", "guild", id)
			continue
		}
		scopes = append(scopes, deploy.Guild(id))
	}
	if len(scopes) == 0 {
		return nil, errors.New("nothing to deploy to, pass --guild or --global")
	}
	return scopes, nil
}

func (a *app) runSync(cmd *cobra.Command, f syncFlags) error {
	ctx := cmd.Context()
	cfg, err := a.config()
	if err != nil {
		return err
	}
	scopes, err := a.scopes(f)
	if err != nil {
		return err
	}
	set, err := commands.Select(f.only...)
	if err != nil {
		return err
	}

	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	appID, err := discord.ApplicationID(s, cfg.DiscordAppID)
	if err != nil {
		return fmt.Errorf("failed to resolve application id: %w", err)
	}

	var opts []deploy.Option
	if f.permissions {
		opts = append(opts, deploy.WithPermissions())
	}
	if f.force {
		opts = append(opts, deploy.WithForce())
	}

	return a.withStorage(ctx, func(store *storage.Storage) error {
		syncer := deploy.NewSynchronizer(discord.NewRegistryClient(s, appID), store, a.log)
		deployer := deploy.NewDeployer(syncer, cfg.DeployRate, a.log)

		results, skipped, err := deployer.DeployChanged(ctx, set.Commands, scopes, store, opts...)
		a.printSync(results, skipped)
		return err
	})
}

func (a *app) printSync(results []*deploy.Result, skipped []deploy.Scope) {
	for _, res := range results {
		line := fmt.Sprintf("%s %d command(s)", headingStyle.Render(res.Scope.String()), len(res.Commands))
		if len(res.Permissions) > 0 {
			line += fmt.Sprintf(", permissions for %d", len(res.Permissions))
		}
		fmt.Fprintln(a.out, line)
		for _, c := range res.Commands {
			fmt.Fprintln(a.out, mutedStyle.Render(fmt.Sprintf("  %s %s (%s)", c.ID, c.Name, commandTypeName(c.Type))))
		}
	}
	for _, sc := range skipped {
		fmt.Fprintf(a.out, "%s unchanged\n", mutedStyle.Render(sc.String()))
	}
}

func commandTypeName(t discordgo.ApplicationCommandType) string {
	switch t {
	case discordgo.UserApplicationCommand:
		return "user"
	case discordgo.MessageApplicationCommand:
		return "message"
	default:
		return "chat input"
	}
}

func (a *app) forgetCommand() *cobra.Command {
	var f syncFlags
	cmd := &cobra.Command{
		Use:   "forget",
		Short: "Forget what was last deployed so the next sync always runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.config(); err != nil {
				return err
			}
			scopes, err := a.scopes(f)
			if err != nil {
				return err
			}
			return a.withStorage(cmd.Context(), func(store *storage.Storage) error {
				for _, sc := range scopes {
					if err := store.ClearFingerprint(sc.String()); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "%s forgotten\n", sc)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&f.guilds, "guild", "g", nil, "guild id (repeatable)")
	cmd.Flags().BoolVar(&f.global, "global", false, "the global scope")
	return cmd
}
