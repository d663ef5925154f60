package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/interactives/internal/storage"
	"github.com/keshon/interactives/pkg/util"
)

func (a *app) historyCommand() *cobra.Command {
	var guildID string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest interactions handled in a guild",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd.Context(), func(store *storage.Storage) error {
				records, err := store.FetchHistory(guildID)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(a.out, mutedStyle.Render("no interactions recorded"))
					return nil
				}
				for _, r := range records {
					status := "ok"
					if r.Failed {
						status = errorStyle.Render("failed")
					}
					fmt.Fprintf(a.out, "%s  %-12s %-30s %-20s %s\n",
						mutedStyle.Render(util.FormatDateTpl(r.Datetime, "YYYY-MM-DD hh:mm:ss")),
						r.Family, r.Path, r.Username, status)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&guildID, "guild", "g", "", "guild id")
	_ = cmd.MarkFlagRequired("guild")
	return cmd
}
