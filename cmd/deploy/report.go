package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/keshon/interactives/internal/commands"
	"github.com/keshon/interactives/internal/dispatch"
	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/logging"
)

func (a *app) reportCommand() *cobra.Command {
	var only []string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every registered interactive as a tree",
		Long: `Load the local definitions into the registries and print one tree per family.

Commands with permission keys or a default member permission are labelled
with "@", the keys first and then the permissions a member is blocked from
by default. Families that fail to register are reported and the command exits
with an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := commands.Select(only...)
			if err != nil {
				return err
			}
			return printReports(a.out, set)
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "command modules to report (default all)")
	return cmd
}

// printReports prints the trees of every family that holds something and
// returns the registration error, if any.
func printReports(w io.Writer, set interactive.Set) error {
	d := dispatch.New(logging.Discard())
	regErr := d.Register(set)
	if regErr != nil {
		fmt.Fprintln(w, errorStyle.Render(regErr.Error()))
	}
	for _, rep := range d.Reports() {
		if rep.Len() == 0 {
			continue
		}
		fmt.Fprintln(w, rep)
		fmt.Fprintln(w)
	}
	return regErr
}
