package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/keshon/buildinfo"
	"github.com/spf13/cobra"

	"github.com/keshon/interactives/internal/config"
	"github.com/keshon/interactives/internal/logging"
	"github.com/keshon/interactives/internal/storage"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// app carries what every subcommand shares. Config and storage are loaded
// on demand so offline commands work without a token.
type app struct {
	out      io.Writer
	log      *log.Logger
	envFiles []string
	logLevel string

	cfg *config.Config
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, log: logging.New(errOut, "info")}
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "deploy",
		Short:         "Deploy and inspect the bot's interactives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log.SetLevel(logging.ParseLevel(a.logLevel))
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "env files to load (default .env)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level")

	root.AddCommand(
		a.syncCommand(),
		a.forgetCommand(),
		a.reportCommand(),
		a.permsCommand(),
		a.historyCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// withStorage opens the datastore for the duration of fn.
func (a *app) withStorage(ctx context.Context, fn func(*storage.Storage) error) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	store, err := storage.New(ctx, cfg.StoragePath, a.log.WithPrefix("storage"))
	if err != nil {
		return err
	}
	fnErr := fn(store)
	if err := store.Close(); err != nil && fnErr == nil {
		return fmt.Errorf("failed to save storage: %w", err)
	}
	return fnErr
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := buildinfo.Get()
			fmt.Fprintf(a.out, "%s %s\n", headingStyle.Render(info.Project), info.Version)
			fmt.Fprintln(a.out, mutedStyle.Render(fmt.Sprintf("commit %s, built %s, %s %s", info.Commit, info.BuildTime, info.GoVersion, info.Platform)))
		},
	}
}
