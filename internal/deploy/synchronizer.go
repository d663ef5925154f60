// Package deploy pushes command definitions to Discord's command registry.
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/permissions"
	"github.com/keshon/interactives/pkg/util"
)

// Limits caps how many commands of each type one scope may hold.
var Limits = map[interactive.CommandType]int{
	interactive.ChatInput: 100,
	interactive.User:      5,
	interactive.Message:   5,
}

var limitOrder = []interactive.CommandType{interactive.ChatInput, interactive.User, interactive.Message}

// Scope is either global or a single guild.
type Scope struct {
	GuildID string
}

func Global() Scope { return Scope{} }

func Guild(guildID string) Scope { return Scope{GuildID: guildID} }

func (s Scope) IsGlobal() bool { return s.GuildID == "" }

func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return "guild:" + s.GuildID
}

// RegistryAPI is the remote command registry.
type RegistryAPI interface {
	// PutCommands replaces every command of the scope and returns them with
	// their server assigned ids.
	PutCommands(ctx context.Context, scope Scope, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error)
	PutGuildPermissions(ctx context.Context, guildID string, perms []*discordgo.GuildApplicationCommandPermissions) error
}

// Result is what a synchronization left on the remote side.
type Result struct {
	Scope       Scope
	Commands    []*discordgo.ApplicationCommand
	Permissions []*discordgo.GuildApplicationCommandPermissions
}

type syncOptions struct {
	permissions bool
	force       bool
}

type Option func(*syncOptions)

// WithPermissions also pushes per-guild permission overwrites resolved from
// each command's permission keys. It has no effect on the global scope.
func WithPermissions() Option {
	return func(o *syncOptions) { o.permissions = true }
}

// WithForce makes DeployChanged deploy to every scope, changed or not.
func WithForce() Option {
	return func(o *syncOptions) { o.force = true }
}

// Synchronizer replaces a scope's commands in one request.
type Synchronizer struct {
	api     RegistryAPI
	source  permissions.Source
	log     *log.Logger
	workers int
}

func NewSynchronizer(api RegistryAPI, source permissions.Source, logger *log.Logger) *Synchronizer {
	return &Synchronizer{api: api, source: source, log: logger, workers: 4}
}

// Synchronize validates defs, replaces the scope's commands and, when asked,
// pushes guild permissions. If only the permission step fails, the returned
// Result still carries the replaced commands.
func (s *Synchronizer) Synchronize(ctx context.Context, defs []*interactive.Command, scope Scope, opts ...Option) (*Result, error) {
	var o syncOptions
	for _, opt := range opts {
		opt(&o)
	}

	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	if err := CheckLimits(defs); err != nil {
		return nil, err
	}

	payload := interactive.ApplicationCommands(defs)
	created, err := s.api.PutCommands(ctx, scope, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to replace %s commands: %w", scope, err)
	}
	s.log.Info("Commands replaced", "scope", scope, "count", len(created))

	res := &Result{Scope: scope, Commands: created}
	if !o.permissions {
		return res, nil
	}
	if scope.IsGlobal() {
		s.log.Warn("Permission overwrites only apply to guilds, skipping", "scope", scope)
		return res, nil
	}

	if s.source == nil {
		return res, &interactive.ConfigurationError{Reason: "no permission source configured"}
	}

	perms, err := s.resolvePermissions(ctx, scope.GuildID, defs, created)
	if err != nil {
		return res, err
	}
	if err := s.api.PutGuildPermissions(ctx, scope.GuildID, perms); err != nil {
		return res, fmt.Errorf("failed to push permissions for %s: %w", scope, err)
	}
	res.Permissions = perms
	s.log.Info("Permissions pushed", "scope", scope, "commands", len(perms))
	return res, nil
}

// CheckLimits counts definitions per type against Limits.
func CheckLimits(defs []*interactive.Command) error {
	counts := make(map[interactive.CommandType]int, len(limitOrder))
	for _, d := range defs {
		counts[d.Kind()]++
	}
	for _, typ := range limitOrder {
		if counts[typ] > Limits[typ] {
			return &interactive.ValidationError{Type: typ, Count: counts[typ], Limit: Limits[typ]}
		}
	}
	return nil
}

type permissionJob struct {
	index     int
	commandID string
	def       *interactive.Command
}

// resolvePermissions looks up every key of every returned command that has
// keys. All lookups finish before anything is pushed.
func (s *Synchronizer) resolvePermissions(ctx context.Context, guildID string, defs []*interactive.Command, created []*discordgo.ApplicationCommand) ([]*discordgo.GuildApplicationCommandPermissions, error) {
	byKey := make(map[string]*interactive.Command, len(defs))
	for _, d := range defs {
		byKey[commandKey(d.Kind(), d.Name)] = d
	}

	var jobs []permissionJob
	for _, c := range created {
		typ := interactive.CommandType(c.Type)
		if typ == 0 {
			typ = interactive.ChatInput
		}
		d, ok := byKey[commandKey(typ, c.Name)]
		if !ok || len(d.PermissionKeys) == 0 {
			continue
		}
		jobs = append(jobs, permissionJob{index: len(jobs), commandID: c.ID, def: d})
	}

	out := make([]*discordgo.GuildApplicationCommandPermissions, len(jobs))
	err := util.Parallel(ctx, jobs, s.workers, func(ctx context.Context, job permissionJob) error {
		entry := &discordgo.GuildApplicationCommandPermissions{ID: job.commandID, GuildID: guildID}
		for _, key := range job.def.PermissionKeys {
			grants, err := s.source.ResolvePermissions(ctx, guildID, key)
			if errors.Is(err, permissions.ErrUnknownKey) {
				return &interactive.ConfigurationError{
					Path:   interactive.Path{job.def.Name},
					Reason: fmt.Sprintf("the permissions of the key %q were not found", key),
				}
			}
			if err != nil {
				return fmt.Errorf("failed to resolve permission key %q: %w", key, err)
			}
			for _, g := range grants {
				entry.Permissions = append(entry.Permissions, g.ApplicationCommandPermission())
			}
		}
		out[job.index] = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func commandKey(typ interactive.CommandType, name string) string {
	return typ.String() + "/" + name
}
