package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/keshon/interactives/internal/config"
	"github.com/keshon/interactives/internal/deploy"
	"github.com/keshon/interactives/internal/dispatch"
	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/storage"
)

// Dispatcher routes interactions to their handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev interactive.Event) *dispatch.Outcome
}

// Bot is a Discord bot
type Bot struct {
	cfg        *config.Config
	dispatcher Dispatcher
	set        interactive.Set
	storage    *storage.Storage
	log        *log.Logger

	ctx context.Context
	dg  *discordgo.Session
}

func NewBot(cfg *config.Config, d Dispatcher, set interactive.Set, store *storage.Storage, logger *log.Logger) *Bot {
	return &Bot{cfg: cfg, dispatcher: d, set: set, storage: store, log: logger, ctx: context.Background()}
}

// Run opens the gateway session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx

	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info("Shutdown signal received, closing session")
	return nil
}

// onReady leaves blacklisted guilds and, when enabled, deploys changed
// commands to every other guild.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	var scopes []deploy.Scope
	for _, g := range r.Guilds {
		if b.leaveIfBlacklisted(s, g.ID) {
			continue
		}
		scopes = append(scopes, deploy.Guild(g.ID))
	}

	if b.cfg.SyncOnReady {
		go b.sync(s, scopes)
	} else {
		b.log.Info("Command deploy on startup skipped")
	}

	b.log.Info("Discord bot is running", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.log.Debug("Guild available", "guild", g.ID, "name", g.Name)
	b.leaveIfBlacklisted(s, g.ID)
}

func (b *Bot) leaveIfBlacklisted(s *discordgo.Session, guildID string) bool {
	if !b.cfg.IsGuildBlacklisted(guildID) {
		return false
	}
	b.log.Info("Leaving blacklisted guild", "guild", guildID)
	if err := s.GuildLeave(guildID, discordgo.WithContext(b.ctx)); err != nil {
		b.log.Error("Failed to leave guild", "guild", guildID, "err", err)
	}
	return true
}

func (b *Bot) sync(s *discordgo.Session, scopes []deploy.Scope) {
	appID, err := ApplicationID(s, b.cfg.DiscordAppID)
	if err != nil {
		b.log.Error("Failed to resolve application id", "err", err)
		return
	}

	var opts []deploy.Option
	if b.cfg.SyncPermissions {
		opts = append(opts, deploy.WithPermissions())
	}
	syncer := deploy.NewSynchronizer(NewRegistryClient(s, appID), b.storage, b.log)
	deployer := deploy.NewDeployer(syncer, b.cfg.DeployRate, b.log)

	results, skipped, err := deployer.DeployChanged(b.ctx, b.set.Commands, scopes, b.storage, opts...)
	if err != nil {
		b.log.Error("Command deploy failed", "err", err)
	}
	b.log.Info("Command deploy finished", "deployed", len(results), "unchanged", len(skipped))
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleInteraction(b.ctx, s, i)
}

// handleInteraction runs on discordgo's per-event goroutine.
func (b *Bot) handleInteraction(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	if i.GuildID != "" && b.cfg.IsGuildBlacklisted(i.GuildID) {
		b.log.Debug("Ignoring interaction from blacklisted guild", "guild", i.GuildID)
		return
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionMessageComponent:
	default:
		b.log.Debug("Unhandled interaction type", "type", i.Type)
		return
	}

	out := b.dispatcher.Dispatch(ctx, NewEvent(s, i))
	b.log.Debug("Interaction dispatched", "family", out.Family, "path", out.Path, "ok", out.OK())
}
