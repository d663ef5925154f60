// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`
	// DiscordAppID falls back to the bot user id once the session is open.
	DiscordAppID          string   `env:"DISCORD_APP_ID"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// SyncOnReady deploys changed commands to every joined guild at startup.
	SyncOnReady     bool    `env:"SYNC_ON_READY" envDefault:"false"`
	SyncPermissions bool    `env:"SYNC_PERMISSIONS" envDefault:"false"`
	DeployRate      float64 `env:"DEPLOY_RATE" envDefault:"1"`
}

// Load reads .env files when present, then the environment. Missing files
// are not an error; with no arguments ".env" is tried.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsGuildBlacklisted(guildID string) bool {
	return slices.Contains(c.DiscordGuildBlacklist, guildID)
}
