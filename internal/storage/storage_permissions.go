package storage

import (
	"context"

	"github.com/keshon/interactives/internal/permissions"
)

var _ permissions.Source = (*Storage)(nil)

// SetGrants stores the grants of a permission key. An empty guildID stores
// them for every guild.
func (s *Storage) SetGrants(guildID, key string, grants []permissions.Grant) error {
	if guildID == "" {
		guildID = defaultGuild
	}
	return s.update(guildID, func(r *Record) {
		r.Grants[key] = grants
	})
}

func (s *Storage) DeleteGrants(guildID, key string) error {
	if guildID == "" {
		guildID = defaultGuild
	}
	return s.update(guildID, func(r *Record) {
		delete(r.Grants, key)
	})
}

// Grants lists the keys stored for a guild, without the shared defaults.
func (s *Storage) Grants(guildID string) (map[string][]permissions.Grant, error) {
	if guildID == "" {
		guildID = defaultGuild
	}
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.Grants, nil
}

// ResolvePermissions prefers grants stored for the guild and falls back to
// the shared ones.
func (s *Storage) ResolvePermissions(ctx context.Context, guildID, key string) ([]permissions.Grant, error) {
	for _, id := range []string{guildID, defaultGuild} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if id == "" {
			continue
		}
		record, err := s.getGuildRecord(id)
		if err != nil {
			return nil, err
		}
		if grants, ok := record.Grants[key]; ok {
			return grants, nil
		}
	}
	return nil, permissions.ErrUnknownKey
}
