// /internal/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/keshon/datastore"

	"github.com/keshon/interactives/internal/permissions"
)

const (
	historyLimit int = 20
	saveInterval     = time.Minute

	// defaultGuild holds permission grants shared by every guild.
	defaultGuild = "*"
)

type Storage struct {
	ds     *datastore.DataStore
	cancel context.CancelFunc
	// mu serializes read-modify-write cycles on records
	mu sync.Mutex
}

// InteractionRecord is one dispatched interaction.
type InteractionRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Family    string    `json:"family"`
	Path      string    `json:"path"`
	Failed    bool      `json:"failed"`
	Datetime  time.Time `json:"datetime"`
}

// Record is everything kept for one guild.
type Record struct {
	History []InteractionRecord            `json:"history"`
	Grants  map[string][]permissions.Grant `json:"grants"`
}

// New opens the JSON datastore at filePath. The store flushes periodically
// until ctx is done.
func New(ctx context.Context, filePath string, logger *log.Logger) (*Storage, error) {
	opts := []datastore.Option{datastore.WithSaveInterval(saveInterval)}
	if logger != nil {
		opts = append(opts, datastore.WithLogger(slog.New(logger)))
	}
	ctx, cancel := context.WithCancel(ctx)
	ds, err := datastore.New(ctx, filePath, opts...)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open datastore %q: %w", filePath, err)
	}
	return &Storage{ds: ds, cancel: cancel}, nil
}

// Close stops the periodic flush and writes the store to disk.
func (s *Storage) Close() error {
	s.cancel()
	return s.ds.Close()
}

func guildKey(guildID string) string {
	return "guild:" + guildID
}

// getGuildRecord loads a guild record, returning an empty one when missing.
// Callers that write must hold s.mu.
func (s *Storage) getGuildRecord(guildID string) (*Record, error) {
	var record Record
	if _, err := s.ds.Get(guildKey(guildID), &record); err != nil {
		return nil, fmt.Errorf("error reading record for guild %s: %w", guildID, err)
	}

	if record.History == nil {
		record.History = []InteractionRecord{}
	}
	if record.Grants == nil {
		record.Grants = map[string][]permissions.Grant{}
	}

	if len(record.History) > historyLimit {
		record.History = record.History[len(record.History)-historyLimit:]
	}

	return &record, nil
}

func (s *Storage) putGuildRecord(guildID string, record *Record) error {
	if err := s.ds.Set(guildKey(guildID), record); err != nil {
		return fmt.Errorf("error saving record for guild %s: %w", guildID, err)
	}
	return nil
}

// update applies fn to a guild record and stores the result.
func (s *Storage) update(guildID string, fn func(r *Record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}
	fn(record)
	return s.putGuildRecord(guildID, record)
}
