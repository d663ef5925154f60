// Package registry holds the lookup structures for each family of
// interactives and turns inbound events into handler calls.
package registry

import (
	"context"

	"github.com/keshon/interactives/internal/interactive"
)

// Family names, as they appear in logs and reports.
const (
	NameChatInput   = "slash command"
	NameContextMenu = "context menu"
	NameButton      = "button"
	NameSelectMenu  = "select menu"
)

// Family is one kind of interactive: slash commands, context menus, buttons or
// select menus.
//
// Register replaces the whole lookup structure and leaves the previous one in
// place when it fails. Resolve never fails; it returns a nil match on a miss
// together with the path it attempted.
type Family interface {
	Name() string
	Register(set interactive.Set) error
	Resolve(ev interactive.Event) (*Match, interactive.Path)
	Invoke(ctx context.Context, ev interactive.Event, m *Match) error
	Report() *Report
}

// Match is a resolved lookup, only meaningful to the family that produced it.
type Match struct {
	Path   interactive.Path
	target any
}
