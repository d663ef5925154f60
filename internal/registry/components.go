package registry

import (
	"context"
	"sync/atomic"

	"github.com/keshon/interactives/internal/interactive"
)

// keyed is a flat custom id lookup shared by the component families.
type keyed[T any] struct {
	family string
	kind   interactive.Kind
	table  atomic.Pointer[keyedTable[T]]
}

type keyedTable[T any] struct {
	items map[string]T
	order []string
}

func (k *keyed[T]) init(family string, kind interactive.Kind) {
	k.family = family
	k.kind = kind
	k.table.Store(&keyedTable[T]{items: map[string]T{}})
}

func (k *keyed[T]) register(ids []string, items []T, hasHandler func(T) bool) error {
	t := &keyedTable[T]{items: make(map[string]T, len(items))}
	for i, id := range ids {
		path := interactive.Path{id}
		if id == "" {
			return &interactive.ConfigurationError{Reason: k.family + " without a custom id"}
		}
		if _, dup := t.items[id]; dup {
			return &interactive.ConfigurationError{Path: path, Reason: "duplicate " + k.family}
		}
		if !hasHandler(items[i]) {
			return &interactive.ConfigurationError{Path: path, Reason: "no handler"}
		}
		t.items[id] = items[i]
		t.order = append(t.order, id)
	}
	k.table.Store(t)
	return nil
}

func (k *keyed[T]) resolve(ev interactive.Event) (*Match, interactive.Path) {
	path := interactive.Path{ev.CustomID()}
	if ev.Kind() != k.kind {
		return nil, path
	}
	item, ok := k.table.Load().items[ev.CustomID()]
	if !ok {
		return nil, path
	}
	return &Match{Path: path, target: item}, path
}

func (k *keyed[T]) report() *Report {
	r := &Report{Family: k.family}
	for _, id := range k.table.Load().order {
		r.Nodes = append(r.Nodes, &ReportNode{Name: id})
	}
	return r
}

// Buttons is the button family.
type Buttons struct {
	keyed[*interactive.Button]
}

var _ Family = (*Buttons)(nil)

func NewButtons() *Buttons {
	b := &Buttons{}
	b.init(NameButton, interactive.KindButton)
	return b
}

func (b *Buttons) Name() string { return NameButton }

func (b *Buttons) Register(set interactive.Set) error {
	ids := make([]string, 0, len(set.Buttons))
	for _, btn := range set.Buttons {
		ids = append(ids, btn.CustomID)
	}
	return b.register(ids, set.Buttons, func(btn *interactive.Button) bool { return btn.Handler != nil })
}

func (b *Buttons) Resolve(ev interactive.Event) (*Match, interactive.Path) { return b.resolve(ev) }

func (b *Buttons) Invoke(ctx context.Context, ev interactive.Event, m *Match) error {
	btn, ok := m.target.(*interactive.Button)
	if !ok {
		return interactive.ErrLookupMiss
	}
	return btn.Handler(ctx, ev)
}

func (b *Buttons) Report() *Report { return b.report() }

// SelectMenus is the select menu family.
type SelectMenus struct {
	keyed[*interactive.SelectMenu]
}

var _ Family = (*SelectMenus)(nil)

func NewSelectMenus() *SelectMenus {
	s := &SelectMenus{}
	s.init(NameSelectMenu, interactive.KindSelectMenu)
	return s
}

func (s *SelectMenus) Name() string { return NameSelectMenu }

func (s *SelectMenus) Register(set interactive.Set) error {
	ids := make([]string, 0, len(set.SelectMenus))
	for _, menu := range set.SelectMenus {
		ids = append(ids, menu.CustomID)
	}
	return s.register(ids, set.SelectMenus, func(menu *interactive.SelectMenu) bool { return menu.Handler != nil })
}

func (s *SelectMenus) Resolve(ev interactive.Event) (*Match, interactive.Path) { return s.resolve(ev) }

// Invoke passes the selected values.
func (s *SelectMenus) Invoke(ctx context.Context, ev interactive.Event, m *Match) error {
	menu, ok := m.target.(*interactive.SelectMenu)
	if !ok {
		return interactive.ErrLookupMiss
	}
	return menu.Handler(ctx, ev, ev.Values())
}

func (s *SelectMenus) Report() *Report { return s.report() }
