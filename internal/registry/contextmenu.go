package registry

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/permissions"
)

type contextMenus struct {
	byType map[interactive.CommandType]map[string]*interactive.Command
	order  []*interactive.Command
}

// ContextMenu is the user and message command family.
type ContextMenu struct {
	menus atomic.Pointer[contextMenus]
}

var _ Family = (*ContextMenu)(nil)

func NewContextMenu() *ContextMenu {
	c := &ContextMenu{}
	c.menus.Store(newContextMenus())
	return c
}

func newContextMenus() *contextMenus {
	return &contextMenus{byType: map[interactive.CommandType]map[string]*interactive.Command{
		interactive.User:    {},
		interactive.Message: {},
	}}
}

func (c *ContextMenu) Name() string { return NameContextMenu }

func (c *ContextMenu) Register(set interactive.Set) error {
	m := newContextMenus()
	for _, cmd := range set.ContextMenuCommands() {
		if err := cmd.Validate(); err != nil {
			return err
		}
		names := m.byType[cmd.Kind()]
		if _, dup := names[cmd.Name]; dup {
			return &interactive.ConfigurationError{Path: interactive.Path{cmd.Name}, Reason: "duplicate " + cmd.Kind().String() + " " + NameContextMenu}
		}
		names[cmd.Name] = cmd
		m.order = append(m.order, cmd)
	}
	c.menus.Store(m)
	return nil
}

func (c *ContextMenu) Resolve(ev interactive.Event) (*Match, interactive.Path) {
	path := interactive.Path{ev.CommandName()}

	var typ interactive.CommandType
	switch ev.Kind() {
	case interactive.KindUserCommand:
		typ = interactive.User
	case interactive.KindMessageCommand:
		typ = interactive.Message
	default:
		return nil, path
	}
	cmd, ok := c.menus.Load().byType[typ][ev.CommandName()]
	if !ok {
		return nil, path
	}
	return &Match{Path: path, target: cmd}, path
}

// Invoke passes the target as the "user" or "message" option.
func (c *ContextMenu) Invoke(ctx context.Context, ev interactive.Event, m *Match) error {
	cmd, ok := m.target.(*interactive.Command)
	if !ok {
		return interactive.ErrLookupMiss
	}

	opts := interactive.Options{}
	switch cmd.Kind() {
	case interactive.User:
		u := ev.TargetUser()
		if u == nil {
			return errors.New("user command without a target user")
		}
		opts["user"] = u
	case interactive.Message:
		msg := ev.TargetMessage()
		if msg == nil {
			return errors.New("message command without a target message")
		}
		opts["message"] = msg
	}
	return cmd.Handler(ctx, ev, opts)
}

func (c *ContextMenu) Report() *Report {
	r := &Report{Family: NameContextMenu}
	for _, cmd := range c.menus.Load().order {
		r.Nodes = append(r.Nodes, &ReportNode{
			Name:     cmd.Name,
			Value:    permissions.Annotation(cmd.PermissionKeys, cmd.DefaultMemberPermissions),
			Children: []*ReportNode{{Value: cmd.Kind().String()}},
		})
	}
	return r
}
