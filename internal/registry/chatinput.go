package registry

import (
	"context"
	"sync/atomic"

	"github.com/keshon/interactives/internal/interactive"
	"github.com/keshon/interactives/internal/permissions"
)

// node is one level of the slash command tree: a top-level command, a
// subcommand group or a subcommand.
type node struct {
	name     string
	command  *interactive.Command
	option   *interactive.Option
	children map[string]*node
	order    []*node
}

func (n *node) handler() interactive.CommandHandler {
	if n.option != nil {
		return n.option.Handler
	}
	return n.command.Handler
}

func (n *node) declared() []*interactive.Option {
	if n.option != nil {
		return n.option.Options
	}
	return n.command.Options
}

// invokable reports whether the node is a leaf command that can run.
func (n *node) invokable() bool {
	return len(n.children) == 0 && n.handler() != nil
}

type commandTree struct {
	roots map[string]*node
	order []*node
}

// ChatInput is the slash command family.
type ChatInput struct {
	tree atomic.Pointer[commandTree]
}

var _ Family = (*ChatInput)(nil)

func NewChatInput() *ChatInput {
	c := &ChatInput{}
	c.tree.Store(&commandTree{roots: map[string]*node{}})
	return c
}

func (c *ChatInput) Name() string { return NameChatInput }

// Register builds a new tree from the slash commands of set.
func (c *ChatInput) Register(set interactive.Set) error {
	t := &commandTree{roots: map[string]*node{}}
	for _, cmd := range set.ChatInputCommands() {
		if err := cmd.Validate(); err != nil {
			return err
		}
		if _, dup := t.roots[cmd.Name]; dup {
			return &interactive.ConfigurationError{Path: interactive.Path{cmd.Name}, Reason: "duplicate " + NameChatInput}
		}
		n := &node{name: cmd.Name, command: cmd, children: map[string]*node{}}
		addBranches(n, cmd.Options)
		t.roots[cmd.Name] = n
		t.order = append(t.order, n)
	}
	c.tree.Store(t)
	return nil
}

// addBranches nests subcommand groups and subcommands under n. Value options
// stay on the declaring node.
func addBranches(n *node, opts []*interactive.Option) {
	for _, o := range opts {
		if !o.Type.Branch() {
			continue
		}
		child := &node{name: o.Name, option: o, children: map[string]*node{}}
		addBranches(child, o.Options)
		n.children[o.Name] = child
		n.order = append(n.order, child)
	}
}

// Resolve walks command, then group and subcommand when the event names them.
func (c *ChatInput) Resolve(ev interactive.Event) (*Match, interactive.Path) {
	t := c.tree.Load()

	name := ev.CommandName()
	path := interactive.Path{name}
	n, ok := t.roots[name]
	if !ok {
		return nil, path
	}
	for _, seg := range []string{ev.SubcommandGroup(), ev.Subcommand()} {
		if seg == "" {
			continue
		}
		path = append(path, seg)
		if n, ok = n.children[seg]; !ok {
			return nil, path
		}
	}
	if !n.invokable() {
		return nil, path
	}
	return &Match{Path: path, target: n}, path
}

func (c *ChatInput) Invoke(ctx context.Context, ev interactive.Event, m *Match) error {
	n, ok := m.target.(*node)
	if !ok {
		return interactive.ErrLookupMiss
	}
	opts, err := extractOptions(ev, n.declared())
	if err != nil {
		return err
	}
	return n.handler()(ctx, ev, opts)
}

func (c *ChatInput) Report() *Report {
	t := c.tree.Load()
	r := &Report{Family: NameChatInput}
	for _, n := range t.order {
		r.Nodes = append(r.Nodes, reportNode(n))
	}
	return r
}

func reportNode(n *node) *ReportNode {
	rn := &ReportNode{Name: n.name}
	if n.command != nil {
		rn.Value = permissions.Annotation(n.command.PermissionKeys, n.command.DefaultMemberPermissions)
	}
	for _, child := range n.order {
		rn.Children = append(rn.Children, reportNode(child))
	}
	for _, o := range n.declared() {
		if o.Type.Branch() {
			continue
		}
		rn.Children = append(rn.Children, &ReportNode{Name: o.Name, Value: optionLabel(o)})
	}
	return rn
}

func optionLabel(o *interactive.Option) string {
	if o.Required {
		return o.Type.String()
	}
	return "?" + o.Type.String()
}
