package registry

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// Report is the diagnostics tree of one family.
type Report struct {
	Family string
	Nodes  []*ReportNode
}

// ReportNode is a named entry with an optional value.
type ReportNode struct {
	Name     string
	Value    string
	Children []*ReportNode
}

var (
	rootStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	enumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Label renders "name: value", or whichever half is set.
func (n *ReportNode) Label() string {
	switch {
	case n.Value == "":
		return n.Name
	case n.Name == "":
		return n.Value
	default:
		return n.Name + ": " + n.Value
	}
}

// Tree builds the lipgloss tree of the report.
func (r *Report) Tree() *tree.Tree {
	t := tree.Root(r.Family).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle).
		RootStyle(rootStyle)
	for _, n := range r.Nodes {
		t.Child(n.tree())
	}
	return t
}

func (n *ReportNode) tree() any {
	label := n.Label()
	if n.Value != "" && n.Name != "" {
		label = n.Name + ": " + valueStyle.Render(n.Value)
	}
	if len(n.Children) == 0 {
		return label
	}
	t := tree.Root(label).Enumerator(tree.RoundedEnumerator).EnumeratorStyle(enumStyle)
	for _, c := range n.Children {
		t.Child(c.tree())
	}
	return t
}

func (r *Report) String() string {
	return r.Tree().String()
}

// Len counts top-level entries.
func (r *Report) Len() int { return len(r.Nodes) }
