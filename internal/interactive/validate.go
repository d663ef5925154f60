package interactive

import "fmt"

type level uint8

const (
	levelCommand level = iota
	levelGroup
	levelSubcommand
)

// Validate checks a definition for the shape the registries and Discord accept:
// unique sibling names, group → subcommand → leaf nesting, and a handler on
// every invokable node.
func (c *Command) Validate() error {
	if c == nil {
		return &ConfigurationError{Reason: "nil command"}
	}
	path := Path{c.Name}
	if c.Name == "" {
		return &ConfigurationError{Reason: "command without a name"}
	}

	switch c.Kind() {
	case ChatInput:
		if c.Description == "" {
			return &ConfigurationError{Path: path, Reason: "slash command without a description"}
		}
		branches, err := validateOptions(path, c.Options, levelCommand)
		if err != nil {
			return err
		}
		if !branches && c.Handler == nil {
			return &ConfigurationError{Path: path, Reason: "no handler"}
		}
	case User, Message:
		if len(c.Options) > 0 {
			return &ConfigurationError{Path: path, Reason: "context menu commands take no options"}
		}
		if c.Handler == nil {
			return &ConfigurationError{Path: path, Reason: "no handler"}
		}
	default:
		return &ConfigurationError{Path: path, Reason: fmt.Sprintf("unknown command type %d", c.Type)}
	}
	return nil
}

// validateOptions returns whether the level holds subcommands or groups.
func validateOptions(parent Path, opts []*Option, lvl level) (bool, error) {
	seen := make(map[string]struct{}, len(opts))
	branches, leaves := 0, 0

	for _, o := range opts {
		if o == nil {
			return false, &ConfigurationError{Path: parent, Reason: "nil option"}
		}
		path := append(parent[:len(parent):len(parent)], o.Name)
		if o.Name == "" {
			return false, &ConfigurationError{Path: parent, Reason: "option without a name"}
		}
		if _, dup := seen[o.Name]; dup {
			return false, &ConfigurationError{Path: path, Reason: "duplicate name"}
		}
		seen[o.Name] = struct{}{}

		if !o.Type.Valid() {
			return false, &ConfigurationError{Path: path, Reason: fmt.Sprintf("unknown option type %d", o.Type)}
		}

		switch o.Type {
		case OptionSubcommandGroup:
			branches++
			if lvl != levelCommand {
				return false, &ConfigurationError{Path: path, Reason: "subcommand groups are only allowed at the top level"}
			}
			if len(o.Options) == 0 {
				return false, &ConfigurationError{Path: path, Reason: "empty subcommand group"}
			}
			for _, child := range o.Options {
				if child != nil && child.Type != OptionSubcommand {
					return false, &ConfigurationError{Path: append(path, child.Name), Reason: "subcommand groups may only contain subcommands"}
				}
			}
			if _, err := validateOptions(path, o.Options, levelGroup); err != nil {
				return false, err
			}
		case OptionSubcommand:
			branches++
			if lvl == levelSubcommand {
				return false, &ConfigurationError{Path: path, Reason: "subcommands cannot be nested in subcommands"}
			}
			if o.Handler == nil {
				return false, &ConfigurationError{Path: path, Reason: "no handler"}
			}
			if _, err := validateOptions(path, o.Options, levelSubcommand); err != nil {
				return false, err
			}
		default:
			leaves++
			if lvl == levelGroup {
				return false, &ConfigurationError{Path: path, Reason: "subcommand groups may only contain subcommands"}
			}
			if len(o.Options) > 0 {
				return false, &ConfigurationError{Path: path, Reason: fmt.Sprintf("%s options cannot have children", o.Type)}
			}
		}
	}

	if branches > 0 && leaves > 0 {
		return false, &ConfigurationError{Path: parent, Reason: "subcommands cannot be mixed with value options"}
	}
	return branches > 0, nil
}
