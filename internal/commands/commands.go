// Package commands declares the interactives the bot ships with.
package commands

import (
	"fmt"
	"slices"

	"github.com/keshon/interactives/internal/interactive"
)

// Module is a named group of interactives deployed together.
type Module struct {
	Name string
	Set  interactive.Set
}

// Modules returns every module in a stable order.
func Modules() []Module {
	return []Module{
		{Name: "test", Set: testModule()},
		{Name: "about", Set: aboutModule()},
	}
}

// All merges every module.
func All() interactive.Set {
	var set interactive.Set
	for _, m := range Modules() {
		set = set.Merge(m.Set)
	}
	return set
}

// Select merges the named modules. No names selects all of them.
func Select(names ...string) (interactive.Set, error) {
	if len(names) == 0 {
		return All(), nil
	}
	mods := Modules()
	var set interactive.Set
	for _, n := range names {
		i := slices.IndexFunc(mods, func(m Module) bool { return m.Name == n })
		if i < 0 {
			return interactive.Set{}, fmt.Errorf("unknown command module %q", n)
		}
		set = set.Merge(mods[i].Set)
	}
	return set, nil
}
