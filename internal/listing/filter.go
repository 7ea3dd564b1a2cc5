package listing

import (
	"maps"

	"liquorstores/lib/textutil"
)

// FilterState is what the user searched for.
type FilterState struct {
	// SearchTerm is matched as a case-insensitive substring of the dba.
	SearchTerm string
	// Town is a TownKey or AllTowns.
	Town string
}

// NoFilter matches every license.
var NoFilter = FilterState{Town: AllTowns}

func (f FilterState) Active() bool {
	return f.SearchTerm != "" || (f.Town != AllTowns && f.Town != "")
}

func (f FilterState) Matches(l License) bool {
	if !textutil.ContainsFold(l.Dba, f.SearchTerm) {
		return false
	}
	return f.Town == AllTowns || f.Town == "" || TownKey(l) == f.Town
}

// Expansion records which towns are shown expanded, absent towns are collapsed.
type Expansion map[string]bool

func (e Expansion) Clone() Expansion {
	if e == nil {
		return Expansion{}
	}
	return maps.Clone(e)
}

// Toggled returns a copy with one town flipped.
func (e Expansion) Toggled(town string) Expansion {
	out := e.Clone()
	if out[town] {
		delete(out, town)
	} else {
		out[town] = true
	}
	return out
}

// Filter selects the licenses matching `state`, preserving order, and expands
// every town holding a match. An inactive filter returns `all` itself and no
// expansion.
func Filter(all []License, state FilterState) ([]License, Expansion) {
	expansion := Expansion{}
	if !state.Active() {
		return all, expansion
	}

	filtered := make([]License, 0, len(all))
	for _, l := range all {
		if !state.Matches(l) {
			continue
		}
		filtered = append(filtered, l)
		expansion[TownKey(l)] = true
	}
	return filtered, expansion
}
