// Package session models everything the user sees and does on the search
// page as an immutable State driven by events through a pure reducer.
package session

import (
	"liquorstores/internal/listing"
)

// State is a snapshot of the search page, it is never mutated in place.
type State struct {
	// All is every fetched license sorted by dba.
	All    []listing.License
	Limits listing.TownLimits

	// Input is the raw search box contents, it becomes Filter.SearchTerm
	// once the user stops typing.
	Input  string
	Filter listing.FilterState

	Filtered []listing.License
	Grouped  listing.Grouped
	Expanded listing.Expansion

	// Generation counts filter recomputations.
	Generation uint64
}

func New() State {
	return State{
		Filter:   listing.NoFilter,
		Expanded: listing.Expansion{},
	}
}

// Event is anything that changes State.
type Event interface {
	apply(s State) State
}

type LicensesLoaded struct {
	Licenses []listing.License
}

type LimitsLoaded struct {
	Limits []listing.TownLimit
}

// SearchTyped is a keystroke in the search box.
type SearchTyped struct {
	Term string
}

// SearchSettled applies a search term once typing paused.
type SearchSettled struct {
	Term string
}

type TownSelected struct {
	Town string
}

type FiltersCleared struct{}

type TownToggled struct {
	Town string
}

// ExpansionReplaced restores a set of manually expanded towns.
type ExpansionReplaced struct {
	Expanded listing.Expansion
}

// Quit ends a Loop, it leaves State untouched.
type Quit struct{}

// Apply is the reducer, it returns the State following `e`.
func (s State) Apply(e Event) State {
	return e.apply(s)
}

// recompute rebuilds every derived field from All and Filter, dropping any
// manual expansion.
func (s State) recompute() State {
	s.Filtered, s.Expanded = listing.Filter(s.All, s.Filter)
	s.Grouped = listing.Group(s.Filtered)
	s.Generation++
	return s
}

func (e LicensesLoaded) apply(s State) State {
	s.All = listing.SortByDba(e.Licenses)
	return s.recompute()
}

func (e LimitsLoaded) apply(s State) State {
	s.Limits = listing.NewTownLimits(e.Limits)
	return s
}

func (e SearchTyped) apply(s State) State {
	s.Input = e.Term
	return s
}

func (e SearchSettled) apply(s State) State {
	s.Input = e.Term
	s.Filter.SearchTerm = e.Term
	return s.recompute()
}

func (e TownSelected) apply(s State) State {
	s.Filter.Town = e.Town
	if s.Filter.Town == "" {
		s.Filter.Town = listing.AllTowns
	}
	return s.recompute()
}

func (e FiltersCleared) apply(s State) State {
	s.Input = ""
	s.Filter = listing.NoFilter
	return s.recompute()
}

func (e TownToggled) apply(s State) State {
	s.Expanded = s.Expanded.Toggled(e.Town)
	return s
}

func (e ExpansionReplaced) apply(s State) State {
	s.Expanded = e.Expanded.Clone()
	return s
}

func (Quit) apply(s State) State {
	return s
}
