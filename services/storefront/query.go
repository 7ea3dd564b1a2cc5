package storefront

import (
	"net/url"
	"slices"

	"liquorstores/internal/listing"
)

const (
	paramSearch  = "q"
	paramTown    = "town"
	paramOpen    = "open"
	paramToggled = "toggled"
)

// pageQuery is the page state carried in the URL. When Toggled is set the
// user has expanded or collapsed towns by hand and Open replaces the
// expansion the filter would produce.
type pageQuery struct {
	Filter  listing.FilterState
	Toggled bool
	Open    []string
}

func parseQuery(values url.Values) pageQuery {
	q := pageQuery{
		Filter: listing.FilterState{
			SearchTerm: values.Get(paramSearch),
			Town:       values.Get(paramTown),
		},
		Toggled: values.Get(paramToggled) == "1",
		Open:    values[paramOpen],
	}
	if q.Filter.Town == "" {
		q.Filter.Town = listing.AllTowns
	}
	return q
}

func (q pageQuery) expansion() listing.Expansion {
	out := listing.Expansion{}
	for _, town := range q.Open {
		out[town] = true
	}
	return out
}

func (q pageQuery) values() url.Values {
	values := url.Values{}
	if q.Filter.SearchTerm != "" {
		values.Set(paramSearch, q.Filter.SearchTerm)
	}
	if q.Filter.Town != "" && q.Filter.Town != listing.AllTowns {
		values.Set(paramTown, q.Filter.Town)
	}
	if q.Toggled {
		values.Set(paramToggled, "1")
		for _, town := range q.Open {
			values.Add(paramOpen, town)
		}
	}
	return values
}

// toggleHref links to the same page with `town` flipped relative to `expanded`.
func toggleHref(filter listing.FilterState, expanded listing.Expansion, town string) string {
	next := expanded.Toggled(town)
	open := make([]string, 0, len(next))
	for t, isOpen := range next {
		if isOpen {
			open = append(open, t)
		}
	}
	slices.Sort(open)

	q := pageQuery{Filter: filter, Toggled: true, Open: open}
	encoded := q.values().Encode()
	return "/?" + encoded
}
