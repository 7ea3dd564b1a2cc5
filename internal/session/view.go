package session

import (
	"liquorstores/internal/listing"
)

// TownCard is one collapsible town section of the page.
type TownCard struct {
	Town       string
	Title      string
	MaxAllowed string
	Expanded   bool
	// Licenses is nil while the card is collapsed.
	Licenses []listing.License
	Count    int
}

// View is the presentation model derived from a State.
type View struct {
	Input   string
	Filter  listing.FilterState
	Options []listing.TownOption
	Cards   []TownCard
}

// View derives the presentation model, it is recomputed from scratch on
// every call.
func (s State) View() View {
	cards := make([]TownCard, 0, len(s.Grouped))
	for _, group := range s.Grouped {
		card := TownCard{
			Town:       group.Town,
			Title:      listing.TownTitle(group.Town, len(group.Licenses)),
			MaxAllowed: s.Limits.Label(group.Town),
			Expanded:   s.Expanded[group.Town],
			Count:      len(group.Licenses),
		}
		if card.Expanded {
			card.Licenses = group.Licenses
		}
		cards = append(cards, card)
	}

	return View{
		Input:   s.Input,
		Filter:  s.Filter,
		Options: listing.TownOptions(s.All),
		Cards:   cards,
	}
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return len(v.Cards) == 0
}
