package listing

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TownGroup is every license of one town in input order.
type TownGroup struct {
	Town     string
	Licenses []License
}

// Grouped is the town sorted partition of a license list.
type Grouped []TownGroup

// Total is the amount of licenses across all towns.
func (g Grouped) Total() int {
	total := 0
	for _, town := range g {
		total += len(town.Licenses)
	}
	return total
}

// Towns returns the town names in order.
func (g Grouped) Towns() []string {
	towns := make([]string, len(g))
	for i, town := range g {
		towns[i] = town.Town
	}
	return towns
}

// Group partitions licenses by TownKey. Towns are sorted by byte order, each
// town keeps the relative order of its licenses in `licenses`.
func Group(licenses []License) Grouped {
	index := map[string]int{}
	var grouped Grouped
	for _, l := range licenses {
		town := TownKey(l)
		i, ok := index[town]
		if !ok {
			i = len(grouped)
			index[town] = i
			grouped = append(grouped, TownGroup{Town: town})
		}
		grouped[i].Licenses = append(grouped[i].Licenses, l)
	}

	slices.SortFunc(grouped, func(a, b TownGroup) int {
		switch {
		case a.Town < b.Town:
			return -1
		case a.Town > b.Town:
			return 1
		}
		return 0
	})
	return grouped
}

// SortByDba returns a copy of licenses stably ordered by trade name, ignoring
// case the way a US English locale compares strings.
func SortByDba(licenses []License) []License {
	// a Collator keeps internal buffers and must not be shared across goroutines
	collator := collate.New(language.AmericanEnglish, collate.IgnoreCase)

	sorted := slices.Clone(licenses)
	slices.SortStableFunc(sorted, func(a, b License) int {
		return collator.CompareString(a.Dba, b.Dba)
	})
	return sorted
}
