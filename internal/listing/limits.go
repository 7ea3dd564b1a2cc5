package listing

import (
	"strconv"

	"liquorstores/lib/textutil"
)

const notApplicable = "N/A"

// TownLimits looks up the maximum store count of a town.
type TownLimits struct {
	exact      map[string]int
	normalized map[string]int
}

// NewTownLimits indexes the reference rows, a later row for the same town
// replaces an earlier one. Rows without a usable count are skipped.
func NewTownLimits(rows []TownLimit) TownLimits {
	limits := TownLimits{
		exact:      make(map[string]int, len(rows)),
		normalized: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		if !row.MaxStoresAllowed.Valid {
			continue
		}
		limits.exact[row.Town] = row.MaxStoresAllowed.Value
		limits.normalized[textutil.NormalizeName(row.Town)] = row.MaxStoresAllowed.Value
	}
	return limits
}

func (l TownLimits) Len() int {
	return len(l.exact)
}

// Lookup matches the town exactly first, then ignoring case and whitespace
// since the two datasets do not agree on capitalization.
func (l TownLimits) Lookup(town string) (int, bool) {
	if n, ok := l.exact[town]; ok {
		return n, true
	}
	n, ok := l.normalized[textutil.NormalizeName(town)]
	return n, ok
}

// Label renders the maximum for display, "N/A" when unknown.
func (l TownLimits) Label(town string) string {
	n, ok := l.Lookup(town)
	if !ok {
		return notApplicable
	}
	return strconv.Itoa(n)
}
