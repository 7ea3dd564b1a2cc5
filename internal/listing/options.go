package listing

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

// TownOption is one entry of the town selector.
type TownOption struct {
	Value string
	Label string
}

// TownOptions returns AllTowns followed by every distinct town of `licenses`
// in byte order, labelled in upper case.
func TownOptions(licenses []License) []TownOption {
	seen := map[string]struct{}{}
	var towns []string
	for _, l := range licenses {
		town := TownKey(l)
		if _, ok := seen[town]; ok {
			continue
		}
		seen[town] = struct{}{}
		towns = append(towns, town)
	}
	slices.Sort(towns)

	options := make([]TownOption, 0, len(towns)+1)
	options = append(options, TownOption{Value: AllTowns, Label: strings.ToUpper(AllTowns)})
	for _, town := range towns {
		options = append(options, TownOption{Value: town, Label: strings.ToUpper(town)})
	}
	return options
}

// HasTown reports whether `town` is one of the option values.
func HasTown(options []TownOption, town string) bool {
	return slices.ContainsFunc(options, func(o TownOption) bool {
		return o.Value == town
	})
}

const suggestionThreshold = 0.8

// SuggestTown returns the option value most similar to `name`, or "" when
// nothing is close enough to be a plausible typo.
func SuggestTown(options []TownOption, name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	var best string
	var bestScore float64
	for _, option := range options {
		if option.Value == AllTowns {
			continue
		}
		score := matchr.JaroWinkler(name, option.Label, false)
		if score > bestScore {
			bestScore = score
			best = option.Value
		}
	}
	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}
