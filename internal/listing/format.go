package listing

import (
	"fmt"
	"strings"

	"liquorstores/lib/textutil"
	"liquorstores/lib/timezone"
)

// Address renders "{address}, {city}, {state} {zip5}".
func Address(l License) string {
	zip := textutil.Truncate(l.Zip, 5)
	return strings.TrimRight(
		fmt.Sprintf("%s, %s, %s %s", l.Address, l.City, l.State, zip),
		" ",
	)
}

// IssueDate renders the issue date as M/D/YYYY, "" when absent. Values the
// portal formats unexpectedly are shown verbatim rather than dropped.
func IssueDate(l License) string {
	if strings.TrimSpace(l.IssueDate) == "" {
		return ""
	}
	t, err := timezone.ParseFloating(l.IssueDate)
	if err != nil {
		return l.IssueDate
	}
	return timezone.FormatDate(t)
}

// StoreCount renders "1 store" or "n stores".
func StoreCount(n int) string {
	if n == 1 {
		return "1 store"
	}
	return fmt.Sprintf("%d stores", n)
}

// TownTitle is the header of a town card, e.g. "Hartford (2 stores)".
func TownTitle(town string, n int) string {
	return fmt.Sprintf("%s (%s)", town, StoreCount(n))
}
