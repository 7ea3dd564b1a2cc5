package timezone

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// force timezone to Connecticut, the open data portal publishes floating
// timestamps in local time and dates must not shift by a day when the
// process runs elsewhere.
func Now() time.Time {
	return time.Now().In(Location)
}

// the layouts the CT open data portal (Socrata) is known to emit,
// most common first.
var floatingLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
	"01/02/2006",
}

// ParseFloating parses a timestamp without zone information as local time in Location.
func ParseFloating(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range floatingLayouts {
		t, err := time.ParseInLocation(layout, value, Location)
		if err == nil {
			return t.In(Location), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// FormatDate renders a date the way an en-US locale does: M/D/YYYY.
func FormatDate(t time.Time) string {
	return t.In(Location).Format("1/2/2006")
}
