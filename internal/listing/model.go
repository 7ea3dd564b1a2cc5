// Package listing holds the liquor license records fetched from the CT open
// data portal and the pure functions that sort, group, filter and format them.
package listing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// AllTowns is the town selector value that matches every town.
const AllTowns = "All"

// UnknownTown is the grouping key of licenses without a city.
const UnknownTown = "Unknown"

// License is a single active license row. Every field is optional in the
// upstream data, absent fields decode to "".
type License struct {
	LicenseNumber string `json:"license_number"`
	Dba           string `json:"dba"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	IssueDate     string `json:"issuedate"`
	Status        string `json:"status"`
	Credential    string `json:"credential"`
}

// TownKey is the town a license is grouped and selected under.
func TownKey(l License) string {
	if l.City == "" {
		return UnknownTown
	}
	return l.City
}

// Count is an integer the data portal may serve either as a JSON number or
// as a numeric string. Valid is false when the value was absent or garbage.
type Count struct {
	Value int
	Valid bool
}

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count{}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		err := json.Unmarshal(data, &raw)
		if err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		n = int(f)
	}
	*c = Count{Value: n, Valid: true}
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.Value)), nil
}

// TownLimit is the maximum number of package store licenses a town permits.
type TownLimit struct {
	Town             string `json:"town"`
	MaxStoresAllowed Count  `json:"max_stores_allowed"`
}
