// Package render draws the town cards of a session view with go-pretty.
package render

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"strings"

	"liquorstores/internal/listing"
	"liquorstores/internal/session"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
)

var Formats = []Format{FormatTable, FormatMarkdown, FormatCSV, FormatHTML}

func ParseFormat(value string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(value) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, expected one of %v", value, Formats)
}

const NoData = "No data available"

var storeHeader = table.Row{"DBA", "Address", "Issue Date"}

func NewTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func output(t table.Writer, format Format) string {
	switch format {
	case FormatMarkdown:
		return t.RenderMarkdown()
	case FormatHTML:
		return t.RenderHTML()
	default:
		return t.Render()
	}
}

// writeTable writes `t` to w. CSV goes through encoding/csv since go-pretty
// backslash-escapes commas inside quoted cells.
func writeTable(w io.Writer, t table.Writer, header table.Row, rows []table.Row, format Format) error {
	if format != FormatCSV {
		t.AppendHeader(header)
		t.AppendRows(rows)
		_, err := fmt.Fprintln(w, output(t, format))
		return err
	}

	out := csv.NewWriter(w)
	err := out.Write(csvRecord(header))
	if err != nil {
		return err
	}
	for _, row := range rows {
		err = out.Write(csvRecord(row))
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func csvRecord(row table.Row) []string {
	record := make([]string, len(row))
	for i, cell := range row {
		record[i] = fmt.Sprint(cell)
	}
	return record
}

func storeRows(licenses []listing.License) []table.Row {
	rows := make([]table.Row, 0, len(licenses))
	for _, l := range licenses {
		rows = append(rows, table.Row{l.Dba, listing.Address(l), listing.IssueDate(l)})
	}
	return rows
}

func storeTable() table.Writer {
	t := NewTable()
	t.Style().HTML.CSSClass = "stores"
	return t
}

// StoreTableHTML renders a town's stores as an HTML table with escaped cells.
func StoreTableHTML(licenses []listing.License) string {
	t := storeTable()
	t.AppendHeader(storeHeader)
	t.AppendRows(storeRows(licenses))
	return t.RenderHTML()
}

func marker(card session.TownCard) string {
	if card.Expanded {
		return "▾"
	}
	return "▸"
}

// Cards writes every town card of `view`. Collapsed towns only get their
// header, expanded towns are followed by their store table.
func Cards(w io.Writer, view session.View, format Format) error {
	if view.Empty() {
		_, err := fmt.Fprintln(w, NoData)
		return err
	}

	for _, card := range view.Cards {
		var err error
		switch format {
		case FormatMarkdown:
			_, err = fmt.Fprintf(w, "### %s\n\nMax Allowed: %s\n\n", card.Title, card.MaxAllowed)
		case FormatCSV:
			_, err = fmt.Fprintf(w, "# %s, Max Allowed: %s\n", card.Title, card.MaxAllowed)
		case FormatHTML:
			_, err = fmt.Fprintf(
				w, "<h3>%s</h3>\n<p>Max Allowed: %s</p>\n",
				html.EscapeString(card.Title), html.EscapeString(card.MaxAllowed),
			)
		default:
			_, err = fmt.Fprintf(
				w, "%s %s    Max Allowed: %s\n",
				marker(card), card.Title, card.MaxAllowed,
			)
		}
		if err != nil {
			return err
		}

		if !card.Expanded {
			continue
		}
		err = writeTable(w, storeTable(), storeHeader, storeRows(card.Licenses), format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// Options writes the town selector entries with their store count and limit.
func Options(w io.Writer, state session.State, format Format) error {
	counts := map[string]int{}
	for _, l := range state.All {
		counts[listing.TownKey(l)]++
	}

	var rows []table.Row
	for _, option := range listing.TownOptions(state.All) {
		if option.Value == listing.AllTowns {
			rows = append(rows, table.Row{option.Label, len(state.All), ""})
			continue
		}
		rows = append(rows, table.Row{option.Label, counts[option.Value], state.Limits.Label(option.Value)})
	}

	t := NewTable()
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return writeTable(w, t, table.Row{"Town", "Stores", "Max Allowed"}, rows, format)
}
