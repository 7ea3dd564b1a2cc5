package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"liquorstores/internal/listing"
	"liquorstores/internal/session"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func state() session.State {
	return session.New().
		Apply(session.LicensesLoaded{Licenses: []listing.License{
			{LicenseNumber: "1", Dba: "Ace Liquor", Address: "1 Main St", City: "Hartford", State: "CT", Zip: "06103-1234", IssueDate: "2019-05-14T00:00:00.000"},
			{LicenseNumber: "2", Dba: "Best <Wine>", Address: "2 Elm St", City: "Hartford", State: "CT"},
			{LicenseNumber: "3", Dba: "Cork Shop", Address: "9 Oak Ave", City: "Avon", State: "CT", Zip: "06001"},
		}}).
		Apply(session.LimitsLoaded{Limits: []listing.TownLimit{
			{Town: "Avon", MaxStoresAllowed: listing.Count{Value: 2, Valid: true}},
		}})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Markdown")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
}

func TestCardsCollapsed(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Cards(&out, state().View(), FormatTable))

	rendered := out.String()
	require.Contains(t, rendered, "▸ Avon (1 store)    Max Allowed: 2")
	require.Contains(t, rendered, "▸ Hartford (2 stores)    Max Allowed: N/A")
	require.NotContains(t, rendered, "Ace Liquor")
	require.Less(t, strings.Index(rendered, "Avon"), strings.Index(rendered, "Hartford"))
}

func TestCardsExpanded(t *testing.T) {
	view := state().Apply(session.SearchSettled{Term: "ace"}).View()

	var out bytes.Buffer
	require.NoError(t, Cards(&out, view, FormatTable))

	rendered := out.String()
	require.Contains(t, rendered, "▾ Hartford (1 store)")
	require.Contains(t, rendered, "DBA")
	require.Contains(t, rendered, "Ace Liquor")
	require.Contains(t, rendered, "1 Main St, Hartford, CT 06103")
	require.Contains(t, rendered, "5/14/2019")
	require.NotContains(t, rendered, "Avon")
}

func TestCardsEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Cards(&out, session.New().View(), FormatTable))
	require.Equal(t, NoData+"\n", out.String())
}

func TestCardsMarkdown(t *testing.T) {
	view := state().Apply(session.TownSelected{Town: "Avon"}).View()

	var out bytes.Buffer
	require.NoError(t, Cards(&out, view, FormatMarkdown))
	require.Contains(t, out.String(), "### Avon (1 store)")
	require.Contains(t, out.String(), "| Cork Shop | 9 Oak Ave, Avon, CT 06001 |")
}

func TestCardsCSV(t *testing.T) {
	view := state().Apply(session.TownSelected{Town: "Avon"}).View()

	var out bytes.Buffer
	require.NoError(t, Cards(&out, view, FormatCSV))
	require.Contains(t, out.String(), "DBA,Address,Issue Date\n")
	require.Contains(t, out.String(), `Cork Shop,"9 Oak Ave, Avon, CT 06001",`)
	require.NotContains(t, out.String(), `\,`)
}

type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return 0, errors.New("disk full")
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestCardsReportsTableWriteError(t *testing.T) {
	view := state().Apply(session.TownSelected{Town: "Avon"}).View()

	require.Len(t, view.Cards, 1)

	for _, format := range Formats {
		// room for the card header only, the store table must fail
		card := view.Cards[0]
		card.Expanded = false
		var collapsed bytes.Buffer
		require.NoError(t, Cards(&collapsed, session.View{Cards: []session.TownCard{card}}, format))

		err := Cards(&failingWriter{limit: collapsed.Len()}, view, format)
		require.Error(t, err, string(format))
	}
}

func TestStoreTableHTMLEscapes(t *testing.T) {
	s := state()
	rendered := StoreTableHTML(s.All)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	require.NoError(t, err)

	require.Equal(t, 1, doc.Find("table.stores").Length())
	require.Equal(t, 3, doc.Find("tbody tr").Length())
	require.Equal(t, "Best <Wine>", doc.Find("tbody tr").Eq(1).Find("td").First().Text())
	require.NotContains(t, rendered, "<Wine>")
}

func TestOptions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Options(&out, state(), FormatCSV))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{
		"Town,Stores,Max Allowed",
		"ALL,3,",
		"AVON,1,2",
		"HARTFORD,2,N/A",
	}, lines)
}
