package storefront

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"liquorstores/internal/render"
	"liquorstores/internal/session"
)

var layout = template.Must(template.ParseFS(templateFS, "templates/layout.html"))

func page(name string) *template.Template {
	return template.Must(template.Must(layout.Clone()).ParseFS(templateFS, "templates/"+name))
}

var (
	searchPage   = page("search.html")
	contactsPage = page("contacts.html")
)

const (
	searchTitle   = "Active Connecticut Liquor Store Listings"
	contactsTitle = "Contacts"
)

type tab struct {
	Href   string
	Label  string
	Active bool
}

func tabs(active string) []tab {
	out := []tab{
		{Href: "/", Label: "Active Business Search"},
		{Href: "/contacts", Label: "Contacts"},
	}
	for i := range out {
		out[i].Active = out[i].Href == active
	}
	return out
}

type layoutData struct {
	Title string
	Tabs  []tab
}

type optionData struct {
	Value    string
	Label    string
	Selected bool
}

type cardData struct {
	Town       string
	Title      string
	MaxAllowed string
	Expanded   bool
	ToggleHref string
	Table      template.HTML
}

type searchData struct {
	layoutData
	Search         string
	Options        []optionData
	Cards          []cardData
	NoData         string
	DebounceMillis int64
}

func (s *Service) searchData(state session.State) searchData {
	view := state.View()

	options := make([]optionData, 0, len(view.Options))
	for _, o := range view.Options {
		options = append(options, optionData{
			Value:    o.Value,
			Label:    o.Label,
			Selected: o.Value == view.Filter.Town,
		})
	}

	cards := make([]cardData, 0, len(view.Cards))
	for _, c := range view.Cards {
		card := cardData{
			Town:       c.Town,
			Title:      c.Title,
			MaxAllowed: c.MaxAllowed,
			Expanded:   c.Expanded,
			ToggleHref: toggleHref(view.Filter, state.Expanded, c.Town),
		}
		if c.Expanded {
			// go-pretty escapes cell text when rendering html.
			card.Table = template.HTML(render.StoreTableHTML(c.Licenses))
		}
		cards = append(cards, card)
	}

	data := searchData{
		layoutData:     layoutData{Title: searchTitle, Tabs: tabs("/")},
		Search:         view.Input,
		Options:        options,
		Cards:          cards,
		DebounceMillis: s.debounce.Milliseconds(),
	}
	if view.Empty() {
		data.NoData = render.NoData
	}
	return data
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r.URL.Query())
	state := s.stateFor(r.Context(), q)
	writePage(w, searchPage, s.searchData(state))
}

func (s *Service) handleContacts(w http.ResponseWriter, r *http.Request) {
	writePage(w, contactsPage, layoutData{
		Title: contactsTitle,
		Tabs:  tabs("/contacts"),
	})
}

func writePage(w http.ResponseWriter, tmpl *template.Template, data any) {
	buff := &strings.Builder{}
	err := tmpl.ExecuteTemplate(buff, "layout", data)
	if err != nil {
		slog.Error("render page", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(buff.String()))
}
