package commands

import (
	"log/slog"
	"os"

	"liquorstores/internal/listing"
	"liquorstores/internal/render"
	"liquorstores/internal/session"
	"liquorstores/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	listSearch    *string
	listTown      *string
	listOpen      *[]string
	listExpandAll *bool
	listFormat    *string
)

func init() {
	listSearch = listCmd.Flags().StringP("search", "s", "", "Only list stores whose name contains this, ignoring case.")
	listTown = listCmd.Flags().StringP("town", "t", listing.AllTowns, "Only list stores in this town.")
	listOpen = listCmd.Flags().StringArray("open", nil, "Expand this town, may be repeated.")
	listExpandAll = listCmd.Flags().Bool("expand-all", false, "Expand every town.")
	listFormat = listCmd.Flags().StringP("format", "f", string(render.FormatTable), "One of table, markdown, csv or html.")
	rootCmd.AddCommand(listCmd)
}

// warnUnknownTown logs a suggestion when `town` is not one of the options.
func warnUnknownTown(state session.State, town string) {
	if town == "" || town == listing.AllTowns || len(state.All) == 0 {
		return
	}
	options := listing.TownOptions(state.All)
	if listing.HasTown(options, town) {
		return
	}
	suggestion := listing.SuggestTown(options, town)
	if suggestion == "" {
		slog.Warn("unknown town", "town", town)
		return
	}
	slog.Warn("unknown town", "town", town, "did_you_mean", suggestion)
}

var listCmd = &cobra.Command{
	Use:   "list [--search <name>] [--town <town>] [--open <town>]... [--expand-all] [--format <format>]",
	Short: "Fetches the store listings and prints them grouped by town.",
	Run: func(cmd *cobra.Command, args []string) {
		format, err := render.ParseFormat(*listFormat)
		if err != nil {
			serviceutil.Fatal("invalid format", err)
		}

		cfg := loadConfig()
		state := loadState(cmd.Context(), cfg)
		warnUnknownTown(state, *listTown)

		state = state.
			Apply(session.SearchSettled{Term: *listSearch}).
			Apply(session.TownSelected{Town: *listTown})

		switch {
		case *listExpandAll:
			expanded := listing.Expansion{}
			for _, town := range state.Grouped.Towns() {
				expanded[town] = true
			}
			state = state.Apply(session.ExpansionReplaced{Expanded: expanded})
		case len(*listOpen) > 0:
			expanded := state.Expanded.Clone()
			for _, town := range *listOpen {
				expanded[town] = true
			}
			state = state.Apply(session.ExpansionReplaced{Expanded: expanded})
		}

		err = render.Cards(os.Stdout, state.View(), format)
		if err != nil {
			serviceutil.Fatal("failed to render listings", err)
		}
	},
}
