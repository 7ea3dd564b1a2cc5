package commands

import (
	"os"

	"liquorstores/internal/render"
	"liquorstores/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var townsFormat *string

func init() {
	townsFormat = townsCmd.Flags().StringP("format", "f", string(render.FormatTable), "One of table, markdown, csv or html.")
	rootCmd.AddCommand(townsCmd)
}

var townsCmd = &cobra.Command{
	Use:   "towns [--format <format>]",
	Short: "Prints the town options with their store counts and limits.",
	Run: func(cmd *cobra.Command, args []string) {
		format, err := render.ParseFormat(*townsFormat)
		if err != nil {
			serviceutil.Fatal("invalid format", err)
		}

		state := loadState(cmd.Context(), loadConfig())
		err = render.Options(os.Stdout, state, format)
		if err != nil {
			serviceutil.Fatal("failed to render towns", err)
		}
	},
}
