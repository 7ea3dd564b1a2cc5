package commands

import (
	"liquorstores/lib/telemetry"
	"liquorstores/lib/util/serviceutil"
	"liquorstores/services/storefront"

	"github.com/spf13/cobra"
)

var servePort *int

func init() {
	servePort = serveCmd.Flags().IntP("port", "p", 0, "The port to listen on, overrides the config.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port <port>]",
	Short: "Serves the store listings as a web page.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		if *servePort > 0 {
			cfg.Port = *servePort
		}

		telemetry.InstrumentPerfStats(ctx)

		svc := storefront.NewService(storefront.Options{Debounce: cfg.Debounce()})
		svc.Load(ctx, createLoader(cfg))

		err := serviceutil.StartHttpServer(ctx, cfg.Port, svc.Router())
		if err != nil {
			serviceutil.Fatal("failed to serve", err)
		}
	},
}
