package main

import (
	"context"
	"log/slog"

	"liquorstores/cmd/liquorstores/commands"
	"liquorstores/lib/telemetry"
	"liquorstores/lib/util/serviceutil"
)

func main() {
	telemetry.InitSlog(false)

	ctx := serviceutil.SignalContext()
	otel, err := telemetry.SetupFromEnv(ctx, "liquorstores")
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	}
	defer otel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
