package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	devenv "liquorstores/dev/env"
	"liquorstores/internal/components/telemetry"
	"liquorstores/internal/session"
	"liquorstores/lib/configutil"
	"liquorstores/lib/platforms/ctdata"
	"liquorstores/lib/restyutil"
	"liquorstores/lib/util/serviceutil"

	libtelemetry "liquorstores/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl          string `json:"base_url" env:"LIQUORSTORES_BASE_URL"`
	LicenseDataset   string `json:"license_dataset" env:"LIQUORSTORES_LICENSE_DATASET"`
	TownLimitDataset string `json:"town_limit_dataset" env:"LIQUORSTORES_TOWN_LIMIT_DATASET"`
	Status           string `json:"status" env:"LIQUORSTORES_STATUS"`
	Credential       string `json:"credential" env:"LIQUORSTORES_CREDENTIAL"`
	Limit            int    `json:"limit" env:"LIQUORSTORES_LIMIT"`
	TimeoutSeconds   int    `json:"timeout_seconds" env:"LIQUORSTORES_TIMEOUT_SECONDS"`
	DebounceMillis   int    `json:"debounce_ms" env:"LIQUORSTORES_DEBOUNCE_MS"`
	Port             int    `json:"port" env:"LIQUORSTORES_PORT"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:          ctdata.DefaultBaseUrl,
		LicenseDataset:   ctdata.DefaultLicenseDataset,
		TownLimitDataset: ctdata.DefaultTownLimitDataset,
		Status:           ctdata.DefaultStatus,
		Credential:       ctdata.DefaultCredential,
		Limit:            ctdata.DefaultLimit,
		TimeoutSeconds:   30,
		DebounceMillis:   int(session.DefaultDebounce.Milliseconds()),
		Port:             8080,
	}
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

var (
	configPath *string
	verbose    *bool
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "liquorstores.json5", "The config file, a bare name is searched for in parent directories.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages and dump http exchanges under <dev_state>/http.")
}

var rootCmd = &cobra.Command{
	Use:   "liquorstores",
	Short: "liquorstores browses the active package store liquor permits of Connecticut.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		libtelemetry.InitSlog(*verbose)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() Config {
	cfg, err := configutil.Load(*configPath, defaultConfig())
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func createClient(cfg Config) *ctdata.Client {
	opts := ctdata.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		LicenseDataset:   cfg.LicenseDataset,
		TownLimitDataset: cfg.TownLimitDataset,
		Status:           cfg.Status,
		Credential:       cfg.Credential,
		Limit:            cfg.Limit,
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if *verbose {
		dir, err := devenv.ResolvePath("<dev_state>/http")
		if err != nil {
			serviceutil.Fatal("failed to resolve http dump directory", err)
		}
		output, err := restyutil.NewFilesystemOutput(dir)
		if err != nil {
			serviceutil.Fatal("failed to create http dump directory", err)
		}
		slog.Debug("dumping http exchanges", "dir", output.Directory())
		opts.InstrumentOutput = output
	}
	return ctdata.NewClient(opts)
}

func createLoader(cfg Config) session.Loader {
	return session.NewLoader(createClient(cfg), telemetry.SlogAPI{})
}

// loadState fetches everything once and returns the resulting session.
func loadState(ctx context.Context, cfg Config) session.State {
	return createLoader(cfg).Snapshot(ctx, session.New())
}
