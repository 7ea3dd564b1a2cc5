package main

import (
	"fmt"
	"log/slog"
	"os"

	devenv "liquorstores/dev/env"
)

const localConfigPath = "liquorstores.local.json5"

const localConfig = `// overrides liquorstores.json5, every key is optional.
{
  // base_url: "https://data.ct.gov",
  // license_dataset: "ngch-56tr",
  // town_limit_dataset: "fiq7-t34m",
  // limit: 1500,
  // timeout_seconds: 30,
  // debounce_ms: 300,
  port: 8080,
}
`

// CreateDumpDirectory makes the directory that --verbose writes http
// exchanges to.
func CreateDumpDirectory() error {
	dir, err := devenv.ResolvePath("<dev_state>/http")
	if err != nil {
		return err
	}
	fmt.Println("creating http dump directory at", dir)
	return os.MkdirAll(dir, 0777)
}

func CreateLocalConfig() error {
	_, err := os.Stat(localConfigPath)
	if err == nil {
		fmt.Println("local config already exists at", localConfigPath)
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	fmt.Println("writing local config to", localConfigPath)
	return os.WriteFile(localConfigPath, []byte(localConfig), 0666)
}

func PrintConfigLocations() {
	slog.Info("liquorstores reads liquorstores.json5 and liquorstores.local.json5 from the working directory or any parent, telemetry is enabled by creating telemetry.json5 the same way.")
}
