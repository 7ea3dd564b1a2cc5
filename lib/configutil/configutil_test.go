package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name   string `json:"name" env:"CONFIGUTIL_TEST_NAME"`
	Limit  int    `json:"limit"`
	Nested struct {
		Url string `json:"url" env:"CONFIGUTIL_TEST_URL"`
	} `json:"nested"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		name: "base",
		limit: 10,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ limit: 20 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "base", cfg.Name)
	require.Equal(t, 20, cfg.Limit)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDefaultsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json5")
	writeFile(t, path, `{ limit: 5, nested: { url: "http://file" } }`)
	t.Setenv("CONFIGUTIL_TEST_URL", "http://env")

	defaults := testConfig{Name: "default", Limit: 1}
	cfg, err := Load(path, defaults)
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Name)
	require.Equal(t, 5, cfg.Limit)
	require.Equal(t, "http://env", cfg.Nested.Url)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.json5"), testConfig{Limit: 3})
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Limit)
}
