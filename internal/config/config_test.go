package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
filters:
  country: " Canada "
  intern_markers: [Intern, " co-op ", intern]
  categories:
    Software: [Software, " developer "]
sources:
  lever:
    - name: Wave
      board: waveapps
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadAppliesDefaultsAndNormalizes(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yml", minimal)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:38471", cfg.App.Listen)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 1, cfg.Fetch.Concurrency)
	assert.Equal(t, "Canadian-Internships-Auto/1.3", cfg.Fetch.UserAgent)
	assert.Equal(t, "json", cfg.Registry.Driver)
	assert.Equal(t, "jobs.json", cfg.Registry.Path)
	assert.Equal(t, "Canada", cfg.Filters.Country)
	assert.Equal(t, []string{"intern", "co-op"}, cfg.Filters.InternMarkers)
	assert.Equal(t, map[string][]string{"software": {"software", "developer"}}, cfg.Filters.Categories)
	require.Len(t, cfg.Sources.Lever, 1)
}

func TestLoadSQLiteDefaultPath(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yml", minimal+"registry:\n  driver: sqlite\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "jobs.db", cfg.Registry.Path)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "bad.yml", "filters: [oops"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "nocats.yml", "filters:\n  country: Canada\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filters.categories")

	_, err = Load(writeFile(t, dir, "driver.yml", minimal+"registry:\n  driver: postgres\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry.driver")
}

func TestNormalizeAndValidateWarnings(t *testing.T) {
	var cfg Config
	cfg.Filters.Country = "Canada"
	cfg.Filters.Categories = map[string][]string{"software": {"software"}}
	cfg.Filters.CompanyHints = map[string][]string{"ford": {"mechanical"}}
	cfg.Fetch.Concurrency = 12
	cfg.Sources.HTML = []Board{{Board: "https://example.ca/jobs"}}
	cfg.Manual = []ManualEntry{{Company: "NoURL"}}

	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK())
	assert.Len(t, vr.Warnings, 5)
	assert.NoError(t, vr.Err())
}

func TestOverlayCompanies(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yml", minimal)
	c := writeFile(t, dir, "companies.yml", `
sources:
  greenhouse:
    - name: Faire
      board: faire
manual:
  - company: SCC
    url: https://x/scc
`)

	cfg, err := LoadWithCompanies(p, c)
	require.NoError(t, err)
	require.Len(t, cfg.Sources.Greenhouse, 1)
	assert.Equal(t, "faire", cfg.Sources.Greenhouse[0].Board)
	require.Len(t, cfg.Sources.Lever, 1, "lists absent from the overlay are kept")
	require.Len(t, cfg.Manual, 1)

	cfg, err = LoadWithCompanies(p, filepath.Join(dir, "nope.yml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Sources.Greenhouse)
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()
	def := writeFile(t, dir, "default.yml", minimal)
	data := filepath.Join(dir, "data")

	p, err := EnsureUserConfig(data, def)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(data, "config.yml"), p)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, minimal, string(b))

	// existing user config is left alone
	require.NoError(t, os.WriteFile(p, []byte("edited"), 0o644))
	_, err = EnsureUserConfig(data, def)
	require.NoError(t, err)
	b, _ = os.ReadFile(p)
	assert.Equal(t, "edited", string(b))
}

func TestEnvApply(t *testing.T) {
	t.Setenv(listenEnv, "0.0.0.0:9000")
	t.Setenv(dataDirEnv, "/tmp/ih")
	t.Setenv(configEnv, "")

	e := LoadEnv()
	assert.Equal(t, "/tmp/ih", e.Dir())

	var cfg Config
	cfg.App.Listen = "127.0.0.1:38471"
	cfg.App.DataDir = "/srv/from-yaml"
	e.Apply(&cfg)
	assert.Equal(t, "0.0.0.0:9000", cfg.App.Listen)
	assert.Equal(t, "/tmp/ih", cfg.App.DataDir, "an explicit data dir beats app.data_dir")
}

func TestEnvApplyDataDirFallbacks(t *testing.T) {
	var cfg Config
	cfg.App.DataDir = "/srv/from-yaml"
	Env{}.Apply(&cfg)
	assert.Equal(t, "/srv/from-yaml", cfg.App.DataDir)

	cfg = Config{}
	Env{}.Apply(&cfg)
	assert.Equal(t, ".", cfg.App.DataDir)
	assert.Equal(t, ".", Env{}.Dir())
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Filters.Categories)
	assert.NotEmpty(t, cfg.Sources.Greenhouse)
}
