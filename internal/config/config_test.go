package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDir_Override(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("RANGEPICK_DATA_DIR", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), path)

	logDir, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs"), logDir)
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("RANGEPICK_CONFIG", "/tmp/custom.yaml")

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, time.Sunday, cfg.Weekday())
}

func TestLoadFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
label: Reporting period
placeholder: Pick dates
disable_future: true
week_start: monday
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Reporting period", cfg.Label)
	assert.Equal(t, "Pick dates", cfg.Placeholder)
	assert.Equal(t, Default().Description, cfg.Description)
	assert.Equal(t, time.Monday, cfg.Weekday())
	assert.Equal(t, daterange.DefaultYearSpan, cfg.YearSpan)
	assert.IsType(t, daterange.DisableFuture{}, cfg.Policy(daterange.AllowAll{}))
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("label: [unclosed"), 0644))
	_, err := LoadFile(badYAML)
	assert.Error(t, err)

	badWeek := filepath.Join(dir, "week.yaml")
	require.NoError(t, os.WriteFile(badWeek, []byte("week_start: friday\n"), 0644))
	cfg, err := LoadFile(badWeek)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	off := false

	cfg := Default()
	cfg.Label = "Stay dates"
	cfg.DisableFuture = &off

	require.NoError(t, Save(path, cfg))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.IsType(t, daterange.AllowAll{}, loaded.Policy(daterange.DisableFuture{}))
}

func TestPolicy_DefaultWhenUnset(t *testing.T) {
	def := daterange.DisableFuture{}
	assert.Equal(t, def, Default().Policy(def))
}
