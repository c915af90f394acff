package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at a fresh temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvConfig, "")
	for _, key := range []string{EnvDataDir, EnvLogLevel, EnvLogFormat, EnvCountry, EnvGridYear} {
		t.Setenv(key, "")
	}
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Data.Dir)
	assert.Equal(t, "US", cfg.Defaults.Country)
	assert.Equal(t, 2023, cfg.Defaults.GridYear)
	assert.Equal(t, 3, cfg.Defaults.TopN)
	assert.True(t, cfg.Defaults.UseCorrectedGrid)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
data:
  dir: /srv/carbonwise
defaults:
  country: DE
  grid_year: 2022
  top_n: 5
  use_corrected_grid: false
logging:
  level: debug
`)
	t.Setenv(EnvCountry, "FR")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/carbonwise", cfg.Data.Dir)
	assert.Equal(t, "FR", cfg.Defaults.Country)
	assert.Equal(t, 2022, cfg.Defaults.GridYear)
	assert.Equal(t, 5, cfg.Defaults.TopN)
	assert.False(t, cfg.Defaults.UseCorrectedGrid)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Output was absent from the file and keeps its defaults.
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
}

func TestLoad_PartialSectionKeepsDefaults(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults with only country",
			yaml: "defaults:\n  country: DE\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "DE", cfg.Defaults.Country)
				assert.Equal(t, DefaultGridYear, cfg.Defaults.GridYear)
				assert.Equal(t, DefaultTopN, cfg.Defaults.TopN)
				assert.True(t, cfg.Defaults.UseCorrectedGrid)
			},
		},
		{
			name: "explicit false survives",
			yaml: "defaults:\n  use_corrected_grid: false\n",
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Defaults.UseCorrectedGrid)
				assert.Equal(t, DefaultCountry, cfg.Defaults.Country)
				assert.Equal(t, DefaultGridYear, cfg.Defaults.GridYear)
			},
		},
		{
			name: "output with only precision",
			yaml: "output:\n  precision: 4\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4, cfg.Output.Precision)
				assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
			},
		},
		{
			name: "logging with only level",
			yaml: "logging:\n  level: warn\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			cfg, err := Load(writeConfig(t, dir, tt.yaml))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidate_Precision(t *testing.T) {
	cfg := Default()
	cfg.Output.Precision = MaxPrecision + 1
	require.Error(t, cfg.Validate())

	cfg.Output.Precision = -1
	require.Error(t, cfg.Validate())

	cfg.Output.Precision = 0
	require.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(writeConfig(t, dir, "defaults: [unterminated"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, dir, "output:\n  default_format: xml\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_format")

	_, err = Load(writeConfig(t, dir, "defaults:\n  top_n: -1\n"))
	require.Error(t, err)
}

func TestApplyEnv_BadGridYearIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGridYear, "next-year")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, DefaultGridYear, cfg.Defaults.GridYear)

	t.Setenv(EnvGridYear, "2021")
	cfg.ApplyEnv()
	assert.Equal(t, 2021, cfg.Defaults.GridYear)
}

func TestConfigPath(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), ConfigPath())

	t.Setenv(EnvConfig, "/etc/carbonwise.yaml")
	assert.Equal(t, "/etc/carbonwise.yaml", ConfigPath())
}

func TestGlobalConfig(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "output:\n  default_format: json\n")

	cfg := GetGlobalConfig()
	assert.Same(t, cfg, GetGlobalConfig())
	assert.Equal(t, FormatJSON, GetDefaultOutputFormat())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())
}

func TestNew_InvalidFileFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "output:\n  default_format: xml\n")
	t.Setenv(EnvCountry, "PL")

	cfg := New()
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, "PL", cfg.Defaults.Country)
}

func TestEnsureConfigDir(t *testing.T) {
	dir := isolate(t)
	nested := filepath.Join(dir, "nested")
	t.Setenv(EnvHome, nested)

	require.NoError(t, EnsureConfigDir())
	stat, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}
