package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10000, cfg.Run.MaxSteps)
	require.False(t, cfg.Run.DetectCycles)
	require.True(t, cfg.Output.Color)
}

func TestParseTOMLKeepsDefaults(t *testing.T) {
	cfg, err := parseTOML(strings.NewReader("[run]\ndetect_cycles = true\n"))
	require.NoError(t, err)
	require.True(t, cfg.Run.DetectCycles)
	require.Equal(t, 10000, cfg.Run.MaxSteps)
}

func TestParseTOMLRejectsUnknownKeys(t *testing.T) {
	_, err := parseTOML(strings.NewReader("[run]\nmax_step = 3\n"))
	require.ErrorContains(t, err, "run.max_step")
}

func TestParseYAML(t *testing.T) {
	cfg, err := parseYAML(strings.NewReader("run:\n  max_steps: 42\noutput:\n  color: false\n  stats: true\n"))
	require.NoError(t, err)
	require.Equal(t, 42, cfg.Run.MaxSteps)
	require.False(t, cfg.Output.Color)
	require.True(t, cfg.Output.Stats)

	_, err = parseYAML(strings.NewReader("run:\n  bogus: 1\n"))
	require.Error(t, err)

	cfg, err = parseYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	_, err := parseTOML(strings.NewReader("[run]\nmax_steps = 0\n"))
	require.Error(t, err)
	_, err = parseYAML(strings.NewReader("run:\n  cycle_cache_size: -1\n"))
	require.Error(t, err)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "br.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[run]\nmax_steps = 7\n[output]\nstats = true\n"), 0o644))
	cfg, err := LoadConfigFromFile(tomlPath)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Run.MaxSteps)
	require.True(t, cfg.Output.Stats)

	yamlPath := filepath.Join(dir, "br.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("run:\n  detect_cycles: true\n"), 0o644))
	cfg, err = LoadConfigFromFile(yamlPath)
	require.NoError(t, err)
	require.True(t, cfg.Run.DetectCycles)

	_, err = LoadConfigFromFile(filepath.Join(dir, "br.json"))
	require.Error(t, err)
}
