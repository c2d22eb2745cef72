package runner

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

type corpusCase struct {
	Source       string `toml:"source"`
	Store        string `toml:"store"`
	Error        string `toml:"error"`
	MaxSteps     int    `toml:"max_steps"`
	DetectCycles bool   `toml:"detect_cycles"`
}

func TestProgramCorpus(t *testing.T) {
	err := filepath.WalkDir("../testdata/programs", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".toml") {
			return nil
		}
		t.Run(filepath.Base(path), corpusTest(path))
		return nil
	})
	require.NoError(t, err)
}

func corpusTest(path string) func(t *testing.T) {
	return func(t *testing.T) {
		var tc corpusCase
		_, err := toml.DecodeFile(path, &tc)
		require.NoError(t, err)

		cfg := DefaultConfig()
		if tc.MaxSteps > 0 {
			cfg.Run.MaxSteps = tc.MaxSteps
		}
		cfg.Run.DetectCycles = tc.DetectCycles

		var out bytes.Buffer
		_, err = NewExecutor(cfg, &out).Run(path, tc.Source)
		if tc.Error != "" {
			require.Error(t, err)
			require.Equal(t, tc.Error, ErrorKind(err))
			require.NotContains(t, out.String(), "S = {")
			return
		}
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Equal(t, TraceHeader, lines[0])
		require.Equal(t, tc.Store, lines[len(lines)-1])
		require.True(t, strings.HasSuffix(lines[len(lines)-2], ": Top (empty)"))
	}
}
