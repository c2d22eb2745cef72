package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/opsem-dev/br/interp"
	"github.com/opsem-dev/br/syntax"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cfg *Config, src string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	_, err := NewExecutor(cfg, &out).Run("test", src)
	return out.String(), err
}

func TestExecutorOutput(t *testing.T) {
	out, err := run(t, nil, "int x = 5;")
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"Stack evolution by step:",
		"1: Top [eval 5]->[int x = _]",
		"2: Top [val 5]->[int x = _]",
		"3: Top (empty)",
		"S = {x |-> 5}",
		"",
	}, "\n"), out)
}

func TestExecutorScenarioB(t *testing.T) {
	out, err := run(t, nil, "int i; int x; i = 4; x = 3; while (i < 7) { x = x + i; i = i + 2; }")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Stack evolution by step:\n"))
	require.True(t, strings.HasSuffix(out, "S = {i |-> 8, x |-> 13}\n"))
	// one guard re-check per unfolding plus the final failing check
	require.Equal(t, 3, strings.Count(out, ": Top [exec while (i < 7)"))
}

func TestExecutorParseErrorWritesNothing(t *testing.T) {
	out, err := run(t, nil, "int x = ;")
	var perr *syntax.ParseError
	require.True(t, errors.As(err, &perr))
	require.Empty(t, out)

	out, err = run(t, nil, "int x = 1 # 2;")
	var lexErr *syntax.LexError
	require.True(t, errors.As(err, &lexErr))
	require.Empty(t, out)
}

func TestExecutorRuntimeErrorKeepsPartialTrace(t *testing.T) {
	out, err := run(t, nil, "int x; x = 1 / 0;")
	var divErr *interp.DivisionByZeroError
	require.True(t, errors.As(err, &divErr))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, TraceHeader, lines[0])
	require.Len(t, lines, 8)
	require.Equal(t, "7: Top [val 0]->[1 / _]->[x = _]", lines[7])
	require.NotContains(t, out, "S = {")
}

func TestExecutorDeterministic(t *testing.T) {
	src := "int a = 3; int b = 0; while (b < a * 4) { b = b + a; if (b == 6) { a = a + 1; } }"
	first, err := run(t, nil, src)
	require.NoError(t, err)
	second, err := run(t, nil, src)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExecutorStepLimitFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.MaxSteps = 25
	out, err := run(t, cfg, "int i; i = 0; while (1) { i = i + 1; }")
	var limitErr *interp.StepLimitError
	require.True(t, errors.As(err, &limitErr))
	require.Equal(t, 25, limitErr.Limit)
	require.Equal(t, 26, strings.Count(out, "\n"))
}

func TestExecutorStatistics(t *testing.T) {
	color.Enable = false
	defer func() { color.Enable = true }()

	cfg := DefaultConfig()
	cfg.Output.Stats = true
	cfg.Run.DetectCycles = true
	var out, report bytes.Buffer
	e := NewExecutor(cfg, &out)
	e.Reporter = &ColorReporter{Writer: &report}
	_, err := e.Run("test", "int x = 5;")
	require.NoError(t, err)
	require.Contains(t, report.String(), "Steps:      3\n")
	require.Contains(t, report.String(), "Max depth:  2\n")
	require.Contains(t, report.String(), "Variables:  1\n")
	require.Contains(t, report.String(), "Cycle cache: 4/1024 entries, 0 hits, 4 misses\n")

	report.Reset()
	_, err = e.Run("test", "int i; while (1) { i = i; }")
	require.Equal(t, "CycleDetected", ErrorKind(err))
	require.Contains(t, report.String(), "Cycle cache: 8/1024 entries, 2 hits, 8 misses\n")
}

func TestExecutorRunIDs(t *testing.T) {
	a := NewExecutor(nil, &bytes.Buffer{})
	b := NewExecutor(nil, &bytes.Buffer{})
	require.NotEmpty(t, a.RunID)
	require.NotEqual(t, a.RunID, b.RunID)
}
