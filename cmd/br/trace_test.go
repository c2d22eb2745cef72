package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/opsem-dev/br/interp"
	"github.com/opsem-dev/br/runner"
	"github.com/opsem-dev/br/syntax"
	"github.com/stretchr/testify/require"
)

func traceOutput(t *testing.T, cfg *runner.Config, src string) (string, error) {
	t.Helper()
	prog, err := syntax.Parse(src)
	require.NoError(t, err)
	var out bytes.Buffer
	err = trace(&out, prog, cfg)
	return out.String(), err
}

func TestTrace(t *testing.T) {
	out, err := traceOutput(t, runner.DefaultConfig(), "int x = 5;")
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"*******",
		"Step: 0",
		"Stack: Top [exec int x = 5]",
		"NextFrame: exec int x = 5",
		"Store: S = {}",
		"*******",
		"Step: 1",
		"Stack: Top [eval 5]->[int x = _]",
		"NextFrame: eval 5",
		"Store: S = {}",
		"*******",
		"Step: 2",
		"Stack: Top [val 5]->[int x = _]",
		"NextFrame: val 5",
		"Store: S = {}",
		"*******",
		"Step: 3",
		"Stack: Top (empty)",
		"End of program",
		"Store: S = {x |-> 5}",
		"*******",
		"S = {x |-> 5}",
		"Finished",
		"",
	}, "\n"), out)
}

func TestTraceStopsAtStepLimit(t *testing.T) {
	cfg := runner.DefaultConfig()
	cfg.Run.MaxSteps = 3
	out, err := traceOutput(t, cfg, "while (1) {}")
	var limitErr *interp.StepLimitError
	require.True(t, errors.As(err, &limitErr))
	require.Equal(t, 3, limitErr.Limit)
	require.Contains(t, out, "Step: 3\n")
	require.NotContains(t, out, "Step: 4\n")
	require.NotContains(t, out, "Finished")
}

func TestTraceDetectsCycles(t *testing.T) {
	cfg := runner.DefaultConfig()
	cfg.Run.DetectCycles = true
	out, err := traceOutput(t, cfg, "int i; while (1) { i = i; }")
	var cycle *interp.CycleError
	require.True(t, errors.As(err, &cycle))
	require.Equal(t, 2, cycle.FirstSeen)
	require.Contains(t, out, "Step: 8\n")
	require.NotContains(t, out, "Step: 9\n")
}
