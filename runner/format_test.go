package runner

import (
	"bytes"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind string
	}{
		{"int x = @;", "LexError"},
		{"int x", ""},
		{"int x int y", "ParseError"},
		{"int x; int x;", "RedeclarationError"},
		{"y = 1;", "UnboundVariableError"},
		{"int x; x = 1 / 0;", "DivisionByZeroError"},
		{"while (1) {}", "StepLimitExceeded"},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Run.MaxSteps = 100
			_, err := NewExecutor(cfg, &bytes.Buffer{}).Run("test", tc.src)
			if tc.kind == "" {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tc.kind, ErrorKind(err))
		})
	}
}

func TestFormatParseErrorSnippet(t *testing.T) {
	color.Enable = false
	defer func() { color.Enable = true }()

	src := "int x;\nx = ;\n"
	_, err := NewExecutor(nil, &bytes.Buffer{}).Run("test", src)
	require.Error(t, err)
	require.Equal(t,
		"error [ParseError]: parse error at 2:5: expected expression, found punctuation \";\"\n"+
			"  2 | x = ;\n"+
			"          ^\n",
		FormatError(err, src))
}

func TestFormatLexErrorSnippet(t *testing.T) {
	color.Enable = false
	defer func() { color.Enable = true }()

	src := "int x = 4 % 2;"
	_, err := NewExecutor(nil, &bytes.Buffer{}).Run("test", src)
	require.Error(t, err)
	require.Contains(t, FormatError(err, src), "  1 | int x = 4 % 2;\n"+
		"                ^\n")
}

func TestFormatCycleError(t *testing.T) {
	color.Enable = false
	defer func() { color.Enable = true }()

	cfg := DefaultConfig()
	cfg.Run.DetectCycles = true
	src := "int i; while (1) { i = i; }"
	_, err := NewExecutor(cfg, &bytes.Buffer{}).Run("test", src)
	require.Error(t, err)
	msg := FormatError(err, src)
	require.Contains(t, msg, "error [CycleDetected]: non-termination: configuration at step 8 repeats step 2")
	require.Contains(t, msg, "repeated configuration: Top [exec while (1) { i = i }]")
	require.Contains(t, msg, "with store: S = {i |-> 0}")
}

func TestFormatRuntimeError(t *testing.T) {
	color.Enable = false
	defer func() { color.Enable = true }()

	_, err := NewExecutor(nil, &bytes.Buffer{}).Run("test", "y = 1;")
	require.Equal(t,
		"error [UnboundVariableError]: step 3 [val 1]: variable \"y\" is not declared\n",
		FormatError(err, "y = 1;"))
}
