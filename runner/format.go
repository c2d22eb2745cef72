package runner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/opsem-dev/br/cas"
	"github.com/opsem-dev/br/interp"
	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
)

// ErrorKind names the failure class of err.
func ErrorKind(err error) string {
	var (
		lexErr   *syntax.LexError
		parseErr *syntax.ParseError
		redecl   *vm.RedeclarationError
		unbound  *vm.UnboundVariableError
		divErr   *interp.DivisionByZeroError
		limitErr *interp.StepLimitError
		cycleErr *interp.CycleError
	)
	switch {
	case errors.As(err, &lexErr):
		return "LexError"
	case errors.As(err, &parseErr):
		return "ParseError"
	case errors.As(err, &redecl):
		return "RedeclarationError"
	case errors.As(err, &unbound):
		return "UnboundVariableError"
	case errors.As(err, &divErr):
		return "DivisionByZeroError"
	case errors.As(err, &limitErr):
		return "StepLimitExceeded"
	case errors.As(err, &cycleErr):
		return "CycleDetected"
	}
	return "Error"
}

// FormatError renders the diagnostic for a failed run of src.
func FormatError(err error, src string) string {
	var b strings.Builder
	b.WriteString(color.Red.Sprint("error"))
	b.WriteString(color.Bold.Sprintf(" [%s]", ErrorKind(err)))
	fmt.Fprintf(&b, ": %v\n", err)

	var (
		lexErr   *syntax.LexError
		parseErr *syntax.ParseError
		cycleErr *interp.CycleError
	)
	switch {
	case errors.As(err, &lexErr):
		writeSnippet(&b, src, lexErr.Offset)
	case errors.As(err, &parseErr):
		writeSnippet(&b, src, parseErr.Found.Pos.Offset)
	case errors.As(err, &cycleErr):
		b.WriteString(color.Gray.Sprint("  repeated configuration: "))
		b.WriteString(interp.RenderStack(cycleErr.Repeated.Frames))
		b.WriteString("\n")
		b.WriteString(color.Gray.Sprint("  with store: "))
		b.WriteString(vm.FormatStore(cycleErr.Repeated.Store))
		b.WriteString("\n")
	}
	return b.String()
}

// writeSnippet shows the source line containing offset with a caret under it.
func writeSnippet(b *strings.Builder, src string, offset int) {
	if offset < 0 || offset > len(src) {
		return
	}
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	line := 1 + strings.Count(src[:start], "\n")
	prefix := fmt.Sprintf("  %d | ", line)
	b.WriteString(color.Gray.Sprint(prefix))
	b.WriteString(src[start:end])
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", len(prefix)+len([]rune(src[start:offset]))))
	b.WriteString(color.Red.Sprint("^"))
	b.WriteString("\n")
}

// Statistics summarizes a run for --stats.
type Statistics struct {
	Steps     int
	MaxDepth  int
	Variables int
	Elapsed   time.Duration
	Cache     *cas.CacheStats
}

func FormatStatistics(s Statistics) string {
	var b strings.Builder
	b.WriteString(color.Gray.Sprint("--------------------------------------------------------------------------------"))
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprint("Statistics:"))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("  Steps:      "))
	fmt.Fprintf(&b, "%d\n", s.Steps)
	b.WriteString(color.Bold.Sprint("  Max depth:  "))
	fmt.Fprintf(&b, "%d\n", s.MaxDepth)
	b.WriteString(color.Bold.Sprint("  Variables:  "))
	fmt.Fprintf(&b, "%d\n", s.Variables)
	if s.Cache != nil {
		b.WriteString(color.Bold.Sprint("  Cycle cache: "))
		fmt.Fprintf(&b, "%d/%d entries, %d hits, %d misses\n", s.Cache.Size, s.Cache.MaxSize, s.Cache.Hits, s.Cache.Misses)
	}
	b.WriteString(color.Bold.Sprint("  Elapsed:    "))
	fmt.Fprintf(&b, "%s\n", s.Elapsed.Round(time.Microsecond))
	return b.String()
}
