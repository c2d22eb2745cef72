package interp

import (
	"fmt"

	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
)

// Frame is one unit of pending work on the control stack. Frames hold
// references into the parsed program and never modify it.
type Frame interface {
	isFrame()
	String() string
}

// ExecFrame executes a statement.
type ExecFrame struct {
	Stmt syntax.Stmt
}

// EvalFrame evaluates an expression; its value is handed to the frame below.
type EvalFrame struct {
	Expr syntax.Expr
}

// ValueFrame is a finished expression value waiting for its continuation.
type ValueFrame struct {
	Value vm.IntValue
}

// Continuations. Each waits for a ValueFrame to be pushed on top of it.

type DeclCont struct {
	Name string
}

type AssignCont struct {
	Name string
}

type IfCont struct {
	Then, Else syntax.Stmt
}

type WhileCont struct {
	Loop *syntax.While
}

// BinLeftCont waits for the left operand; Right is still unevaluated.
type BinLeftCont struct {
	Op    syntax.Op
	Right syntax.Expr
}

// BinRightCont holds the left operand and waits for the right one.
type BinRightCont struct {
	Op   syntax.Op
	Left vm.IntValue
}

func (ExecFrame) isFrame()    {}
func (EvalFrame) isFrame()    {}
func (ValueFrame) isFrame()   {}
func (DeclCont) isFrame()     {}
func (AssignCont) isFrame()   {}
func (IfCont) isFrame()       {}
func (WhileCont) isFrame()    {}
func (BinLeftCont) isFrame()  {}
func (BinRightCont) isFrame() {}

func (f ExecFrame) String() string  { return "exec " + f.Stmt.String() }
func (f EvalFrame) String() string  { return "eval " + f.Expr.String() }
func (f ValueFrame) String() string { return "val " + f.Value.String() }
func (f DeclCont) String() string   { return fmt.Sprintf("int %s = _", f.Name) }
func (f AssignCont) String() string { return fmt.Sprintf("%s = _", f.Name) }

func (f IfCont) String() string {
	out := "if (_) " + syntax.BlockString(f.Then)
	if f.Else != nil {
		out += " else " + syntax.BlockString(f.Else)
	}
	return out
}

func (f WhileCont) String() string {
	return "while (_) " + syntax.BlockString(f.Loop.Body)
}

func (f BinLeftCont) String() string {
	return fmt.Sprintf("_ %s %s", f.Op, syntax.OperandString(f.Right, f.Op, true))
}

func (f BinRightCont) String() string {
	return fmt.Sprintf("%d %s _", f.Left, f.Op)
}

// ControlStack is the explicit stack of pending work. The top is the last element.
type ControlStack []Frame

func (s *ControlStack) Push(f Frame) {
	*s = append(*s, f)
}

func (s *ControlStack) Pop() Frame {
	if len(*s) == 0 {
		panic("control stack underrun")
	}
	f := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return f
}

// Peek returns the frame n below the top; Peek(0) is the top.
func (s ControlStack) Peek(n int) Frame {
	return s[len(s)-1-n]
}

// Frames renders the stack top first.
func (s ControlStack) Frames() []string {
	out := make([]string, 0, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		out = append(out, s[i].String())
	}
	return out
}

// StepResult classifies what a single Step did.
type StepResult int

const (
	ContinueStep StepResult = iota
	EndStep
	ErrorStep
)

func (r StepResult) String() string {
	switch r {
	case ContinueStep:
		return "Continue"
	case EndStep:
		return "End"
	case ErrorStep:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}
