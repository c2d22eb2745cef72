package interp

import (
	"errors"
	"fmt"

	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
	"github.com/rs/zerolog/log"
)

// Step performs exactly one reduction on c. If it fails, c is unchanged.
func Step(c *Configuration) (StepResult, error) {
	if c.Done() {
		log.Trace().Msg("Step: empty control stack")
		return ErrorStep, errors.New("no frame to step")
	}
	top := c.Stack.Peek(0)
	log.Trace().
		Stringer("frame", top).
		Int("depth", len(c.Stack)).
		Msg("Step: reducing")

	var err error
	switch f := top.(type) {
	case ExecFrame:
		err = execStmt(c, f.Stmt)
	case EvalFrame:
		err = evalExpr(c, f.Expr)
	case ValueFrame:
		err = resume(c, f.Value)
	default:
		err = fmt.Errorf("continuation %s reached the top of the stack without a value", top)
	}
	if err != nil {
		log.Trace().Err(err).Stringer("frame", top).Msg("Step: error")
		return ErrorStep, err
	}
	if c.Done() {
		return EndStep, nil
	}
	return ContinueStep, nil
}

func execStmt(c *Configuration, stmt syntax.Stmt) error {
	switch s := stmt.(type) {
	case *syntax.Skip:
		c.Stack.Pop()
	case *syntax.Seq:
		c.Stack.Pop()
		c.Stack.Push(ExecFrame{Stmt: s.Second})
		c.Stack.Push(ExecFrame{Stmt: s.First})
	case *syntax.Decl:
		if s.Init == nil {
			if err := c.Store.Declare(s.Name, 0); err != nil {
				return err
			}
			c.Stack.Pop()
			log.Trace().Str("variable", s.Name).Msg("  DECLARE default")
			return nil
		}
		c.Stack.Pop()
		c.Stack.Push(DeclCont{Name: s.Name})
		c.Stack.Push(EvalFrame{Expr: s.Init})
	case *syntax.Assign:
		c.Stack.Pop()
		c.Stack.Push(AssignCont{Name: s.Name})
		c.Stack.Push(EvalFrame{Expr: s.Expr})
	case *syntax.If:
		c.Stack.Pop()
		c.Stack.Push(IfCont{Then: s.Then, Else: s.Else})
		c.Stack.Push(EvalFrame{Expr: s.Cond})
	case *syntax.While:
		c.Stack.Pop()
		c.Stack.Push(WhileCont{Loop: s})
		c.Stack.Push(EvalFrame{Expr: s.Cond})
	default:
		return fmt.Errorf("unknown statement %T", stmt)
	}
	return nil
}

func evalExpr(c *Configuration, expr syntax.Expr) error {
	switch e := expr.(type) {
	case *syntax.IntLit:
		c.Stack.Pop()
		c.Stack.Push(ValueFrame{Value: vm.IntValue(e.Value)})
	case *syntax.Var:
		v, err := c.Store.Lookup(e.Name)
		if err != nil {
			return err
		}
		c.Stack.Pop()
		c.Stack.Push(ValueFrame{Value: v})
		log.Trace().Str("variable", e.Name).Int64("value", int64(v)).Msg("  LOOKUP")
	case *syntax.BinOp:
		c.Stack.Pop()
		c.Stack.Push(BinLeftCont{Op: e.Op, Right: e.Right})
		c.Stack.Push(EvalFrame{Expr: e.Left})
	default:
		return fmt.Errorf("unknown expression %T", expr)
	}
	return nil
}

// resume hands v to the continuation directly below it.
func resume(c *Configuration, v vm.IntValue) error {
	if len(c.Stack) < 2 {
		return fmt.Errorf("value %d has no continuation", v)
	}
	switch k := c.Stack.Peek(1).(type) {
	case DeclCont:
		if err := c.Store.Declare(k.Name, v); err != nil {
			return err
		}
		c.popN(2)
		log.Trace().Str("variable", k.Name).Int64("value", int64(v)).Msg("  DECLARE")
	case AssignCont:
		if err := c.Store.Assign(k.Name, v); err != nil {
			return err
		}
		c.popN(2)
		log.Trace().Str("variable", k.Name).Int64("value", int64(v)).Msg("  ASSIGN")
	case IfCont:
		c.popN(2)
		if v.AsBool() {
			c.Stack.Push(ExecFrame{Stmt: k.Then})
		} else if k.Else != nil {
			c.Stack.Push(ExecFrame{Stmt: k.Else})
		}
	case WhileCont:
		c.popN(2)
		if v.AsBool() {
			// While(c, b) -> b; While(c, b)
			c.Stack.Push(ExecFrame{Stmt: k.Loop})
			c.Stack.Push(ExecFrame{Stmt: k.Loop.Body})
		}
	case BinLeftCont:
		c.popN(2)
		c.Stack.Push(BinRightCont{Op: k.Op, Left: v})
		c.Stack.Push(EvalFrame{Expr: k.Right})
	case BinRightCont:
		r, err := binaryOp(k.Op, k.Left, v)
		if err != nil {
			return err
		}
		c.popN(2)
		c.Stack.Push(ValueFrame{Value: r})
		log.Trace().Str("op", k.Op.String()).Int64("a", int64(k.Left)).Int64("b", int64(v)).Int64("result", int64(r)).Msg("  BINOP")
	default:
		return fmt.Errorf("value %d cannot resume %s", v, k)
	}
	return nil
}

func (c *Configuration) popN(n int) {
	for i := 0; i < n; i++ {
		c.Stack.Pop()
	}
}
