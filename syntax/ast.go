package syntax

import (
	"fmt"
	"strconv"
)

// Op is a binary operator.
type Op int

const (
	ADD Op = iota
	SUB
	MUL
	DIV
	LT
	LE
	GT
	GE
	EQ
)

func (o Op) String() string {
	switch o {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case EQ:
		return "=="
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// IsComparison reports whether o yields a 0/1 truth value.
func (o Op) IsComparison() bool {
	return o >= LT
}

// Precedence levels, loosest first.
const (
	precCompare = iota + 1
	precAdditive
	precMultiplicative
	precAtom
)

func (o Op) precedence() int {
	switch o {
	case ADD, SUB:
		return precAdditive
	case MUL, DIV:
		return precMultiplicative
	}
	return precCompare
}

// Expr is an expression node. Nodes are never mutated after parsing.
type Expr interface {
	isExpr()
	Pos() Pos
	String() string
}

type IntLit struct {
	Value  int64
	Source Pos
}

type Var struct {
	Name   string
	Source Pos
}

type BinOp struct {
	Op          Op
	Left, Right Expr
	Source      Pos
}

func (*IntLit) isExpr() {}
func (*Var) isExpr()    {}
func (*BinOp) isExpr()  {}

func (e *IntLit) Pos() Pos { return e.Source }
func (e *Var) Pos() Pos    { return e.Source }
func (e *BinOp) Pos() Pos  { return e.Source }

func (e *IntLit) String() string { return strconv.FormatInt(e.Value, 10) }
func (e *Var) String() string    { return e.Name }

func (e *BinOp) String() string {
	return OperandString(e.Left, e.Op, false) + " " + e.Op.String() + " " + OperandString(e.Right, e.Op, true)
}

func precedenceOf(e Expr) int {
	if bin, ok := e.(*BinOp); ok {
		return bin.Op.precedence()
	}
	return precAtom
}

// OperandString renders child as the left or right operand of parent,
// parenthesized only where dropping the parens would re-parse differently.
// Arithmetic is left-associative, comparisons are not associative at all.
func OperandString(child Expr, parent Op, right bool) string {
	cp, pp := precedenceOf(child), parent.precedence()
	if cp < pp || (cp == pp && (right || parent.IsComparison())) {
		return "(" + child.String() + ")"
	}
	return child.String()
}

// Stmt is a statement node. Nodes are never mutated after parsing and may be
// referenced from many frames at once.
type Stmt interface {
	isStmt()
	String() string
}

// Decl declares Name. Init is nil when the declaration has no initializer.
type Decl struct {
	Name   string
	Init   Expr
	Source Pos
}

type Assign struct {
	Name   string
	Expr   Expr
	Source Pos
}

type Seq struct {
	First, Second Stmt
}

// If has a nil Else when no else branch was written.
type If struct {
	Cond       Expr
	Then, Else Stmt
	Source     Pos
}

type While struct {
	Cond   Expr
	Body   Stmt
	Source Pos
}

type Skip struct{}

func (*Decl) isStmt()   {}
func (*Assign) isStmt() {}
func (*Seq) isStmt()    {}
func (*If) isStmt()     {}
func (*While) isStmt()  {}
func (*Skip) isStmt()   {}

func (s *Decl) String() string {
	if s.Init == nil {
		return "int " + s.Name
	}
	return fmt.Sprintf("int %s = %s", s.Name, s.Init)
}

func (s *Assign) String() string {
	return fmt.Sprintf("%s = %s", s.Name, s.Expr)
}

func (s *Seq) String() string {
	return s.First.String() + "; " + s.Second.String()
}

func (s *If) String() string {
	out := fmt.Sprintf("if (%s) %s", s.Cond, BlockString(s.Then))
	if s.Else != nil {
		out += " else " + BlockString(s.Else)
	}
	return out
}

func (s *While) String() string {
	return fmt.Sprintf("while (%s) %s", s.Cond, BlockString(s.Body))
}

func (*Skip) String() string { return "skip" }

// BlockString renders s as a braced block.
func BlockString(s Stmt) string {
	if _, ok := s.(*Skip); ok {
		return "{}"
	}
	return "{ " + s.String() + " }"
}
