package interp

import (
	"fmt"

	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
)

// binaryOp applies op with 64-bit wrap-around; division truncates toward zero.
func binaryOp(op syntax.Op, a, b vm.IntValue) (vm.IntValue, error) {
	switch op {
	case syntax.ADD:
		return a + b, nil
	case syntax.SUB:
		return a - b, nil
	case syntax.MUL:
		return a * b, nil
	case syntax.DIV:
		if b == 0 {
			return 0, &DivisionByZeroError{Dividend: int64(a)}
		}
		return a / b, nil
	case syntax.LT:
		return vm.FromBool(a < b), nil
	case syntax.LE:
		return vm.FromBool(a <= b), nil
	case syntax.GT:
		return vm.FromBool(a > b), nil
	case syntax.GE:
		return vm.FromBool(a >= b), nil
	case syntax.EQ:
		return vm.FromBool(a == b), nil
	}
	return 0, fmt.Errorf("unknown operator %s", op)
}
