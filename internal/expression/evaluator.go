package expression

import (
	"fmt"
)

// Evaluate folds the tree into a single value. Division by zero follows IEEE-754
// and yields +Inf, -Inf or NaN.
func Evaluate(n Node) float64 {
	switch n := n.(type) {
	case *NumberLiteral:
		return n.Value

	case *BinaryOp:
		left, right := Evaluate(n.Left), Evaluate(n.Right)
		switch n.Operator {
		case OperatorAdd:
			return left + right
		case OperatorSub:
			return left - right
		case OperatorMul:
			return left * right
		case OperatorDiv:
			return left / right
		default:
			panic(fmt.Sprintf("should not reach here: invalid operator %q", n.Operator))
		}

	default:
		panic(fmt.Sprintf("should not reach here: unknown node %T", n))
	}
}
