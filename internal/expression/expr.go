package expression

import (
	"fmt"
)

// Node is a node of the expression tree: *NumberLiteral or *BinaryOp.
type Node interface {
	String() string

	node()
}

type NumberLiteral struct {
	Value float64
}

func (*NumberLiteral) node() {}

func (n *NumberLiteral) String() string {
	return fmt.Sprintf("Number(%s)", formatNumber(n.Value))
}

// BinaryOp owns both of its operands. Operator is one of + - * /.
type BinaryOp struct {
	Operator Operator
	Left     Node
	Right    Node
}

func (*BinaryOp) node() {}

var binaryOpNames = map[Operator]string{
	OperatorAdd: "Add",
	OperatorSub: "Sub",
	OperatorMul: "Mul",
	OperatorDiv: "Div",
}

func (n *BinaryOp) String() string {
	return fmt.Sprintf("%s(%s, %s)", binaryOpNames[n.Operator], n.Left, n.Right)
}

type Expr struct {
	Source string
	Tokens []Token
	Root   Node
}

func (e *Expr) String() string {
	return e.Source
}

func (e *Expr) Evaluate() float64 {
	return Evaluate(e.Root)
}

// Eval lexes, parses and evaluates source.
func Eval(source string) (float64, error) {
	expr, err := ParseExpr(source)
	if err != nil {
		return 0, err
	}
	return expr.Evaluate(), nil
}
