package expression

import "strconv"

type Operator byte

const (
	OperatorAdd        Operator = '+'
	OperatorSub        Operator = '-'
	OperatorMul        Operator = '*'
	OperatorDiv        Operator = '/'
	OperatorLeftParen  Operator = '('
	OperatorRightParen Operator = ')'
)

func (o Operator) String() string {
	return string(o)
}

func (o Operator) isBinary() bool {
	switch o {
	case OperatorAdd, OperatorSub, OperatorMul, OperatorDiv:
		return true
	default:
		return false
	}
}

// Token is one lexical unit. It is either a *NumberToken or an *OperatorToken.
type Token interface {
	BeginsPos() int
	EndsPos() int
	IsSynthetic() bool
	String() string

	token()
}

type rangeToken struct {
	beginsPos, endsPos int
}

func (t rangeToken) BeginsPos() int {
	return t.beginsPos
}

func (t rangeToken) EndsPos() int {
	return t.endsPos
}

// IsSynthetic reports whether the token was inserted by the lexer rather than read from the source.
func (t rangeToken) IsSynthetic() bool {
	return t.beginsPos == t.endsPos
}

func (rangeToken) token() {}

type NumberToken struct {
	rangeToken
	Value float64
}

func (t *NumberToken) String() string {
	return formatNumber(t.Value)
}

type OperatorToken struct {
	rangeToken
	Operator Operator
}

func (t *OperatorToken) String() string {
	return t.Operator.String()
}

func newNumberToken(beginsPos, endsPos int, value float64) *NumberToken {
	return &NumberToken{rangeToken: rangeToken{beginsPos: beginsPos, endsPos: endsPos}, Value: value}
}

func newOperatorToken(beginsPos, endsPos int, op Operator) *OperatorToken {
	return &OperatorToken{rangeToken: rangeToken{beginsPos: beginsPos, endsPos: endsPos}, Operator: op}
}

func newSyntheticToken(pos int, op Operator) *OperatorToken {
	return newOperatorToken(pos, pos, op)
}

func isOperatorToken(t Token, op Operator) bool {
	o, ok := t.(*OperatorToken)
	return ok && o.Operator == op
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
