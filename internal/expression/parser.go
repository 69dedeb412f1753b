package expression

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/samber/lo"

	"github.com/karupanerura/eval-math-expr/internal/types"
)

var (
	additiveOperators       = []Operator{OperatorAdd, OperatorSub}
	multiplicativeOperators = []Operator{OperatorMul, OperatorDiv}
)

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("EVAL_MATH_EXPR_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

type parser struct {
	source string
	tokens []Token
	debug  bool
}

func ParseExpr(source string) (*Expr, error) {
	p := &parser{source: source, debug: parserDebugLog}
	return p.parse()
}

func ParseExprWithDebugOutput(source string) (*Expr, error) {
	p := &parser{source: source, debug: true}
	return p.parse()
}

func (p *parser) parse() (*Expr, error) {
	tokens, err := Lex(p.source)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	if p.debug {
		log.Println("tokens: ", FormatTokens(tokens))
	}

	root, err := p.parseRange(0, len(tokens))
	if err != nil {
		return nil, err
	}

	if p.debug {
		pp.Fprintln(os.Stderr, p.source)
		pp.Fprintln(os.Stderr, root)
		log.Println(root.String())
	}

	return &Expr{
		Source: p.source,
		Tokens: tokens,
		Root:   root,
	}, nil
}

// parseRange builds the tree for tokens[begin:end]. Operators are split at the
// rightmost top-level occurrence, additive ones first, which yields the usual
// precedence with left associativity.
func (p *parser) parseRange(begin, end int) (Node, error) {
	if begin == end {
		return nil, p.createMissingOperandError(begin)
	}

	if end-begin == 1 {
		if num, isNum := p.tokens[begin].(*NumberToken); isNum {
			return &NumberLiteral{Value: num.Value}, nil
		}
	}

	if p.isLoneParenPair(begin, end) {
		return p.parseRange(begin+1, end-1)
	}

	for _, ops := range [][]Operator{additiveOperators, multiplicativeOperators} {
		if idx := p.findSplitPoint(begin, end, ops); idx != -1 {
			left, err := p.parseRange(begin, idx)
			if err != nil {
				return nil, err
			}
			right, err := p.parseRange(idx+1, end)
			if err != nil {
				return nil, err
			}

			return &BinaryOp{
				Operator: p.tokens[idx].(*OperatorToken).Operator,
				Left:     left,
				Right:    right,
			}, nil
		}
	}

	return nil, p.createInvalidRangeError(begin, end)
}

// isLoneParenPair reports whether tokens[begin] and tokens[end-1] are a matching
// pair of parens wrapping the whole range.
func (p *parser) isLoneParenPair(begin, end int) bool {
	if !isOperatorToken(p.tokens[begin], OperatorLeftParen) || !isOperatorToken(p.tokens[end-1], OperatorRightParen) {
		return false
	}

	depth := 0
	for i := begin; i != end; i++ {
		if i != begin && depth == 0 {
			return false
		}
		if isOperatorToken(p.tokens[i], OperatorLeftParen) {
			depth++
		} else if isOperatorToken(p.tokens[i], OperatorRightParen) {
			depth--
		}
	}
	return true
}

// findSplitPoint scans backward for the rightmost operator in ops outside of any
// parens, returning -1 when there is none.
func (p *parser) findSplitPoint(begin, end int, ops []Operator) int {
	leftParens, rightParens := 0, 0
	for i := end - 1; i >= begin; i-- {
		op, isOP := p.tokens[i].(*OperatorToken)
		if !isOP {
			continue
		}

		switch {
		case leftParens == rightParens && lo.Contains(ops, op.Operator):
			return i
		case op.Operator == OperatorLeftParen:
			leftParens++
		case op.Operator == OperatorRightParen:
			rightParens++
		}
	}
	return -1
}

func (p *parser) createMissingOperandError(idx int) error {
	pos := len(p.source) + 1
	if idx < len(p.tokens) {
		pos = p.tokens[idx].BeginsPos() + 1
	}

	var err error
	switch {
	case len(p.tokens) == 0:
		err = fmt.Errorf("empty expression is not allowed: expr=%q", p.source)
	case idx == len(p.tokens):
		err = fmt.Errorf("missing operand at end of expression: expr=%q", p.source)
	default:
		err = fmt.Errorf("missing operand before %s at %d: expr=%q", p.tokens[idx], pos, p.source)
	}

	return &types.Error{
		Tag: types.ParseErrorTag,
		Err: err,
		Extra: map[string]any{
			"position":   pos,
			"expression": p.source,
		},
	}
}

func (p *parser) createInvalidRangeError(begin, end int) error {
	first := p.tokens[begin]
	return &types.Error{
		Tag: types.ParseErrorTag,
		Err: fmt.Errorf("invalid tokens %s at %d: expr=%q", FormatTokens(p.tokens[begin:end]), first.BeginsPos()+1, p.source),
		Extra: map[string]any{
			"position":   first.BeginsPos() + 1,
			"expression": p.source,
		},
	}
}
