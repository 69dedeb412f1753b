package expression

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/karupanerura/eval-math-expr/internal/types"
)

type lexer struct {
	source string
	index  int
	tokens []Token

	// start of the pending numeric literal in source, or -1
	numberBeginsIdx int

	// literal paren depth, and the depths at which each division group was opened
	depth       int
	groupDepths []int
}

func newLexer(source string) *lexer {
	return &lexer{
		source:          source,
		index:           0,
		numberBeginsIdx: -1,
	}
}

// Lex converts source into tokens. A number or ')' glued to a following '(' gets an
// implicit '*', and a number glued to '(' right after '/' is grouped so that
// "a/b(c)" lexes as "a / ( b * ( c ) )".
func Lex(source string) ([]Token, error) {
	l := newLexer(source)
	for l.index != len(l.source) {
		if err := l.step(); err != nil {
			return nil, err
		}
	}
	if err := l.flushNumber(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) step() error {
	c := l.source[l.index]
	if isDigit(c) || c == '.' || (c == '-' && l.isSign()) {
		if l.numberBeginsIdx == -1 {
			l.numberBeginsIdx = l.index
		}
		l.index++
		return nil
	}

	var flushErr error
	if c == '(' {
		flushErr = l.flushNumberBeforeParen()
	} else {
		flushErr = l.flushNumber()
	}
	if flushErr != nil {
		return flushErr
	}

	switch c {
	case ' ', '\t', '\r', '\n':
		// just skip white spaces
	case '+', '-', '*', '/':
		l.push(newOperatorToken(l.index, l.index+1, Operator(c)))
	case '(':
		if l.index != 0 && l.source[l.index-1] == ')' {
			l.push(newSyntheticToken(l.index, OperatorMul))
		}
		l.depth++
		l.push(newOperatorToken(l.index, l.index+1, OperatorLeftParen))
	case ')':
		l.depth--
		l.push(newOperatorToken(l.index, l.index+1, OperatorRightParen))
		for n := len(l.groupDepths); n != 0 && l.groupDepths[n-1] == l.depth; n = len(l.groupDepths) {
			l.groupDepths = l.groupDepths[:n-1]
			l.push(newSyntheticToken(l.index+1, OperatorRightParen))
		}
	default:
		return l.createInvalidCharError()
	}
	l.index++
	return nil
}

// isSign reports whether the '-' at the current index starts a numeric literal.
func (l *lexer) isSign() bool {
	if l.index+1 == len(l.source) {
		return false
	}
	if next := l.source[l.index+1]; !isDigit(next) && next != '(' {
		return false
	}
	if l.index != 0 && isDigit(l.source[l.index-1]) {
		return false
	}
	if n := len(l.tokens); n != 0 {
		if _, isNum := l.tokens[n-1].(*NumberToken); isNum {
			return false
		}
	}
	return true
}

func (l *lexer) push(t Token) {
	l.tokens = append(l.tokens, t)
}

func (l *lexer) lastToken() Token {
	if len(l.tokens) == 0 {
		return nil
	}
	return l.tokens[len(l.tokens)-1]
}

func (l *lexer) flushNumber() error {
	if l.numberBeginsIdx == -1 {
		return nil
	}

	tok, err := l.takeNumber()
	if err != nil {
		return err
	}
	l.push(tok)
	return nil
}

func (l *lexer) flushNumberBeforeParen() error {
	if l.numberBeginsIdx == -1 {
		return nil
	}

	tok, err := l.takeNumber()
	if err != nil {
		return err
	}
	if last := l.lastToken(); last != nil && isOperatorToken(last, OperatorDiv) {
		l.push(newSyntheticToken(tok.BeginsPos(), OperatorLeftParen))
		l.groupDepths = append(l.groupDepths, l.depth)
	}
	l.push(tok)
	l.push(newSyntheticToken(l.index, OperatorMul))
	return nil
}

func (l *lexer) takeNumber() (*NumberToken, error) {
	beginsIdx := l.numberBeginsIdx
	l.numberBeginsIdx = -1

	literal := l.source[beginsIdx:l.index]
	if literal == "-" {
		// a bare sign before '(' negates the group
		literal = "-1"
	}

	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return nil, &types.Error{
			Tag: types.LexErrorTag,
			Err: fmt.Errorf("invalid number %s at %d: %w", l.source[beginsIdx:l.index], beginsIdx+1, err),
			Extra: map[string]any{
				"position":   beginsIdx + 1,
				"expression": l.source,
			},
		}
	}
	return newNumberToken(beginsIdx, l.index, v), nil
}

func (l *lexer) createInvalidCharError() error {
	return &types.Error{
		Tag: types.LexErrorTag,
		Err: fmt.Errorf("invalid character at %d: %q", l.index+1, l.source[l.index]),
		Extra: map[string]any{
			"position":   l.index + 1,
			"expression": l.source,
		},
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
