package expression

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// FormatTokens renders tokens back to source text. Lexing the result gives the
// same token sequence, except for the parens the lexer adds around "a/b(c)".
func FormatTokens(tokens []Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i != 0 && needsSeparator(tokens[i-1], tok) {
			b.WriteByte(' ')
		}
		if op, isOP := tok.(*OperatorToken); isOP && op.Operator.isBinary() {
			b.WriteByte(' ')
			b.WriteString(op.String())
			b.WriteByte(' ')
			continue
		}
		b.WriteString(tok.String())
	}
	return b.String()
}

// needsSeparator reports whether printing prev and next side by side would lex
// differently, either as one number or as an implicit multiplication.
func needsSeparator(prev, next Token) bool {
	_, prevIsNum := prev.(*NumberToken)
	_, nextIsNum := next.(*NumberToken)
	prevCloses := prevIsNum || isOperatorToken(prev, OperatorRightParen)
	nextOpens := nextIsNum || isOperatorToken(next, OperatorLeftParen)
	return prevCloses && nextOpens
}

// FormatTokenList renders each token on its own, mostly for diagnostics.
func FormatTokenList(tokens []Token) []string {
	return lo.Map(tokens, func(t Token, _ int) string {
		return t.String()
	})
}

// FormatResult renders v as fixed-point with precision fractional digits.
// Non-finite values are written as inf, -inf and nan.
func FormatResult(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}
