package expression_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/eval-math-expr/internal/expression"
)

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source   string
		expected string
	}{
		{source: "1+2", expected: "1 + 2"},
		{source: "3 -4", expected: "3 - 4"},
		{source: "2*-3", expected: "2 * -3"},
		{source: "2--3", expected: "2 - -3"},
		{source: "0.50+1.", expected: "0.5 + 1"},
		{source: "1 2", expected: "1 2"},
		{source: "2(3+4)", expected: "2 * (3 + 4)"},
		{source: "2 (3)", expected: "2 (3)"},
		{source: "-(1+2)", expected: "-1 * (1 + 2)"},
		{source: "(1)(2)", expected: "(1) * (2)"},
		{source: "(1) (2)", expected: "(1) (2)"},
		{source: "(3)-4", expected: "(3) -4"},
		{source: "6/2(1+2)", expected: "6 / (2 * (1 + 2))"},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			tokens, err := expression.Lex(tt.source)
			if err != nil {
				t.Fatal(err)
			}
			formatted := expression.FormatTokens(tokens)
			if formatted != tt.expected {
				t.Errorf("expect to %q but got %q", tt.expected, formatted)
			}

			relexed, err := expression.Lex(formatted)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tokens, relexed, ignoreTokenPos); diff != "" {
				t.Errorf("re-lexed tokens differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatTokenList(t *testing.T) {
	t.Parallel()

	tokens, err := expression.Lex("-(1.5+2)")
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"-1", "*", "(", "1.5", "+", "2", ")"}
	if diff := cmp.Diff(expected, expression.FormatTokenList(tokens)); diff != "" {
		t.Errorf("unexpected token list (-want +got):\n%s", diff)
	}
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		value     float64
		precision int
		expected  string
	}{
		{value: 1, precision: 6, expected: "1.000000"},
		{value: 14, precision: 0, expected: "14"},
		{value: 1.0 / 3.0, precision: 6, expected: "0.333333"},
		{value: -0.5, precision: 2, expected: "-0.50"},
		{value: 1e21, precision: 1, expected: "1000000000000000000000.0"},
		{value: math.Inf(1), precision: 6, expected: "inf"},
		{value: math.Inf(-1), precision: 6, expected: "-inf"},
		{value: math.NaN(), precision: 6, expected: "nan"},
	} {
		tt := tt
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			if got := expression.FormatResult(tt.value, tt.precision); got != tt.expected {
				t.Errorf("expect to %q but got %q", tt.expected, got)
			}
		})
	}
}

func FuzzFormatTokens(f *testing.F) {
	for _, seed := range []string{"1+2", "2(3+4)", "-(1+2)", "(3)-4", "2--3", "1 2", "(1)(2)", ".5*-.5"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		tokens, err := expression.Lex(source)
		if err != nil {
			return
		}
		for _, tok := range tokens {
			if tok.IsSynthetic() && tok.String() != "*" {
				t.Skip("division grouping parens are not in the source")
			}
		}

		formatted := expression.FormatTokens(tokens)
		relexed, err := expression.Lex(formatted)
		if err != nil {
			t.Fatalf("re-lex %q (from %q): %v", formatted, source, err)
		}
		if diff := cmp.Diff(tokens, relexed, ignoreTokenPos); diff != "" {
			t.Errorf("re-lexed tokens of %q differ (-want +got):\n%s", source, diff)
		}
	})
}
