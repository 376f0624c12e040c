package expression_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/go-mathparser/internal/expression"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source   string
		expected []expression.Lexeme
	}{
		{
			source:   "",
			expected: nil,
		},
		{
			source:   " \t\n ",
			expected: nil,
		},
		{
			source: " @ADX# ",
			expected: []expression.Lexeme{
				{Text: "@", Position: 1},
				{Text: "ADX", Position: 2},
				{Text: "#", Position: 5},
			},
		},
		{
			source: " ( a + 3 ) ",
			expected: []expression.Lexeme{
				{Text: "(", Position: 1},
				{Text: "a", Position: 3},
				{Text: "+", Position: 5},
				{Text: "3", Position: 7},
				{Text: ")", Position: 9},
			},
		},
		{
			source: "12.3",
			expected: []expression.Lexeme{
				{Text: "12.3", Position: 0},
			},
		},
		{
			source: "12.",
			expected: []expression.Lexeme{
				{Text: "12", Position: 0},
				{Text: ".", Position: 2},
			},
		},
		{
			source: "1.2.3",
			expected: []expression.Lexeme{
				{Text: "1.2", Position: 0},
				{Text: ".", Position: 3},
				{Text: "3", Position: 4},
			},
		},
		{
			source: ".5",
			expected: []expression.Lexeme{
				{Text: ".", Position: 0},
				{Text: "5", Position: 1},
			},
		},
		{
			source: "_x1+y_2",
			expected: []expression.Lexeme{
				{Text: "_x1", Position: 0},
				{Text: "+", Position: 3},
				{Text: "y_2", Position: 4},
			},
		},
		{
			source: "3x",
			expected: []expression.Lexeme{
				{Text: "3", Position: 0},
				{Text: "x", Position: 1},
			},
		},
		{
			source: "pow(2,-3)/4*5",
			expected: []expression.Lexeme{
				{Text: "pow", Position: 0},
				{Text: "(", Position: 3},
				{Text: "2", Position: 4},
				{Text: ",", Position: 5},
				{Text: "-", Position: 6},
				{Text: "3", Position: 7},
				{Text: ")", Position: 8},
				{Text: "/", Position: 9},
				{Text: "4", Position: 10},
				{Text: "*", Position: 11},
				{Text: "5", Position: 12},
			},
		},
		{
			source: "αβ+1",
			expected: []expression.Lexeme{
				{Text: "αβ", Position: 0},
				{Text: "+", Position: 4},
				{Text: "1", Position: 5},
			},
		},
		{
			source: "1 € 2",
			expected: []expression.Lexeme{
				{Text: "1", Position: 0},
				{Text: "€", Position: 2},
				{Text: "2", Position: 6},
			},
		},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			lexemes, err := expression.Split(tt.source)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.expected, lexemes); diff != "" {
				t.Errorf("unexpected lexemes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexerIsLazy(t *testing.T) {
	t.Parallel()

	lex := expression.NewLexer("a + b")
	first, err := lex.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first != (expression.Lexeme{Text: "a", Position: 0}) {
		t.Errorf("unexpected first lexeme: %v", first)
	}

	rest, err := expression.Tokenize(lex, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := expression.RenderTokens(rest); got != "+ b" {
		t.Errorf("expect to %q but got %q", "+ b", got)
	}
}
