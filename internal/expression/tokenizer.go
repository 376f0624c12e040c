package expression

import (
	"errors"
	"io"

	"github.com/karupanerura/go-mathparser/internal/types"
)

// FunctionCatalog tells whether an identifier names a known function.
type FunctionCatalog interface {
	IsKnownFunction(name string) bool
}

type FunctionCatalogFunc func(name string) bool

func (f FunctionCatalogFunc) IsKnownFunction(name string) bool {
	return f(name)
}

// NoFunctions is a catalog without any function.
var NoFunctions FunctionCatalog = FunctionCatalogFunc(func(string) bool { return false })

type tokenizerContext int

const (
	// start of expression, after an operator, a left parenthesis or a comma
	expectOperandContext tokenizerContext = iota
	// after an operand, a right parenthesis or an unknown token
	expectOperatorContext
)

// Tokenizer classifies lexemes into typed tokens. The only state it keeps
// is whether the previous token leaves the expression expecting an operand.
type Tokenizer struct {
	lexemes   LexemeScanner
	functions FunctionCatalog
	context   tokenizerContext
}

var _ TokenScanner = (*Tokenizer)(nil)

func NewTokenizer(lexemes LexemeScanner, functions FunctionCatalog) *Tokenizer {
	if functions == nil {
		functions = NoFunctions
	}
	return &Tokenizer{
		lexemes:   lexemes,
		functions: functions,
		context:   expectOperandContext,
	}
}

func (t *Tokenizer) Next() (Token, error) {
	if t.lexemes == nil {
		return nil, types.NewInvalidInputError("lexeme sequence must not be nil")
	}

	lexeme, err := t.lexemes.Next()
	if err != nil {
		return nil, err
	}

	tok := t.classify(lexeme)
	t.context = nextContext(tok)
	return tok, nil
}

func (t *Tokenizer) classify(lexeme Lexeme) Token {
	text, pos := lexeme.Text, lexeme.Position
	switch {
	case isNumericLexeme(text):
		return NewOperandToken(Numeric, text, pos)
	case isIdentifierLexeme(text):
		if t.functions.IsKnownFunction(text) {
			return NewOperatorToken(Function, text, pos)
		}
		return NewOperandToken(Variable, text, pos)
	}

	switch text {
	case "(":
		return NewMetaToken(LeftParenthesis, text, pos)
	case ")":
		return NewMetaToken(RightParenthesis, text, pos)
	case ",":
		return NewMetaToken(Comma, text, pos)
	case "*":
		return NewOperatorToken(Multiplication, text, pos)
	case "/":
		return NewOperatorToken(Division, text, pos)
	case "+":
		if t.context == expectOperandContext {
			return NewOperatorToken(UnaryPlus, text, pos)
		}
		return NewOperatorToken(Addition, text, pos)
	case "-":
		if t.context == expectOperandContext {
			return NewOperatorToken(UnaryMinus, text, pos)
		}
		return NewOperatorToken(Subtraction, text, pos)
	default:
		return NewUnknownToken(text, pos)
	}
}

func nextContext(tok Token) tokenizerContext {
	switch tok := tok.(type) {
	case OperatorToken:
		return expectOperandContext
	case MetaToken:
		if tok.Type() == RightParenthesis {
			return expectOperatorContext
		}
		return expectOperandContext
	default:
		return expectOperatorContext
	}
}

// Tokenize classifies every lexeme from lexemes.
func Tokenize(lexemes LexemeScanner, functions FunctionCatalog) ([]Token, error) {
	if lexemes == nil {
		return nil, types.NewInvalidInputError("lexeme sequence must not be nil")
	}
	return collectTokens(NewTokenizer(lexemes, functions))
}

func collectTokens(scanner TokenScanner) ([]Token, error) {
	var tokens []Token
	for {
		tok, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		} else if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}
