package expression

import (
	"errors"
	"fmt"
	"io"

	"github.com/karupanerura/go-mathparser/internal/types"
)

// TokenScanner yields tokens in source order and io.EOF when exhausted.
type TokenScanner interface {
	Next() (Token, error)
}

type sliceTokenScanner struct {
	tokens []Token
}

// SliceTokens adapts a pre-built infix token list for ToPostfix.
func SliceTokens(tokens []Token) TokenScanner {
	return &sliceTokenScanner{tokens: tokens}
}

func (s *sliceTokenScanner) Next() (Token, error) {
	if len(s.tokens) == 0 {
		return nil, io.EOF
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, nil
}

const (
	misplacedSeparatorMessage   = "parameter separator was misplaced or parentheses were mismatched"
	noMatchingLeftParenMessage  = "no matching left parenthesis found"
	noMatchingRightParenMessage = "no matching right parenthesis found"
	unrecognizedTokenMessage    = "unrecognized token"
)

// operatorStack holds OperatorTokens and left parenthesis MetaTokens.
type operatorStack []Token

func (s *operatorStack) push(t Token) {
	*s = append(*s, t)
}

func (s *operatorStack) pop() Token {
	t := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return t
}

func (s operatorStack) operatorOnTop() (OperatorToken, bool) {
	if len(s) == 0 {
		return OperatorToken{}, false
	}
	op, ok := s[len(s)-1].(OperatorToken)
	return op, ok
}

type shuntingYard struct {
	stack   operatorStack
	postfix []Token
}

// ToPostfix reorders infix tokens into postfix order using the shunting yard
// algorithm. Parentheses and commas are consumed and never emitted.
func ToPostfix(infix TokenScanner) ([]Token, error) {
	if infix == nil {
		return nil, types.NewInvalidInputError("token sequence must not be nil")
	}

	y := &shuntingYard{postfix: make([]Token, 0)}
	for {
		tok, err := infix.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		if err := y.read(tok); err != nil {
			return nil, err
		}
	}

	if err := y.flush(); err != nil {
		return nil, err
	}
	return y.postfix, nil
}

func (y *shuntingYard) read(tok Token) error {
	switch tok := tok.(type) {
	case nil:
		return types.NewInvalidInputError("token must not be nil")

	case OperandToken:
		y.postfix = append(y.postfix, tok)

	case OperatorToken:
		if !tok.Type().isValid() {
			return types.NewInvalidInputError(fmt.Sprintf("unknown operator type %d for token %q at %d", int(tok.Type()), tok.Lexeme(), tok.Position()))
		}
		if tok.Type() == Function {
			y.stack.push(tok)
			return nil
		}
		for top, ok := y.stack.operatorOnTop(); ok && popsBefore(tok.Type(), top.Type()); top, ok = y.stack.operatorOnTop() {
			y.postfix = append(y.postfix, y.stack.pop())
		}
		y.stack.push(tok)

	case MetaToken:
		switch tok.Type() {
		case LeftParenthesis:
			y.stack.push(tok)

		case Comma:
			y.popOperators()
			if len(y.stack) == 0 {
				return types.NewParseError(misplacedSeparatorMessage, tok.Lexeme(), tok.Position())
			}

		case RightParenthesis:
			y.popOperators()
			if len(y.stack) == 0 {
				return types.NewParseError(noMatchingLeftParenMessage, tok.Lexeme(), tok.Position())
			}
			y.stack.pop() // the left parenthesis

			if top, ok := y.stack.operatorOnTop(); ok && top.Type() == Function {
				y.postfix = append(y.postfix, y.stack.pop())
			}

		default:
			return types.NewInvalidInputError(fmt.Sprintf("unknown meta type %d for token %q at %d", int(tok.Type()), tok.Lexeme(), tok.Position()))
		}

	case UnknownToken:
		return types.NewParseError(unrecognizedTokenMessage, tok.Lexeme(), tok.Position())

	default:
		return types.NewInvalidInputError(fmt.Sprintf("unsupported token type %T", tok))
	}
	return nil
}

// popOperators emits operators until a non operator (a left parenthesis)
// is exposed or the stack runs out.
func (y *shuntingYard) popOperators() {
	for _, ok := y.stack.operatorOnTop(); ok; _, ok = y.stack.operatorOnTop() {
		y.postfix = append(y.postfix, y.stack.pop())
	}
}

func (y *shuntingYard) flush() error {
	for len(y.stack) != 0 {
		tok := y.stack.pop()
		if _, isParen := tok.(MetaToken); isParen {
			return types.NewParseError(noMatchingRightParenMessage, tok.Lexeme(), tok.Position())
		}
		y.postfix = append(y.postfix, tok)
	}
	return nil
}
