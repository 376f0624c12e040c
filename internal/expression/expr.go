package expression

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Expr is an expression converted to postfix order.
type Expr struct {
	Source  string  `json:"source"`
	Infix   []Token `json:"infix,omitempty"`
	Postfix []Token `json:"postfix"`
}

// String renders the postfix lexemes separated by a space.
func (e *Expr) String() string {
	return RenderTokens(e.Postfix)
}

// Operands returns the operand tokens of the expression in postfix order.
func (e *Expr) Operands() []OperandToken {
	return lo.FilterMap(e.Postfix, func(t Token, _ int) (OperandToken, bool) {
		op, ok := t.(OperandToken)
		return op, ok
	})
}

// Variables returns the distinct variable names in order of first appearance.
func (e *Expr) Variables() []string {
	return lo.Uniq(lo.FilterMap(e.Infix, func(t Token, _ int) (string, bool) {
		op, ok := t.(OperandToken)
		return op.Lexeme(), ok && op.Type() == Variable
	}))
}

func RenderTokens(tokens []Token) string {
	return strings.Join(lo.Map(tokens, func(t Token, _ int) string {
		return t.Lexeme()
	}), " ")
}

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("MATHPARSER_EXPRESSION_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

type parser struct {
	source    string
	functions FunctionCatalog
	debug     bool
	logger    zerolog.Logger
}

// ParseExpr lexes, classifies and converts source into postfix order.
func ParseExpr(source string, functions FunctionCatalog) (*Expr, error) {
	p := &parser{source: source, functions: functions, debug: parserDebugLog}
	if p.debug {
		p.logger = debugLogger()
	}
	return p.parse()
}

func ParseExprWithDebugOutput(source string, functions FunctionCatalog) (*Expr, error) {
	return ParseExprWithLogger(source, functions, debugLogger())
}

// ParseExprWithLogger is ParseExpr writing the intermediate lexemes and
// tokens to logger at debug level.
func ParseExprWithLogger(source string, functions FunctionCatalog, logger zerolog.Logger) (*Expr, error) {
	p := &parser{source: source, functions: functions, debug: true, logger: logger}
	return p.parse()
}

func debugLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("component", "expression").Logger()
}

func (p *parser) parse() (*Expr, error) {
	lexemes, err := Split(p.source)
	if err != nil {
		return nil, fmt.Errorf("expression.Split: %w", err)
	}
	if p.debug {
		p.logger.Debug().Str("source", p.source).Str("lexemes", renderLexemes(lexemes)).Msg("split")
	}

	infix, err := Tokenize(SliceLexemes(lexemes), p.functions)
	if err != nil {
		return nil, err
	}
	if p.debug {
		p.logger.Debug().Str("source", p.source).Msg("tokens: " + pp.Sprint(infix))
	}

	postfix, err := ToPostfix(SliceTokens(infix))
	if err != nil {
		if p.debug {
			p.logger.Debug().Err(err).Str("source", p.source).Msg("conversion failed")
		}
		return nil, err
	}
	if p.debug {
		p.logger.Debug().Str("source", p.source).Str("postfix", RenderTokens(postfix)).Msg("converted")
	}

	return &Expr{
		Source:  p.source,
		Infix:   infix,
		Postfix: postfix,
	}, nil
}
