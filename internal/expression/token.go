package expression

import "fmt"

type Kind int

const (
	OperandKind Kind = iota
	OperatorKind
	MetaKind
	UnknownKind
)

var kindNames = map[Kind]string{
	OperandKind:  "operand",
	OperatorKind: "operator",
	MetaKind:     "meta",
	UnknownKind:  "unknown",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type OperandType int

const (
	Numeric OperandType = iota
	Variable
)

var operandTypeNames = map[OperandType]string{
	Numeric:  "Numeric",
	Variable: "Variable",
}

func (t OperandType) String() string {
	if s, ok := operandTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("OperandType(%d)", int(t))
}

type OperatorType int

const (
	UnaryPlus OperatorType = iota
	Addition
	UnaryMinus
	Subtraction
	Multiplication
	Division
	Function
)

var operatorTypeNames = map[OperatorType]string{
	UnaryPlus:      "UnaryPlus",
	Addition:       "Addition",
	UnaryMinus:     "UnaryMinus",
	Subtraction:    "Subtraction",
	Multiplication: "Multiplication",
	Division:       "Division",
	Function:       "Function",
}

func (t OperatorType) String() string {
	if s, ok := operatorTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("OperatorType(%d)", int(t))
}

type MetaType int

const (
	LeftParenthesis MetaType = iota
	RightParenthesis
	Comma
)

var metaTypeNames = map[MetaType]string{
	LeftParenthesis:  "LeftParenthesis",
	RightParenthesis: "RightParenthesis",
	Comma:            "Comma",
}

func (t MetaType) String() string {
	if s, ok := metaTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("MetaType(%d)", int(t))
}

// Token is a lexeme with its semantic type. The set of implementations is
// closed: OperandToken, OperatorToken, MetaToken and UnknownToken.
type Token interface {
	Lexeme() string
	Position() int
	Kind() Kind
	fmt.Stringer

	sealed()
}

type lexemeToken struct {
	lexeme   string
	position int
}

func (t lexemeToken) Lexeme() string {
	return t.lexeme
}

func (t lexemeToken) Position() int {
	return t.position
}

func (lexemeToken) sealed() {}

type OperandToken struct {
	lexemeToken
	typ OperandType
}

func NewOperandToken(typ OperandType, lexeme string, position int) OperandToken {
	return OperandToken{lexemeToken: lexemeToken{lexeme: lexeme, position: position}, typ: typ}
}

func (OperandToken) Kind() Kind {
	return OperandKind
}

func (t OperandToken) Type() OperandType {
	return t.typ
}

func (t OperandToken) String() string {
	return fmt.Sprintf("%s(%q@%d)", t.typ, t.lexeme, t.position)
}

type OperatorToken struct {
	lexemeToken
	typ OperatorType
}

func NewOperatorToken(typ OperatorType, lexeme string, position int) OperatorToken {
	return OperatorToken{lexemeToken: lexemeToken{lexeme: lexeme, position: position}, typ: typ}
}

func (OperatorToken) Kind() Kind {
	return OperatorKind
}

func (t OperatorToken) Type() OperatorType {
	return t.typ
}

func (t OperatorToken) Precedence() Precedence {
	return t.typ.Precedence()
}

func (t OperatorToken) Associativity() Associativity {
	return t.typ.Associativity()
}

func (t OperatorToken) String() string {
	return fmt.Sprintf("%s(%q@%d)", t.typ, t.lexeme, t.position)
}

type MetaToken struct {
	lexemeToken
	typ MetaType
}

func NewMetaToken(typ MetaType, lexeme string, position int) MetaToken {
	return MetaToken{lexemeToken: lexemeToken{lexeme: lexeme, position: position}, typ: typ}
}

func (MetaToken) Kind() Kind {
	return MetaKind
}

func (t MetaToken) Type() MetaType {
	return t.typ
}

func (t MetaToken) String() string {
	return fmt.Sprintf("%s(%q@%d)", t.typ, t.lexeme, t.position)
}

// UnknownToken carries a lexeme matching no grammar of the language.
type UnknownToken struct {
	lexemeToken
}

func NewUnknownToken(lexeme string, position int) UnknownToken {
	return UnknownToken{lexemeToken{lexeme: lexeme, position: position}}
}

func (UnknownToken) Kind() Kind {
	return UnknownKind
}

func (t UnknownToken) String() string {
	return fmt.Sprintf("Unknown(%q@%d)", t.lexeme, t.position)
}
