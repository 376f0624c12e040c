package expression

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/karupanerura/go-mathparser/internal/types"
	"github.com/samber/lo"
)

// TokenDef is the JSON form of a Token.
type TokenDef struct {
	Kind     string `json:"kind"`
	Type     string `json:"type,omitempty"`
	Lexeme   string `json:"lexeme"`
	Position int    `json:"position"`
}

var (
	kindByName         = lo.Invert(kindNames)
	operandTypeByName  = lo.Invert(operandTypeNames)
	operatorTypeByName = lo.Invert(operatorTypeNames)
	metaTypeByName     = lo.Invert(metaTypeNames)
)

func ParseKind(s string) (Kind, error) {
	if k, ok := kindByName[s]; ok {
		return k, nil
	}
	return 0, types.NewInvalidInputError(fmt.Sprintf("unknown token kind %q", s))
}

func toTokenDef(t Token) TokenDef {
	def := TokenDef{Kind: t.Kind().String(), Lexeme: t.Lexeme(), Position: t.Position()}
	switch t := t.(type) {
	case OperandToken:
		def.Type = t.Type().String()
	case OperatorToken:
		def.Type = t.Type().String()
	case MetaToken:
		def.Type = t.Type().String()
	}
	return def
}

func (t OperandToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(toTokenDef(t))
}

func (t OperatorToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(toTokenDef(t))
}

func (t MetaToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(toTokenDef(t))
}

func (t UnknownToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(toTokenDef(t))
}

// Token rebuilds the token described by d.
func (d TokenDef) Token() (Token, error) {
	if d.Lexeme == "" {
		return nil, types.NewInvalidInputError(fmt.Sprintf("token at %d has an empty lexeme", d.Position))
	}
	if d.Position < 0 {
		return nil, types.NewInvalidInputError(fmt.Sprintf("token %q has a negative position %d", d.Lexeme, d.Position))
	}

	kind, err := ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case OperandKind:
		if typ, ok := operandTypeByName[d.Type]; ok {
			return NewOperandToken(typ, d.Lexeme, d.Position), nil
		}
	case OperatorKind:
		if typ, ok := operatorTypeByName[d.Type]; ok {
			return NewOperatorToken(typ, d.Lexeme, d.Position), nil
		}
	case MetaKind:
		if typ, ok := metaTypeByName[d.Type]; ok {
			return NewMetaToken(typ, d.Lexeme, d.Position), nil
		}
	case UnknownKind:
		return NewUnknownToken(d.Lexeme, d.Position), nil
	}
	return nil, types.NewInvalidInputError(fmt.Sprintf("unknown %s type %q for token %q at %d", kind, d.Type, d.Lexeme, d.Position))
}

// DecodeTokenDefs rebuilds a token list, e.g. one received over the wire.
func DecodeTokenDefs(defs []TokenDef) ([]Token, error) {
	tokens := make([]Token, len(defs))
	for i, def := range defs {
		tok, err := def.Token()
		if err != nil {
			return nil, fmt.Errorf("index=%d: %w", i, err)
		}
		tokens[i] = tok
	}
	return tokens, nil
}

func EncodeTokenDefs(tokens []Token) []TokenDef {
	return lo.Map(tokens, func(t Token, _ int) TokenDef {
		return toTokenDef(t)
	})
}
