package types

import (
	"errors"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type ErrorTag string

const (
	InvalidInputErrorTag ErrorTag = "InvalidInput"
	ParseErrorTag        ErrorTag = "ParseError"
	CatalogErrorTag      ErrorTag = "CatalogError"
)

var (
	ErrInvalidInput = &Error{Tag: InvalidInputErrorTag}
	ErrParse        = &Error{Tag: ParseErrorTag}
	ErrCatalog      = &Error{Tag: CatalogErrorTag}
)

type Exception interface {
	error
	Exception() any
}

// Error is a tagged failure. Lexeme and Position locate the offending token
// when Lexeme is not empty.
type Error struct {
	Tag      ErrorTag
	Err      error
	Lexeme   string
	Position int
}

var _ Exception = (*Error)(nil)

func NewInvalidInputError(message string) *Error {
	return &Error{Tag: InvalidInputErrorTag, Err: errors.New(message)}
}

func NewParseError(message, lexeme string, position int) *Error {
	return &Error{Tag: ParseErrorTag, Err: errors.New(message), Lexeme: lexeme, Position: position}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Tag))
	if e.Lexeme != "" {
		b.WriteString(": Pos: ")
		b.WriteString(strconv.Itoa(e.Position))
		b.WriteString(", Token '")
		b.WriteString(e.Lexeme)
		b.WriteString("'")
		if e.Err != nil {
			b.WriteString(" : ")
			b.WriteString(e.Err.Error())
		}
		return b.String()
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same tag, so that
// errors.Is(err, types.ErrParse) works for any parse error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Tag == e.Tag
}

func (e *Error) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *Error) Exception() any {
	tags := []ErrorTag{e.Tag}
	for err := errors.Unwrap(error(e)); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			tags = append(tags, e.Tag)
		}
	}

	o := map[string]any{
		"tags":    lo.Uniq(tags),
		"message": e.Message(),
	}
	if e.Lexeme != "" {
		o["lexeme"] = e.Lexeme
		o["position"] = e.Position
	}
	return o
}
