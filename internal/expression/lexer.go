package expression

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexeme is a raw substring of the source and the byte offset it starts at.
type Lexeme struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

func (l Lexeme) String() string {
	return fmt.Sprintf("%q@%d", l.Text, l.Position)
}

// LexemeScanner yields lexemes in source order and io.EOF when exhausted.
type LexemeScanner interface {
	Next() (Lexeme, error)
}

type Lexer struct {
	source string
	index  int
}

var _ LexemeScanner = (*Lexer)(nil)

func NewLexer(source string) *Lexer {
	return &Lexer{source: source}
}

func (l *Lexer) Next() (Lexeme, error) {
	for l.index != len(l.source) {
		c, size := utf8.DecodeRuneInString(l.source[l.index:])
		switch {
		case unicode.IsSpace(c):
			l.index += size // just skip white spaces
		case isDigit(c):
			return l.emit(l.index, l.scanNumber()), nil
		case isIdentifierStart(c):
			return l.emit(l.index, l.scanIdentifier()), nil
		default:
			// operators, parenthesis, comma and anything else: one rune each
			return l.emit(l.index, l.index+size), nil
		}
	}
	return Lexeme{}, io.EOF
}

func (l *Lexer) emit(begins, ends int) Lexeme {
	l.index = ends
	return Lexeme{Text: l.source[begins:ends], Position: begins}
}

func (l *Lexer) scanNumber() int {
	i := l.scanDigits(l.index)
	if i+1 < len(l.source) && l.source[i] == '.' && isDigit(rune(l.source[i+1])) {
		i = l.scanDigits(i + 1)
	}
	return i
}

func (l *Lexer) scanDigits(i int) int {
	for i < len(l.source) && isDigit(rune(l.source[i])) {
		i++
	}
	return i
}

func (l *Lexer) scanIdentifier() int {
	i := l.index
	for i < len(l.source) {
		c, size := utf8.DecodeRuneInString(l.source[i:])
		if !isIdentifierPart(c) {
			break
		}
		i += size
	}
	return i
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isIdentifierStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentifierPart(c rune) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isNumericLexeme(s string) bool {
	return s != "" && isDigit(rune(s[0]))
}

func isIdentifierLexeme(s string) bool {
	c, _ := utf8.DecodeRuneInString(s)
	return s != "" && isIdentifierStart(c)
}

// Split collects every lexeme of source.
func Split(source string) ([]Lexeme, error) {
	return collectLexemes(NewLexer(source))
}

func collectLexemes(scanner LexemeScanner) ([]Lexeme, error) {
	var lexemes []Lexeme
	for {
		lexeme, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			return lexemes, nil
		} else if err != nil {
			return nil, err
		}
		lexemes = append(lexemes, lexeme)
	}
}

type sliceLexemeScanner struct {
	lexemes []Lexeme
}

// SliceLexemes adapts already split lexemes for the Tokenizer.
func SliceLexemes(lexemes []Lexeme) LexemeScanner {
	return &sliceLexemeScanner{lexemes: lexemes}
}

func (s *sliceLexemeScanner) Next() (Lexeme, error) {
	if len(s.lexemes) == 0 {
		return Lexeme{}, io.EOF
	}
	lexeme := s.lexemes[0]
	s.lexemes = s.lexemes[1:]
	return lexeme, nil
}

func renderLexemes(lexemes []Lexeme) string {
	var b strings.Builder
	for i, lexeme := range lexemes {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(lexeme.Text)
	}
	return b.String()
}
