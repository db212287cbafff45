package query

import (
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenString
	TokenField
	TokenPhrase
)

// Token is one lexeme; Pos is its rune offset in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

type Lexer struct {
	input []rune
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}
	}

	// Фраза в кавычках остаётся одним токеном вместе с кавычками
	if l.input[l.pos] == '"' {
		return l.readPhrase()
	}

	// Читаем токен до пробела ИЛИ до двоеточия (если это поле)
	start := l.pos
	for l.pos < len(l.input) && !unicode.IsSpace(l.input[l.pos]) {
		if l.input[l.pos] == ':' && l.pos > start {
			word := string(l.input[start:l.pos])
			l.pos++ // съедаем двоеточие
			return Token{Type: TokenField, Value: word, Pos: start}
		}
		l.pos++
	}

	return Token{Type: TokenString, Value: string(l.input[start:l.pos]), Pos: start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) readPhrase() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.pos++
	}
	if l.pos < len(l.input) {
		l.pos++
	}
	return Token{Type: TokenPhrase, Value: string(l.input[start:l.pos]), Pos: start}
}

// Tokens returns every token up to EOF.
func Tokens(input string) []Token {
	l := NewLexer(input)
	var out []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return out
		}
		out = append(out, tok)
	}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
