// Package lexer tokenizes the WHERE-clause dialect. Grounded on
// ha1tch-tsqlparser/lexer's rune-aware readChar/peekChar scanner with
// line/column tracking, adapted to this dialect's smaller token set plus
// the size-suffix extension to numeric literals.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/robomac/qfind/token"
)

// Lexer scans a query string into a stream of tokens, one NextToken call
// at a time.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	width        int
	line         int
	column       int
}

// New returns a Lexer positioned before the first rune of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.width = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.width = w
	}
	l.position = l.readPosition
	l.readPosition += l.width
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Offset: l.position, Line: l.line, Column: l.column}
}

func isLetter(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken scans and returns the next token, advancing the lexer.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	pos := l.pos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Literal: "", Pos: pos}
	case l.ch == '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}
	case l.ch == ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}
	case l.ch == ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Literal: ",", Pos: pos}
	case l.ch == '=':
		l.readChar()
		return token.Token{Type: token.EQ, Literal: "=", Pos: pos}
	case l.ch == '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NEQ, Literal: "!=", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: "!", Pos: pos}
	case l.ch == '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LTE, Literal: "<=", Pos: pos}
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NEQ, Literal: "<>", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.LT, Literal: "<", Pos: pos}
	case l.ch == '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.GTE, Literal: ">=", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.GT, Literal: ">", Pos: pos}
	case l.ch == '\'' || l.ch == '"':
		return l.readString(pos)
	case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())):
		return l.readNumber(pos)
	case isLetter(l.ch):
		return l.readIdent(pos)
	default:
		ch := l.ch
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: pos}
	}
}

func (l *Lexer) readString(pos token.Position) token.Token {
	quote := l.ch
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\':
				sb.WriteRune('\\')
			case '\'':
				sb.WriteRune('\'')
			case '"':
				sb.WriteRune('"')
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == quote {
		l.readChar() // consume closing quote
	}
	return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]

	if suffix, ok := sizeSuffix(l.ch); ok && !isIdentContinuation(l.peekChar()) {
		l.readChar()
		return token.Token{Type: token.SIZE, Literal: lit + string(suffix), Pos: pos}
	}
	return token.Token{Type: token.NUMBER, Literal: lit, Pos: pos}
}

func sizeSuffix(r rune) (rune, bool) {
	switch r {
	case 'B', 'b', 'K', 'k', 'M', 'm', 'G', 'g', 'T', 't':
		return r, true
	default:
		return 0, false
	}
}

func isIdentContinuation(r rune) bool { return isLetter(r) || isDigit(r) }

func (l *Lexer) readIdent(pos token.Position) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	t := token.LookupIdent(strings.ToUpper(lit))
	return token.Token{Type: t, Literal: lit, Pos: pos}
}
