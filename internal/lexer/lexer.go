// Package lexer tokenizes Avalon source text into a stream of
// internal/token.Token values, synthesizing INDENT and DEDENT tokens
// from leading whitespace the way Python-family indentation-sensitive
// lexers do.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/token"
)

// Lexer tokenizes Avalon source.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
	file         string

	// indents is the stack of currently-open indentation widths, in
	// columns; indents[0] is always 0 (the module's top level).
	indents []int

	// pending holds INDENT/DEDENT tokens synthesized while measuring
	// a new line's leading whitespace, drained before scanning the
	// line's first real token.
	pending []token.Token

	// atLineStart is true when the next NextToken call must first
	// measure leading whitespace for indentation purposes.
	atLineStart bool

	sink *errors.Sink
}

// New creates a Lexer over the given source, reporting fatal lexical
// errors (tab/space mixing, unterminated literals) into sink. Source
// is normalized (BOM-stripped, NFC-folded) before scanning begins.
func New(src []byte, filename string, sink *errors.Sink) *Lexer {
	l := &Lexer{
		input:       string(Normalize(src)),
		file:        filename,
		line:        1,
		column:      0,
		indents:     []int{0},
		atLineStart: true,
		sink:        sink,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	size := 1
	l.ch, size = utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return ch
}

func (l *Lexer) peekAhead(n int) rune {
	pos := l.readPosition
	var ch rune
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		var size int
		ch, size = utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	return ch
}

func (l *Lexer) fatal(code, msg string) {
	l.sink.Error(errors.New(code, "lex", msg, errors.Pos{File: l.file, Line: l.line, Column: l.column}, true))
}

func isLetter(ch rune) bool { return unicode.IsLetter(ch) || ch == '_' }
func isDigit(ch rune) bool  { return ch >= '0' && ch <= '9' }

// NextToken returns the next token in the stream, emitting any queued
// INDENT/DEDENT tokens before scanning fresh input.
func (l *Lexer) NextToken() token.Token {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}
	if l.atLineStart {
		if t, ok := l.measureIndent(); ok {
			return t
		}
	}
	return l.scanToken()
}

// measureIndent consumes leading whitespace on a fresh line, compares
// it against the indent stack, and queues INDENT or DEDENT tokens as
// needed. It returns ok=false for a blank or comment-only line, which
// produces no indentation change and falls through to normal
// scanning (a NEWLINE token, or the next line's content).
func (l *Lexer) measureIndent() (token.Token, bool) {
	line, col := l.line, l.column
	width := 0
	sawTab, sawSpace := false, false
	for l.ch == ' ' || l.ch == '\t' {
		if l.ch == '\t' {
			sawTab = true
			width += 8 - (width % 8)
		} else {
			sawSpace = true
			width++
		}
		l.readChar()
	}
	if sawTab && sawSpace {
		l.fatal("LEX002", "inconsistent use of tabs and spaces in indentation")
	}
	l.atLineStart = false
	if l.ch == '\n' || l.ch == 0 || (l.ch == '-' && l.peekChar() == '-') {
		return token.Token{}, false
	}
	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		return token.New(token.INDENT, "", l.file, line, col), true
	case width < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
		}
		if l.indents[len(l.indents)-1] != width {
			l.fatal("LEX002", "unindent does not match any outer indentation level")
		}
		l.pending = append(l.pending, token.New(token.DEDENT, "", l.file, line, col))
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, token.New(token.DEDENT, "", l.file, line, col))
		}
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t, true
	default:
		return token.Token{}, false
	}
}

func (l *Lexer) scanToken() token.Token {
	l.skipBlankAndComments()

	line, col := l.line, l.column

	if l.ch == 0 {
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, token.New(token.DEDENT, "", l.file, line, col))
		}
		l.pending = append(l.pending, token.New(token.EOF, "", l.file, line, col))
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}

	if l.ch == '\n' {
		l.readChar()
		l.atLineStart = true
		return token.New(token.NEWLINE, "\n", l.file, line, col)
	}

	switch l.ch {
	case '(':
		l.readChar()
		return token.New(token.LPAREN, "(", l.file, line, col)
	case ')':
		l.readChar()
		return token.New(token.RPAREN, ")", l.file, line, col)
	case '{':
		l.readChar()
		return token.New(token.LBRACE, "{", l.file, line, col)
	case '}':
		l.readChar()
		return token.New(token.RBRACE, "}", l.file, line, col)
	case '[':
		l.readChar()
		return token.New(token.LBRACKET, "[", l.file, line, col)
	case ']':
		l.readChar()
		return token.New(token.RBRACKET, "]", l.file, line, col)
	case ',':
		l.readChar()
		return token.New(token.COMMA, ",", l.file, line, col)
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			return token.New(token.DOT, "::", l.file, line, col)
		}
		l.readChar()
		return token.New(token.COLON, ":", l.file, line, col)
	case '.':
		l.readChar()
		return token.New(token.DOT, ".", l.file, line, col)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.New(token.EQ, "==", l.file, line, col)
		}
		l.readChar()
		return token.New(token.ASSIGN, "=", l.file, line, col)
	case '+':
		l.readChar()
		return token.New(token.PLUS, "+", l.file, line, col)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.New(token.ARROW, "->", l.file, line, col)
		}
		l.readChar()
		return token.New(token.MINUS, "-", l.file, line, col)
	case '*':
		l.readChar()
		return token.New(token.STAR, "*", l.file, line, col)
	case '/':
		l.readChar()
		return token.New(token.SLASH, "/", l.file, line, col)
	case '%':
		l.readChar()
		return token.New(token.PERCENT, "%", l.file, line, col)
	case '^':
		l.readChar()
		return token.New(token.CARET, "^", l.file, line, col)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.New(token.NEQ, "!=", l.file, line, col)
		}
		l.readChar()
		return token.New(token.NOT, "!", l.file, line, col)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.New(token.LE, "<=", l.file, line, col)
		}
		l.readChar()
		return token.New(token.LT, "<", l.file, line, col)
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.New(token.GE, ">=", l.file, line, col)
		}
		l.readChar()
		return token.New(token.GT, ">", l.file, line, col)
	case '"':
		return l.readString(line, col)
	}

	if isLetter(l.ch) {
		lit := l.readIdentifier()
		kind := token.LookupIdentifier(lit)
		return token.New(kind, lit, l.file, line, col)
	}
	if isDigit(l.ch) {
		return l.readNumber(line, col)
	}

	ch := l.ch
	l.readChar()
	l.fatal("LEX001", "unexpected character '"+string(ch)+"'")
	return token.New(token.ILLEGAL, string(ch), l.file, line, col)
}

// skipBlankAndComments consumes spaces/tabs (not newlines), `--`
// line comments, and nestable `-[ ... ]-` block comments.
func (l *Lexer) skipBlankAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '-' && l.peekChar() == '[' {
			l.skipBlockComment()
			continue
		}
		break
	}
}

func (l *Lexer) skipBlockComment() {
	depth := 0
	l.readChar() // consume '-'
	l.readChar() // consume '['
	depth++
	for depth > 0 {
		if l.ch == 0 {
			l.fatal("LEX004", "unterminated block comment")
			return
		}
		if l.ch == '-' && l.peekChar() == '[' {
			l.readChar()
			l.readChar()
			depth++
			continue
		}
		if l.ch == ']' && l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			depth--
			continue
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans an integer, float, decimal, bit-string (`0b...`)
// or qubit-string (`0q...`) literal, honoring the `f`/`d` suffixes
// that force float/decimal interpretation of an otherwise-integral
// literal.
func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.position

	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar()
		l.readChar()
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			l.readChar()
		}
		return token.New(token.BIT, l.input[start:l.position], l.file, line, col)
	}
	if l.ch == '0' && (l.peekChar() == 'q' || l.peekChar() == 'Q') {
		l.readChar()
		l.readChar()
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			l.readChar()
		}
		return token.New(token.QUBIT, l.input[start:l.position], l.file, line, col)
	}

	isFloat := false
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lit := l.input[start:l.position]
	switch l.ch {
	case 'f':
		l.readChar()
		return token.New(token.FLOAT, lit, l.file, line, col)
	case 'd':
		l.readChar()
		return token.New(token.DECIMAL, lit, l.file, line, col)
	}
	if isFloat {
		return token.New(token.FLOAT, lit, l.file, line, col)
	}
	return token.New(token.INTEGER, lit, l.file, line, col)
}

// readString scans a double-quoted string literal. Avalon strings
// never contain a literal newline; one ends the literal as
// unterminated.
func (l *Lexer) readString(line, col int) token.Token {
	var out strings.Builder
	l.readChar() // opening quote
	for l.ch != '"' {
		if l.ch == 0 {
			l.fatal("LEX003", "unterminated string literal")
			break
		}
		if l.ch == '\n' {
			l.fatal("LEX005", "newline embedded in string literal")
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case 'r':
				out.WriteRune('\r')
			case '"':
				out.WriteRune('"')
			case '\\':
				out.WriteRune('\\')
			default:
				out.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		out.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar()
	}
	return token.New(token.STRING, out.String(), l.file, line, col)
}
