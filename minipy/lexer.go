package minipy

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer walks the source one rune at a time. A stack of indentation widths
// turns the line structure into NEWLINE/INDENT/DEDENT tokens so the parser
// can treat suites as delimited token runs.
type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune

	indents     []int
	pending     []Token
	atLineStart bool
	needNewline bool
	closed      bool
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0, indents: []int{0}, atLineStart: true}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	var r rune
	var w int
	for i := 0; i <= n; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
	return 0
}

func (l *lexer) NextToken() Token {
	tok := l.next()
	switch tok.Type {
	case tokenNewline, tokenIndent, tokenDedent, tokenEOF:
		l.needNewline = false
	default:
		l.needNewline = true
	}
	return tok
}

func (l *lexer) next() Token {
	if len(l.pending) > 0 {
		return l.popPending()
	}

	if l.atLineStart {
		if tok, ok := l.lineStart(); ok {
			return tok
		}
	}

	l.skipSpaces()
	if l.ch == '#' {
		l.skipComment()
	}

	switch l.ch {
	case 0:
		return l.finishInput()
	case '\n':
		tok := l.makeToken(tokenNewline, "\n")
		l.readRune()
		l.atLineStart = true
		return tok
	case '+':
		return l.opToken(tokenPlus, tokenPlusAssign)
	case '-':
		return l.opToken(tokenMinus, tokenMinusAssign)
	case '*':
		return l.opToken(tokenAsterisk, tokenAsteriskAssign)
	case '/':
		return l.opToken(tokenSlash, tokenSlashAssign)
	case '%':
		return l.opToken(tokenPercent, tokenPercentAssign)
	case '&':
		return l.opToken(tokenAmp, tokenAmpAssign)
	case '|':
		return l.opToken(tokenPipe, tokenPipeAssign)
	case '^':
		return l.opToken(tokenCaret, tokenCaretAssign)
	case '~':
		tok := l.makeToken(tokenTilde, "~")
		l.readRune()
		return tok
	case ':':
		tok := l.makeToken(tokenColon, ":")
		l.readRune()
		return tok
	case '(':
		tok := l.makeToken(tokenLParen, "(")
		l.readRune()
		return tok
	case ')':
		tok := l.makeToken(tokenRParen, ")")
		l.readRune()
		return tok
	case '=':
		if l.peekRune() == '=' {
			tok := l.makeToken(tokenEQ, "==")
			l.readRune()
			l.readRune()
			return tok
		}
		tok := l.makeToken(tokenAssign, "=")
		l.readRune()
		return tok
	case '!':
		if l.peekRune() == '=' {
			tok := l.makeToken(tokenNotEQ, "!=")
			l.readRune()
			l.readRune()
			return tok
		}
		tok := l.makeToken(tokenIllegal, "unexpected character '!'")
		l.readRune()
		return tok
	case '<':
		return l.angleToken('<', tokenLT, tokenLTE, tokenLShift, tokenLShiftAssign)
	case '>':
		return l.angleToken('>', tokenGT, tokenGTE, tokenRShift, tokenRShiftAssign)
	case '"':
		tok := l.makeToken(tokenString, "")
		literal, errMsg := l.readString()
		if errMsg != "" {
			tok.Type = tokenIllegal
			tok.Literal = errMsg
		} else {
			tok.Literal = literal
		}
		return tok
	default:
		switch {
		case isIdentifierStart(l.ch):
			tok := l.makeToken(tokenIdent, "")
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
			return tok
		case unicode.IsDigit(l.ch):
			tok := l.makeToken(tokenNumber, "")
			tok.Literal = l.readNumber()
			return tok
		default:
			tok := l.makeToken(tokenIllegal, "unexpected character '"+string(l.ch)+"'")
			l.readRune()
			return tok
		}
	}
}

// opToken emits either the bare operator or its augmented-assignment form.
func (l *lexer) opToken(bare, augmented TokenType) Token {
	if l.peekRune() == '=' {
		tok := l.makeToken(augmented, string(augmented))
		l.readRune()
		l.readRune()
		return tok
	}
	tok := l.makeToken(bare, string(bare))
	l.readRune()
	return tok
}

// angleToken handles the <, <=, <<, <<= family (and the > mirror).
func (l *lexer) angleToken(ch rune, bare, orEqual, shift, shiftAssign TokenType) Token {
	switch l.peekRune() {
	case '=':
		tok := l.makeToken(orEqual, string(orEqual))
		l.readRune()
		l.readRune()
		return tok
	case ch:
		if l.peekRuneN(1) == '=' {
			tok := l.makeToken(shiftAssign, string(shiftAssign))
			l.readRune()
			l.readRune()
			l.readRune()
			return tok
		}
		tok := l.makeToken(shift, string(shift))
		l.readRune()
		l.readRune()
		return tok
	default:
		tok := l.makeToken(bare, string(bare))
		l.readRune()
		return tok
	}
}

// lineStart measures the indentation of the next logical line. Blank and
// comment-only lines produce no layout tokens at all.
func (l *lexer) lineStart() (Token, bool) {
	for {
		width := 0
		for l.ch == ' ' || l.ch == '\t' {
			width++
			l.readRune()
		}
		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch == '\n' {
			l.readRune()
			continue
		}
		if l.ch == 0 {
			l.atLineStart = false
			return Token{}, false
		}

		l.atLineStart = false
		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			return l.makeToken(tokenIndent, ""), true
		case width == top:
			return Token{}, false
		default:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, l.makeToken(tokenDedent, ""))
			}
			if l.indents[len(l.indents)-1] != width {
				l.pending = append(l.pending, l.makeToken(tokenIllegal, "inconsistent indentation"))
			}
			return l.popPending(), true
		}
	}
}

// finishInput closes any open blocks once the source is exhausted. A
// final NEWLINE is synthesized when the last line has no trailing newline.
func (l *lexer) finishInput() Token {
	if !l.closed {
		l.closed = true
		if l.needNewline {
			l.pending = append(l.pending, l.makeToken(tokenNewline, ""))
		}
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, l.makeToken(tokenDedent, ""))
		}
		l.pending = append(l.pending, l.makeToken(tokenEOF, ""))
	}
	if len(l.pending) > 0 {
		return l.popPending()
	}
	return l.makeToken(tokenEOF, "")
}

func (l *lexer) popPending() Token {
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

func (l *lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readRune()
	}
}

func (l *lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readNumber consumes digits with at most one decimal point.
func (l *lexer) readNumber() string {
	var sb strings.Builder
	sb.WriteRune(l.ch)

	hasDot := false
	for {
		r := l.peekRune()
		switch {
		case r == '.' && !hasDot:
			hasDot = true
			l.readRune()
			sb.WriteRune('.')
		case unicode.IsDigit(r):
			l.readRune()
			sb.WriteRune(r)
		default:
			literal := sb.String()
			l.readRune()
			return literal
		}
	}
}

// readString consumes a double-quoted literal. The literal must close on
// the same line; hitting a newline or end of input is a lex error.
func (l *lexer) readString() (string, string) {
	var sb strings.Builder

	for {
		l.readRune()
		switch l.ch {
		case 0, '\n':
			return "", "unterminated string"
		case '"':
			l.readRune()
			return sb.String(), ""
		case '\\':
			next := l.peekRune()
			switch next {
			case '"', '\\':
				l.readRune()
				sb.WriteRune(next)
			case 'n':
				l.readRune()
				sb.WriteByte('\n')
			case 't':
				l.readRune()
				sb.WriteByte('\t')
			default:
				l.readRune()
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
