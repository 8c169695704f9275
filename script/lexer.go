package script

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Error is a script error tagged with the source location it refers
// to.
type Error struct {
	Pos Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func errorAt(pos Pos, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

type lexer struct {
	source string
	pos    Pos

	// One-token lookahead. peeked is valid when havePeek is set; a nil
	// peeked with havePeek set means end of input was already seen.
	havePeek  bool
	peeked    *token
	peekErr   error
	afterPeek Pos
}

func newLexer(source string) *lexer {
	return &lexer{source: source, pos: Pos{Line: 1, Column: 1}}
}

func (l *lexer) peekChar() (rune, bool) {
	if l.pos.Offset >= len(l.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos.Offset:])
	return r, true
}

func (l *lexer) nextChar() (rune, bool) {
	r, ok := l.peekChar()
	if !ok {
		return 0, false
	}
	l.pos.Offset += utf8.RuneLen(r)
	l.pos.Column++
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	}
	return r, true
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (*token, error) {
	if !l.havePeek {
		before := l.pos
		l.peeked, l.peekErr = l.scan()
		l.havePeek = true
		l.afterPeek = l.pos
		l.pos = before
	}
	return l.peeked, l.peekErr
}

// next returns the next token, or nil at end of input.
func (l *lexer) next() (*token, error) {
	if l.havePeek {
		tok, err := l.peeked, l.peekErr
		l.pos = l.afterPeek
		l.havePeek = false
		return tok, err
	}
	return l.scan()
}

func (l *lexer) scan() (*token, error) {
	for {
		start := l.pos
		r, ok := l.nextChar()
		if !ok {
			return nil, nil
		}

		var kind tokenKind
		switch r {
		case '(':
			kind = tokenOpenParen
		case ')':
			kind = tokenCloseParen
		case ';':
			kind = tokenSemicolon
		case '+':
			kind = tokenPlus
		case '-':
			kind = tokenMinus
		case '*':
			kind = tokenStar
		case '/':
			kind = tokenSlash
		case '^':
			kind = tokenCaret
		case '|':
			kind = tokenPipe
		case '&':
			kind = tokenAmpersand
		case '!':
			kind = tokenBang
		case '~':
			kind = tokenTilde
		case '=':
			kind = tokenEqual

		default:
			switch {
			case r == '_' || unicode.IsLetter(r):
				for {
					c, ok := l.peekChar()
					if !ok || (c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c)) {
						break
					}
					l.nextChar()
				}
				text := l.source[start.Offset:l.pos.Offset]
				if kw, ok := keywords[text]; ok {
					return &token{pos: start, kind: kw}, nil
				}
				return &token{pos: start, kind: tokenName, name: text}, nil

			case unicode.IsDigit(r):
				for {
					c, ok := l.peekChar()
					if !ok || (c != '.' && !unicode.IsDigit(c)) {
						break
					}
					l.nextChar()
				}
				text := l.source[start.Offset:l.pos.Offset]
				value, err := strconv.ParseFloat(text, 32)
				if err != nil {
					return nil, errorAt(start, "invalid number %q", text)
				}
				return &token{pos: start, kind: tokenNumber, number: float32(value)}, nil

			case unicode.IsSpace(r):
				continue

			default:
				return nil, errorAt(start, "unexpected character %q", r)
			}
		}
		return &token{pos: start, kind: kind}, nil
	}
}
