package lexer

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"madola/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
	atLineStart  bool // true until a non-directive token is produced on the line
}

func New(input string) *Lexer {
	l := &Lexer{input: input, atLineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	startPosition := l.position

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Literal: "==", Position: startPosition}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, startPosition)
		}
	case ':':
		tok = l.handleCompoundToken(token.COLON, '=', token.ASSIGN)
	case '+':
		tok = newToken(token.PLUS, l.ch, startPosition)
	case '-':
		tok = newToken(token.MINUS, l.ch, startPosition)
	case '!':
		tok = l.handleCompoundToken(token.BANG, '=', token.NOT_EQ)
	case '/':
		if l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			tok.Type = token.COMMENT
			tok.Literal = l.readLineText()
			tok.Position = startPosition
			return tok
		}
		tok = newToken(token.SLASH, l.ch, startPosition)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, startPosition)
	case '%':
		tok = newToken(token.PERCENT, l.ch, startPosition)
	case '^':
		tok = newToken(token.CARET, l.ch, startPosition)
	case '@':
		tok = newToken(token.AT, l.ch, startPosition)
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = token.Token{Type: token.LOGICAL_AND, Literal: "&&", Position: startPosition}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, startPosition)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = token.Token{Type: token.LOGICAL_OR, Literal: "||", Position: startPosition}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, startPosition)
		}
	case '<':
		tok = l.handleCompoundToken(token.LT, '=', token.LT_EQ)
	case '>':
		if l.atLineStart {
			l.readChar()
			tok.Type = token.PARAGRAPH
			tok.Literal = l.readLineText()
			tok.Position = startPosition
			return tok
		}
		tok = l.handleCompoundToken(token.GT, '=', token.GT_EQ)
	case '#':
		if l.atLineStart {
			tok.Type = token.HEADING
			tok.Literal = l.readLineText()
			tok.Position = startPosition
			return tok
		}
		tok = newToken(token.ILLEGAL, l.ch, startPosition)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, startPosition)
	case ',':
		tok = newToken(token.COMMA, l.ch, startPosition)
	case '.':
		if l.peekChar() == '.' && l.peekTwoChars() == '.' {
			tok = token.Token{Type: token.ELLIPSIS, Literal: "...", Position: startPosition}
			l.readChar()
			l.readChar()
		} else {
			tok = newToken(token.PERIOD, l.ch, startPosition)
		}
	case '{':
		tok = newToken(token.LBRACE, l.ch, startPosition)
	case '}':
		tok = newToken(token.RBRACE, l.ch, startPosition)
	case '(':
		tok = newToken(token.LPAREN, l.ch, startPosition)
	case ')':
		tok = newToken(token.RPAREN, l.ch, startPosition)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, startPosition)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, startPosition)
	case '"':
		str, ok := l.readString()
		if ok {
			tok = token.Token{Type: token.STRING, Literal: str, Position: startPosition}
		} else {
			tok = token.Token{Type: token.ILLEGAL, Literal: str, Position: startPosition}
		}
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
		tok.Position = startPosition
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Position = startPosition
			l.atLineStart = false
			return tok
		} else if isDigit(l.ch) {
			numStr, err := l.readNumber()
			if err != nil {
				tok = token.Token{Type: token.ILLEGAL, Literal: numStr, Position: startPosition}
				l.atLineStart = false
				return tok
			}
			tok.Type = token.NUMBER
			// a digit run glued to a bare 'i' is an imaginary literal
			if l.ch == 'i' && !isLetter(l.peekChar()) && !isDigit(l.peekChar()) {
				l.readChar()
				tok.Type = token.IMAGINARY
			}
			tok.Literal = numStr
			tok.Position = startPosition
			l.atLineStart = false
			return tok
		} else {
			tok = newToken(token.ILLEGAL, l.ch, startPosition)
		}
	}

	l.readChar()
	l.atLineStart = false
	return tok
}

func (l *Lexer) handleCompoundToken(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
) token.Token {
	startPosition := l.position
	if l.peekChar() == ch1 {
		first := l.ch
		l.readChar()
		literal := string(first) + string(l.ch)
		return token.Token{Type: t1, Literal: literal, Position: startPosition}
	}
	return newToken(t, l.ch, startPosition)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.atLineStart = true
			l.readChar()
		default:
			return
		}
	}
}

// readLineText consumes up to (not including) the newline and returns the
// text with surrounding whitespace trimmed.
func (l *Lexer) readLineText() string {
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return strings.TrimSpace(l.input[start:l.position])
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// peekTwoChars returns the rune after next without advancing; returns 0 if unavailable
func (l *Lexer) peekTwoChars() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	idx := l.readPosition + size
	if idx >= len(l.input) {
		return 0
	}
	r2, _ := utf8.DecodeRuneInString(l.input[idx:])
	return r2
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber accepts an integer or decimal literal with optional e-notation;
// underscores are allowed between digits and dropped.
func (l *Lexer) readNumber() (string, error) {
	numStr := ""
	for isDigit(l.ch) || l.ch == '_' {
		if l.ch == '_' {
			prev := l.input[l.position-1]
			if !isDigit(rune(prev)) || !isDigit(l.peekChar()) {
				return numStr, errors.New("underscore must be between digits in number literal")
			}
		} else {
			numStr += string(l.ch)
		}
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		numStr += string(l.ch)
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			if l.ch == '_' {
				prev := l.input[l.position-1]
				if !isDigit(rune(prev)) || !isDigit(l.peekChar()) {
					return numStr, errors.New("underscore must be between digits in number literal")
				}
			} else {
				numStr += string(l.ch)
			}
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) || l.peekChar() == '+' || l.peekChar() == '-' {
			numStr += string(l.ch)
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				numStr += string(l.ch)
				l.readChar()
			}
			for isDigit(l.ch) {
				numStr += string(l.ch)
				l.readChar()
			}
		}
	}
	return numStr, nil
}

// readString consumes a double-quoted literal, resolving escapes. Returns
// false when the closing quote is missing.
func (l *Lexer) readString() (string, bool) {
	var out strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case '"':
			return out.String(), true
		case 0, '\n':
			return out.String(), false
		case '\\':
			switch l.peekChar() {
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
				out.WriteRune(l.peekChar())
			}
			l.readChar()
		default:
			out.WriteRune(l.ch)
		}
	}
}

// Unicode-aware helpers
func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

func newToken(tokenType token.TokenType, ch rune, position int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Position: position}
}
