package parser

import "strings"

// escapes maps the character after a backslash to the byte it stands for
var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
}

// unescapes is escapes inverted, for QuoteString
var unescapes = func() map[byte]byte {
	m := make(map[byte]byte, len(escapes))
	for code, b := range escapes {
		m[b] = code
	}
	return m
}()

// readString scans a double-quoted literal. Value keeps the source text,
// quotes included; Literal holds the decoded text. A backslash before any
// other character is kept as written.
func (l *Lexer) readString() Token {
	tok := Token{Type: TOKEN_STRING, Position: l.pos()}
	start := l.position
	l.readChar() // opening quote

	var sb strings.Builder
	for !l.atEOF() && l.ch != '"' {
		c := l.ch
		l.readChar()
		if c != '\\' || l.atEOF() {
			sb.WriteByte(c)
			continue
		}
		if b, ok := escapes[l.ch]; ok {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('\\')
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.atEOF() {
		l.fail(tok.Position, "unterminated string")
		tok.Type = TOKEN_ILLEGAL
		tok.Value = l.input[start:]
		return tok
	}
	l.readChar() // closing quote

	tok.Value = l.input[start:l.position]
	tok.Literal = sb.String()
	return tok
}
