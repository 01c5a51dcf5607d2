package parser

// Lexer tokenizes Kaffee source code
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
	err          *SyntaxError
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Err returns the first lexical error encountered, if any
func (l *Lexer) Err() *SyntaxError {
	return l.err
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) fail(pos Position, format string, args ...interface{}) {
	if l.err == nil {
		l.err = newSyntaxError(pos, format, args...)
	}
}

// skipWhitespaceAndComments skips blanks, // line comments and /* */ block comments
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			start := l.pos()
			l.readChar()
			l.readChar()
			for !l.atEOF() && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.atEOF() {
				l.fail(start, "unterminated block comment")
				return
			}
			l.readChar()
			l.readChar()
		default:
			return
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespaceAndComments()
	tok.Position = l.pos()

	if l.atEOF() {
		tok.Type = TOKEN_EOF
		return tok
	}

	switch l.ch {
	case '(':
		tok.Type = TOKEN_LPAREN
	case ')':
		tok.Type = TOKEN_RPAREN
	case '{':
		tok.Type = TOKEN_LBRACE
	case '}':
		tok.Type = TOKEN_RBRACE
	case '[':
		tok.Type = TOKEN_LBRACKET
	case ']':
		tok.Type = TOKEN_RBRACKET
	case ',':
		tok.Type = TOKEN_COMMA
	case ';':
		tok.Type = TOKEN_SEMICOLON
	case ':':
		tok.Type = TOKEN_COLON
	case '"':
		return l.readString()
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		tok.Type = TOKEN_DOT
	default:
		switch {
		case isIdentStart(l.ch):
			return l.readIdentifier()
		case isDigit(l.ch):
			return l.readNumber()
		case isOperatorChar(l.ch):
			return l.readOperator()
		}
		l.fail(tok.Position, "unexpected character %q", l.ch)
		tok.Type = TOKEN_ILLEGAL
	}

	tok.Value = string(l.ch)
	l.readChar()
	return tok
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() Token {
	tok := Token{Position: l.pos()}
	start := l.position
	for !l.atEOF() && isIdentPart(l.ch) {
		l.readChar()
	}
	tok.Value = l.input[start:l.position]
	tok.Type = LookupKeyword(tok.Value)
	return tok
}

// readNumber reads a decimal number with an optional fractional part
func (l *Lexer) readNumber() Token {
	tok := Token{Type: TOKEN_NUMBER, Position: l.pos()}
	start := l.position
	for !l.atEOF() && isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for !l.atEOF() && isDigit(l.ch) {
			l.readChar()
		}
	}
	tok.Value = l.input[start:l.position]
	return tok
}

// readOperator reads the longest run of operator characters and
// rejects spellings that are not operators
func (l *Lexer) readOperator() Token {
	tok := Token{Position: l.pos()}
	start := l.position
	for !l.atEOF() && isOperatorChar(l.ch) {
		if l.position > start && l.splitsOperator() {
			if _, ok := operators[l.input[start:l.position]]; ok {
				break
			}
		}
		l.readChar()
	}
	tok.Value = l.input[start:l.position]
	typ, ok := operators[tok.Value]
	if !ok {
		l.fail(tok.Position, "%q is not a valid operator", tok.Value)
		tok.Type = TOKEN_ILLEGAL
		return tok
	}
	tok.Type = typ
	return tok
}

// splitsOperator reports whether the current char starts a new token after
// an operator: a sign or negation ("a=-1", "x==!y") or a comment ("x=/* */1").
func (l *Lexer) splitsOperator() bool {
	switch l.ch {
	case '-', '!':
		return true
	case '/':
		return l.peekChar() == '/' || l.peekChar() == '*'
	}
	return false
}

// Tokenize lexes the whole input, stopping at EOF or the first error
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var toks []Token
	for {
		tok := l.NextToken()
		if l.err != nil {
			return nil, l.err
		}
		toks = append(toks, tok)
		if tok.Type == TOKEN_EOF {
			return toks, nil
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Characters that may be part of an operator
func isOperatorChar(ch byte) bool {
	switch ch {
	case '=', '!', '+', '-', '*', '/', '%', '&', '|', '<', '>':
		return true
	}
	return false
}
