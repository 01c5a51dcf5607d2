package parser

import "fmt"

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_NUMBER // 42, 3.14, .5
	TOKEN_STRING // "hello"

	// Keywords
	TOKEN_LET
	TOKEN_CONST
	TOKEN_FUNCTION
	TOKEN_IF
	TOKEN_ELSE
	TOKEN_WHILE
	TOKEN_FOR
	TOKEN_RETURN
	TOKEN_BREAK
	TOKEN_CONTINUE
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL

	// Identifiers
	TOKEN_IDENTIFIER

	// Operators
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_PERCENT // %
	TOKEN_POWER   // **

	TOKEN_EQ // ==
	TOKEN_NE // !=
	TOKEN_LT // <
	TOKEN_GT // >
	TOKEN_LE // <=
	TOKEN_GE // >=

	TOKEN_AND // &&
	TOKEN_OR  // ||
	TOKEN_NOT // !

	TOKEN_ASSIGN         // =
	TOKEN_PLUS_ASSIGN    // +=
	TOKEN_MINUS_ASSIGN   // -=
	TOKEN_STAR_ASSIGN    // *=
	TOKEN_SLASH_ASSIGN   // /=
	TOKEN_PERCENT_ASSIGN // %=
	TOKEN_POWER_ASSIGN   // **=

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .
	TOKEN_COLON     // :
)

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string
	Literal  string // Decoded string value (for TOKEN_STRING)
	Position Position
}

var tokenNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ILLEGAL:        "ILLEGAL",
	TOKEN_NUMBER:         "NUMBER",
	TOKEN_STRING:         "STRING",
	TOKEN_LET:            "LET",
	TOKEN_CONST:          "CONST",
	TOKEN_FUNCTION:       "FUNCTION",
	TOKEN_IF:             "IF",
	TOKEN_ELSE:           "ELSE",
	TOKEN_WHILE:          "WHILE",
	TOKEN_FOR:            "FOR",
	TOKEN_RETURN:         "RETURN",
	TOKEN_BREAK:          "BREAK",
	TOKEN_CONTINUE:       "CONTINUE",
	TOKEN_TRUE:           "TRUE",
	TOKEN_FALSE:          "FALSE",
	TOKEN_NULL:           "NULL",
	TOKEN_IDENTIFIER:     "IDENTIFIER",
	TOKEN_PLUS:           "PLUS",
	TOKEN_MINUS:          "MINUS",
	TOKEN_STAR:           "STAR",
	TOKEN_SLASH:          "SLASH",
	TOKEN_PERCENT:        "PERCENT",
	TOKEN_POWER:          "POWER",
	TOKEN_EQ:             "EQ",
	TOKEN_NE:             "NE",
	TOKEN_LT:             "LT",
	TOKEN_GT:             "GT",
	TOKEN_LE:             "LE",
	TOKEN_GE:             "GE",
	TOKEN_AND:            "AND",
	TOKEN_OR:             "OR",
	TOKEN_NOT:            "NOT",
	TOKEN_ASSIGN:         "ASSIGN",
	TOKEN_PLUS_ASSIGN:    "PLUS_ASSIGN",
	TOKEN_MINUS_ASSIGN:   "MINUS_ASSIGN",
	TOKEN_STAR_ASSIGN:    "STAR_ASSIGN",
	TOKEN_SLASH_ASSIGN:   "SLASH_ASSIGN",
	TOKEN_PERCENT_ASSIGN: "PERCENT_ASSIGN",
	TOKEN_POWER_ASSIGN:   "POWER_ASSIGN",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_LBRACE:         "LBRACE",
	TOKEN_RBRACE:         "RBRACE",
	TOKEN_LBRACKET:       "LBRACKET",
	TOKEN_RBRACKET:       "RBRACKET",
	TOKEN_COMMA:          "COMMA",
	TOKEN_SEMICOLON:      "SEMICOLON",
	TOKEN_DOT:            "DOT",
	TOKEN_COLON:          "COLON",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// operatorSymbols is the source spelling of every operator token
var operatorSymbols = map[TokenType]string{
	TOKEN_PLUS:           "+",
	TOKEN_MINUS:          "-",
	TOKEN_STAR:           "*",
	TOKEN_SLASH:          "/",
	TOKEN_PERCENT:        "%",
	TOKEN_POWER:          "**",
	TOKEN_EQ:             "==",
	TOKEN_NE:             "!=",
	TOKEN_LT:             "<",
	TOKEN_GT:             ">",
	TOKEN_LE:             "<=",
	TOKEN_GE:             ">=",
	TOKEN_AND:            "&&",
	TOKEN_OR:             "||",
	TOKEN_NOT:            "!",
	TOKEN_ASSIGN:         "=",
	TOKEN_PLUS_ASSIGN:    "+=",
	TOKEN_MINUS_ASSIGN:   "-=",
	TOKEN_STAR_ASSIGN:    "*=",
	TOKEN_SLASH_ASSIGN:   "/=",
	TOKEN_PERCENT_ASSIGN: "%=",
	TOKEN_POWER_ASSIGN:   "**=",
}

// operators is the inverse of operatorSymbols, used by the lexer
var operators = func() map[string]TokenType {
	m := make(map[string]TokenType, len(operatorSymbols))
	for tok, sym := range operatorSymbols {
		m[sym] = tok
	}
	return m
}()

var delimiterSymbols = map[TokenType]string{
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_LBRACE:    "{",
	TOKEN_RBRACE:    "}",
	TOKEN_LBRACKET:  "[",
	TOKEN_RBRACKET:  "]",
	TOKEN_COMMA:     ",",
	TOKEN_SEMICOLON: ";",
	TOKEN_DOT:       ".",
	TOKEN_COLON:     ":",
}

// Symbol returns the source spelling of an operator or delimiter token
func (t TokenType) Symbol() string {
	if sym, ok := operatorSymbols[t]; ok {
		return sym
	}
	if sym, ok := delimiterSymbols[t]; ok {
		return "'" + sym + "'"
	}
	return t.String()
}

// compoundOperators maps compound assignment operators to the binary operator they desugar to
var compoundOperators = map[TokenType]TokenType{
	TOKEN_PLUS_ASSIGN:    TOKEN_PLUS,
	TOKEN_MINUS_ASSIGN:   TOKEN_MINUS,
	TOKEN_STAR_ASSIGN:    TOKEN_STAR,
	TOKEN_SLASH_ASSIGN:   TOKEN_SLASH,
	TOKEN_PERCENT_ASSIGN: TOKEN_PERCENT,
	TOKEN_POWER_ASSIGN:   TOKEN_POWER,
}

// Keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"let":      TOKEN_LET,
	"const":    TOKEN_CONST,
	"function": TOKEN_FUNCTION,
	"fn":       TOKEN_FUNCTION,
	"if":       TOKEN_IF,
	"else":     TOKEN_ELSE,
	"while":    TOKEN_WHILE,
	"for":      TOKEN_FOR,
	"return":   TOKEN_RETURN,
	"break":    TOKEN_BREAK,
	"continue": TOKEN_CONTINUE,
	"true":     TOKEN_TRUE,
	"false":    TOKEN_FALSE,
	"null":     TOKEN_NULL,
}

// LookupKeyword checks if an identifier is a keyword
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}
