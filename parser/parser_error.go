package parser

import (
	"errors"
	"fmt"
)

// SyntaxError is a lexical or grammatical error with its source position
type SyntaxError struct {
	Pos Position
	Msg string

	// AtEOF is set when the input ended before the construct did
	AtEOF bool
}

func newSyntaxError(pos Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

// errorf builds a SyntaxError at the current token. An ILLEGAL token, or an
// EOF reached through an unterminated comment, means the lexer already
// failed, and its error is the more precise one.
func (p *Parser) errorf(format string, args ...interface{}) error {
	if p.current.Type == TOKEN_ILLEGAL || p.current.Type == TOKEN_EOF {
		if err := p.lexer.Err(); err != nil {
			return err
		}
	}
	err := newSyntaxError(p.current.Position, format, args...)
	err.AtEOF = p.current.Type == TOKEN_EOF
	return err
}

// IsIncomplete reports whether err only means more input is needed, as
// when a block or call is still open at the end of a REPL line
func IsIncomplete(err error) bool {
	var syn *SyntaxError
	return errors.As(err, &syn) && syn.AtEOF
}

// unexpected reports the current token in a given context
func (p *Parser) unexpected(context string) error {
	tok := p.current
	if tok.Type == TOKEN_EOF {
		return p.errorf("unexpected end of input in %s", context)
	}
	text := tok.Value
	if tok.Type == TOKEN_STRING {
		text = tok.Literal
	}
	return p.errorf("unexpected token %s %q in %s", tok.Type, text, context)
}

// expect consumes a token of the given type or fails
func (p *Parser) expect(typ TokenType, context string) error {
	if p.current.Type != typ {
		return p.errorf("expected %s in %s, got %s", typ.Symbol(), context, p.current.Type)
	}
	p.nextToken()
	return nil
}
