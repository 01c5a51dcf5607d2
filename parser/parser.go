package parser

import (
	"strconv"
)

// Operator precedence levels (higher = tighter binding)
const (
	PREC_LOWEST = iota
	PREC_ASSIGN     // = += -= ...
	PREC_OR         // ||
	PREC_AND        // &&
	PREC_EQUALITY   // == !=
	PREC_COMPARISON // < <= > >=
	PREC_ADDITIVE   // + -
	PREC_MULTIPLY   // * / %
	PREC_POWER      // **
	PREC_UNARY      // - !
	PREC_POSTFIX    // call, .name, [index]
)

var binaryPrecedence = map[TokenType]int{
	TOKEN_OR:      PREC_OR,
	TOKEN_AND:     PREC_AND,
	TOKEN_EQ:      PREC_EQUALITY,
	TOKEN_NE:      PREC_EQUALITY,
	TOKEN_LT:      PREC_COMPARISON,
	TOKEN_GT:      PREC_COMPARISON,
	TOKEN_LE:      PREC_COMPARISON,
	TOKEN_GE:      PREC_COMPARISON,
	TOKEN_PLUS:    PREC_ADDITIVE,
	TOKEN_MINUS:   PREC_ADDITIVE,
	TOKEN_STAR:    PREC_MULTIPLY,
	TOKEN_SLASH:   PREC_MULTIPLY,
	TOKEN_PERCENT: PREC_MULTIPLY,
	TOKEN_POWER:   PREC_POWER,
}

// Parser parses Kaffee source code into statements and expressions
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete program
func Parse(input string) ([]Stmt, error) {
	return NewParser(input).ParseProgram()
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// ParseExpression parses an expression whose binary operators bind tighter than prec
func (p *Parser) ParseExpression(prec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		opPrec, ok := binaryPrecedence[p.current.Type]
		if !ok || opPrec <= prec {
			break
		}
		op := p.current
		p.nextToken()

		// ** is right-associative
		nextPrec := opPrec
		if op.Type == TOKEN_POWER {
			nextPrec = opPrec - 1
		}
		right, err := p.ParseExpression(nextPrec)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: op.Position, Left: left, Operator: op.Type, Right: right}
	}

	if prec < PREC_ASSIGN && isAssignOperator(p.current.Type) {
		return p.parseAssignment(left)
	}
	return left, nil
}

func isAssignOperator(t TokenType) bool {
	if t == TOKEN_ASSIGN {
		return true
	}
	_, ok := compoundOperators[t]
	return ok
}

// parseAssignment parses the right side of target = value. Compound
// forms are desugared: t += v becomes t = t + v.
func (p *Parser) parseAssignment(target Expr) (Expr, error) {
	op := p.current
	switch target.(type) {
	case *IdentifierExpr, *PropertyExpr, *IndexExpr:
	default:
		return nil, p.errorf("invalid assignment target")
	}
	p.nextToken()

	value, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if binOp, ok := compoundOperators[op.Type]; ok {
		value = &BinaryExpr{Pos: op.Position, Left: target, Operator: binOp, Right: value}
	}
	return &AssignExpr{Pos: op.Position, Target: target, Value: value}, nil
}

// parseUnary parses prefix - and !
func (p *Parser) parseUnary() (Expr, error) {
	if p.current.Type == TOKEN_MINUS || p.current.Type == TOKEN_NOT {
		op := p.current
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Pos: op.Position, Operator: op.Type, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any calls, .name and [index] suffixes
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TOKEN_LPAREN:
			pos := p.current.Position
			args, err := p.parseDelimited(TOKEN_LPAREN, TOKEN_RPAREN, "call arguments")
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Pos: pos, Callee: expr, Args: args}
		case TOKEN_DOT:
			pos := p.current.Position
			p.nextToken()
			if p.current.Type != TOKEN_IDENTIFIER {
				return nil, p.unexpected("property access")
			}
			expr = &PropertyExpr{Pos: pos, Expr: expr, Property: p.current.Value}
			p.nextToken()
		case TOKEN_LBRACKET:
			pos := p.current.Position
			p.nextToken()
			index, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			if err := p.expect(TOKEN_RBRACKET, "index"); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Pos: pos, Expr: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

// parsePrimary parses literals, identifiers, groups, and object/array/function literals
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.current
	switch tok.Type {
	case TOKEN_NUMBER:
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", tok.Value)
		}
		p.nextToken()
		return &NumberLit{Pos: tok.Position, Value: val}, nil
	case TOKEN_STRING:
		p.nextToken()
		return &StringLit{Pos: tok.Position, Value: tok.Literal}, nil
	case TOKEN_TRUE, TOKEN_FALSE:
		p.nextToken()
		return &BoolLit{Pos: tok.Position, Value: tok.Type == TOKEN_TRUE}, nil
	case TOKEN_NULL:
		p.nextToken()
		return &NullLit{Pos: tok.Position}, nil
	case TOKEN_IDENTIFIER:
		p.nextToken()
		return &IdentifierExpr{Pos: tok.Position, Name: tok.Value}, nil
	case TOKEN_LPAREN:
		p.nextToken()
		expr, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOKEN_RPAREN, "parenthesized expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case TOKEN_LBRACE:
		return p.parseObjectLiteral()
	case TOKEN_LBRACKET:
		return p.parseArrayLiteral()
	case TOKEN_FUNCTION:
		p.nextToken()
		if p.current.Type == TOKEN_IDENTIFIER {
			return nil, p.errorf("named function %q is not allowed in an expression", p.current.Value)
		}
		params, body, err := p.parseFunctionRest()
		if err != nil {
			return nil, err
		}
		return &FunctionExpr{Pos: tok.Position, Params: params, Body: body}, nil
	default:
		return nil, p.unexpected("expression")
	}
}

// parseDelimited parses open expr, expr, ... close
func (p *Parser) parseDelimited(open, close TokenType, context string) ([]Expr, error) {
	if err := p.expect(open, context); err != nil {
		return nil, err
	}

	var items []Expr
	for p.current.Type != close {
		item, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken() // skip ','
	}

	if err := p.expect(close, context); err != nil {
		return nil, err
	}
	return items, nil
}

// parseFunctionRest parses (params) { body } after the function keyword and optional name
func (p *Parser) parseFunctionRest() ([]string, []Stmt, error) {
	if err := p.expect(TOKEN_LPAREN, "function parameters"); err != nil {
		return nil, nil, err
	}

	var params []string
	for p.current.Type != TOKEN_RPAREN {
		if p.current.Type != TOKEN_IDENTIFIER {
			return nil, nil, p.unexpected("function parameters")
		}
		params = append(params, p.current.Value)
		p.nextToken()
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}
	if err := p.expect(TOKEN_RPAREN, "function parameters"); err != nil {
		return nil, nil, err
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return params, block.Body, nil
}
