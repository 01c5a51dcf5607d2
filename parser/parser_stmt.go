package parser

// ParseProgram parses a complete program (sequence of statements)
func (p *Parser) ParseProgram() ([]Stmt, error) {
	var statements []Stmt

	p.skipSemicolons()
	for p.current.Type != TOKEN_EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		p.skipSemicolons()
	}
	if err := p.lexer.Err(); err != nil {
		return nil, err
	}

	return statements, nil
}

func (p *Parser) skipSemicolons() {
	for p.current.Type == TOKEN_SEMICOLON {
		p.nextToken()
	}
}

// parseStatement parses a single statement
func (p *Parser) parseStatement() (Stmt, error) {
	switch p.current.Type {
	case TOKEN_LET, TOKEN_CONST:
		return p.parseDeclaration()
	case TOKEN_FUNCTION:
		if p.peek.Type == TOKEN_IDENTIFIER {
			return p.parseFunctionStatement()
		}
		return p.parseExpressionStatement()
	case TOKEN_IF:
		return p.parseIfStatement()
	case TOKEN_WHILE:
		return p.parseWhileStatement()
	case TOKEN_FOR:
		return p.parseForStatement()
	case TOKEN_RETURN:
		return p.parseReturnStatement()
	case TOKEN_BREAK:
		pos := p.current.Position
		p.nextToken()
		return &BreakStmt{Pos: pos}, nil
	case TOKEN_CONTINUE:
		pos := p.current.Position
		p.nextToken()
		return &ContinueStmt{Pos: pos}, nil
	case TOKEN_LBRACE:
		// In statement position { always opens a block
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock parses { statements }
func (p *Parser) parseBlock() (*BlockStmt, error) {
	block := &BlockStmt{Pos: p.current.Position}
	if err := p.expect(TOKEN_LBRACE, "block"); err != nil {
		return nil, err
	}

	p.skipSemicolons()
	for p.current.Type != TOKEN_RBRACE {
		if p.current.Type == TOKEN_EOF {
			return nil, p.unexpected("block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
		p.skipSemicolons()
	}
	p.nextToken() // consume '}'
	return block, nil
}

// parseBranch parses the body of if/else/while: a block or a single statement
func (p *Parser) parseBranch() (Stmt, error) {
	if p.current.Type == TOKEN_LBRACE {
		return p.parseBlock()
	}
	return p.parseStatement()
}

// parseDeclaration parses let/const target = value
func (p *Parser) parseDeclaration() (Stmt, error) {
	pos := p.current.Position
	constant := p.current.Type == TOKEN_CONST
	p.nextToken() // consume 'let' / 'const'

	target, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_ASSIGN {
		return nil, p.errorf("declaration must be followed by an assignment")
	}
	p.nextToken() // consume '='

	value, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	return &DeclStmt{Pos: pos, Constant: constant, Target: target, Value: value}, nil
}

// parseFunctionStatement parses function name(params) { body }
func (p *Parser) parseFunctionStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'function'
	name := p.current.Value
	p.nextToken() // consume name

	params, body, err := p.parseFunctionRest()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Pos: pos, Name: name, Params: params, Body: body}, nil
}

// parseIfStatement parses if cond branch [else branch]
func (p *Parser) parseIfStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'if'

	condition, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	then, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Pos: pos, Condition: condition, Then: then}

	// if c x = 1; else x = 2
	if p.current.Type == TOKEN_SEMICOLON && p.peek.Type == TOKEN_ELSE {
		p.nextToken()
	}
	if p.current.Type == TOKEN_ELSE {
		p.nextToken() // consume 'else'
		// else if ... is just a nested if statement
		stmt.Else, err = p.parseBranch()
		if err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

// parseWhileStatement parses while cond branch
func (p *Parser) parseWhileStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'while'

	condition, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Pos: pos, Condition: condition, Body: body}, nil
}

// parseForStatement parses for [(] init; cond; post [)] branch and desugars it to
//
//	{ init; while cond { body } post }
//
// The enclosing block scopes the loop variable to the loop.
func (p *Parser) parseForStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'for'

	parens := false
	if p.current.Type == TOKEN_LPAREN {
		parens = true
		p.nextToken()
	}

	var init Stmt
	if p.current.Type != TOKEN_SEMICOLON {
		var err error
		if p.current.Type == TOKEN_LET || p.current.Type == TOKEN_CONST {
			init, err = p.parseDeclaration()
		} else {
			init, err = p.parseExpressionStatement()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(TOKEN_SEMICOLON, "for header"); err != nil {
		return nil, err
	}

	var condition Expr = &BoolLit{Pos: p.current.Position, Value: true}
	if p.current.Type != TOKEN_SEMICOLON {
		var err error
		condition, err = p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(TOKEN_SEMICOLON, "for header"); err != nil {
		return nil, err
	}

	var post Stmt
	if p.current.Type != TOKEN_RPAREN && p.current.Type != TOKEN_LBRACE {
		var err error
		post, err = p.parseExpressionStatement()
		if err != nil {
			return nil, err
		}
	}
	if parens {
		if err := p.expect(TOKEN_RPAREN, "for header"); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	loop := &WhileStmt{Pos: pos, Condition: condition, Body: body, Post: post}
	block := &BlockStmt{Pos: pos}
	if init != nil {
		block.Body = append(block.Body, init)
	}
	block.Body = append(block.Body, loop)
	return block, nil
}

// parseReturnStatement parses return [expr]. A value must start on the
// same line as the return keyword.
func (p *Parser) parseReturnStatement() (Stmt, error) {
	tok := p.current
	p.nextToken() // consume 'return'

	stmt := &ReturnStmt{Pos: tok.Position}
	switch p.current.Type {
	case TOKEN_SEMICOLON, TOKEN_RBRACE, TOKEN_EOF:
		return stmt, nil
	}
	if p.current.Position.Line != tok.Position.Line {
		return stmt, nil
	}

	value, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

// parseExpressionStatement parses an expression used as a statement
func (p *Parser) parseExpressionStatement() (Stmt, error) {
	pos := p.current.Position
	expr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: pos, Expr: expr}, nil
}
