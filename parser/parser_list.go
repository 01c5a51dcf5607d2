package parser

// parseArrayLiteral parses an array literal [expr, expr, ...]
func (p *Parser) parseArrayLiteral() (Expr, error) {
	pos := p.current.Position
	elements, err := p.parseDelimited(TOKEN_LBRACKET, TOKEN_RBRACKET, "array literal")
	if err != nil {
		return nil, err
	}
	return &ArrayExpr{Pos: pos, Elements: elements}, nil
}
