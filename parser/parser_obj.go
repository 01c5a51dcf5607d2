package parser

// parseObjectLiteral parses {key: value, key2, "key 3": value}.
// A bare key is shorthand for key: key. Repeating a key is a syntax error.
func (p *Parser) parseObjectLiteral() (Expr, error) {
	obj := &ObjectExpr{Pos: p.current.Position}
	p.nextToken() // skip '{'

	seen := make(map[string]bool)
	for p.current.Type != TOKEN_RBRACE {
		keyTok := p.current
		var key string
		switch keyTok.Type {
		case TOKEN_IDENTIFIER:
			key = keyTok.Value
		case TOKEN_STRING:
			key = keyTok.Literal
		default:
			return nil, p.unexpected("object literal key")
		}
		if seen[key] {
			return nil, newSyntaxError(keyTok.Position, "duplicate key %q in object literal", key)
		}
		seen[key] = true
		p.nextToken()

		var value Expr
		if p.current.Type == TOKEN_COLON {
			p.nextToken()
			v, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			value = v
		} else if keyTok.Type == TOKEN_IDENTIFIER {
			value = &IdentifierExpr{Pos: keyTok.Position, Name: key}
		} else {
			return nil, p.errorf("expected ':' after string key %q", key)
		}

		obj.Keys = append(obj.Keys, key)
		obj.Values = append(obj.Values, value)

		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken() // skip ','
	}

	if err := p.expect(TOKEN_RBRACE, "object literal"); err != nil {
		return nil, err
	}
	return obj, nil
}
