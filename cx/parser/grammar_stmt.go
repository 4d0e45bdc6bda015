package parser

import "github.com/dhamidi/radin/cx/lexer"

func (p *Parser) parseStatement(parent *CategoryNode) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	child := NewCategory(CatStatement)
	var ok bool
	k := p.current().Kind
	switch {
	case k == lexer.TokenLBrace:
		ok = p.parseCompoundStatement(child)
	case k == lexer.TokenIf:
		ok = p.parseSelectionStatement(child)
	case k == lexer.TokenWhile, k == lexer.TokenFor, k == lexer.TokenDo:
		ok = p.parseIterationStatement(child)
	case k == lexer.TokenReturn:
		ok = p.parseJumpStatement(child)
	case k.IsPrimitive(), k == lexer.TokenTypeName, k == lexer.TokenStruct,
		k == lexer.TokenUnion, k == lexer.TokenClass, k == lexer.TokenConst:
		ok = p.parseDeclaration(child)
	case k == lexer.TokenIdent:
		// `a::T x;` versus `a = b;`
		ok = p.oneOf(child, p.parseDeclaration, p.parseExpressionStatement)
	default:
		ok = p.parseExpressionStatement(child)
	}
	if !ok {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseCompoundStatement(parent *CategoryNode) bool {
	child := NewCategory(CatCompound)
	if !p.consume(lexer.TokenLBrace) {
		return p.errorHere("missing { for compound statement")
	}
	if !p.matchAny(lexer.TokenRBrace, lexer.TokenEOF) {
		if !p.parseList(child, CatStatementList, CatStatementTail, p.parseStatement, p.until(lexer.TokenRBrace)) {
			return false
		}
	}
	if !p.consume(lexer.TokenRBrace) {
		return p.errorHere("missing matching } for compound statement")
	}
	parent.AddChild(child)
	return true
}

// parseExpressionStatement parses `expr;` and the empty statement. A missing semicolon
// is reported and the statement resynchronises on the next one.
func (p *Parser) parseExpressionStatement(parent *CategoryNode) bool {
	child := NewCategory(CatExprStatement)
	if p.attempt(p.parseTopExpression, child) == Desync {
		return false
	}
	if !p.consume(lexer.TokenSemicolon) {
		if !p.recoverToToken("Missing semi-colon", lexer.TokenSemicolon, lexer.TokenRBrace) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

// parenthesized parses `( TopExpression )` into parent.
func (p *Parser) parenthesized(parent *CategoryNode, after string) bool {
	if !p.consume(lexer.TokenLParen) {
		return p.errorHere("Missing ( after " + after)
	}
	if !p.parseTopExpression(parent) {
		return false
	}
	if !p.consume(lexer.TokenRParen) {
		return p.reportMissing("Missing matching )")
	}
	return true
}

func (p *Parser) parseIterationStatement(parent *CategoryNode) bool {
	child := NewCategory(CatIteration)
	switch p.current().Kind {
	case lexer.TokenWhile:
		p.consumeCurrent(child)
		if !p.parenthesized(child, "while") {
			return false
		}
		if !p.parseStatement(child) {
			return false
		}
	case lexer.TokenDo:
		p.consumeCurrent(child)
		if !p.parseStatement(child) {
			return false
		}
		if !p.consumeLeaf(lexer.TokenWhile, child) {
			return p.errorHere("Missing while after do body")
		}
		if !p.parenthesized(child, "while") {
			return false
		}
		if !p.consume(lexer.TokenSemicolon) {
			return p.reportMissing("Missing semi-colon")
		}
	case lexer.TokenFor:
		p.consumeCurrent(child)
		if !p.consume(lexer.TokenLParen) {
			return p.errorHere("Missing ( after for")
		}
		if !p.oneOf(child, p.parseDeclaration, p.parseExpressionStatement) {
			return false
		}
		if !p.parseExpressionStatement(child) {
			return false
		}
		if !p.match(lexer.TokenRParen) && !p.parseTopExpression(child) {
			return false
		}
		if !p.consume(lexer.TokenRParen) {
			return p.reportMissing("Missing matching )")
		}
		if !p.parseStatement(child) {
			return false
		}
	default:
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseSelectionStatement(parent *CategoryNode) bool {
	child := NewCategory(CatSelection)
	if !p.consumeLeaf(lexer.TokenIf, child) {
		return false
	}
	if !p.parenthesized(child, "if") {
		return false
	}
	if !p.parseStatement(child) {
		return false
	}
	if p.consumeLeaf(lexer.TokenElse, child) && !p.parseStatement(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseJumpStatement(parent *CategoryNode) bool {
	child := NewCategory(CatJump)
	if !p.consumeLeaf(lexer.TokenReturn, child) {
		return false
	}
	if !p.match(lexer.TokenSemicolon) && !p.parseTopExpression(child) {
		return false
	}
	if !p.consume(lexer.TokenSemicolon) {
		return p.reportMissing("Missing semi-colon")
	}
	parent.AddChild(child)
	return true
}
