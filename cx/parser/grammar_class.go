package parser

import "github.com/dhamidi/radin/cx/lexer"

// parseClassDeclaration parses `class Name [: Base] { members };`. The class name is a
// type name from the moment it is read, so members can refer to it.
func (p *Parser) parseClassDeclaration(parent *CategoryNode) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	child := NewCategory(CatClassDecl)
	if !p.consumeLeaf(lexer.TokenClass, child) {
		return false
	}
	name, ok := p.identifier()
	if !ok {
		return false
	}
	child.AddChild(NewLeaf(name))
	p.src.Advance()
	p.types.DeclareType(name.Literal)

	inherits := p.match(lexer.TokenColon)
	if inherits {
		p.forceCommit()
		if !p.parseInherit(child) {
			return false
		}
	}
	if !p.consume(lexer.TokenLBrace) {
		if inherits {
			return p.errorHere("Missing { for class body")
		}
		return false
	}
	p.forceCommit()

	if !p.parseClassDeclarationList(child) {
		return false
	}
	if !p.consume(lexer.TokenRBrace) {
		return p.reportMissing("Missing matching }")
	}
	if !p.consume(lexer.TokenSemicolon) {
		return p.reportMissing("Missing semi-colon")
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseInherit(parent *CategoryNode) bool {
	child := NewCategory(CatInherit)
	if !p.consumeLeaf(lexer.TokenColon, child) {
		return false
	}
	if p.match(lexer.TokenTypeName) {
		p.consumeCurrent(child)
	} else if !p.parseTypeName(child) {
		return p.errorHere("Not a proper type name for inherit")
	}
	parent.AddChild(child)
	return true
}

// parseClassDeclarationList parses members up to the closing brace. A member that fails
// is reported and skipped; the body keeps going.
func (p *Parser) parseClassDeclarationList(parent *CategoryNode) bool {
	atEnd := func() bool {
		return p.matchAny(lexer.TokenRBrace, lexer.TokenEOF)
	}

	list := NewCategory(CatClassDeclList)
	parent.AddChild(list)
	for {
		p.errs.settle()
		if p.tooDeep {
			return false
		}
		if atEnd() {
			return true
		}

		start := p.src.Position()
		if !p.parseClassTopLevelDeclaration(list) {
			if p.tooDeep {
				return false
			}
			p.synchronize(start, true)
			if p.src.Position() == start && !atEnd() {
				p.src.Advance()
			}
			continue
		}

		tail := NewCategory(CatClassDeclListTail)
		list.AddChild(tail)
		if atEnd() {
			continue
		}
		next := NewCategory(CatClassDeclList)
		tail.AddChild(next)
		list = next
	}
}

func (p *Parser) parseClassTopLevelDeclaration(parent *CategoryNode) bool {
	child := NewCategory(CatClassMember)
	if p.match(lexer.TokenLBracket) && !p.parseCompilationTagList(child) {
		return false
	}
modifiers:
	for {
		switch p.current().Kind {
		case lexer.TokenVirtual, lexer.TokenStatic:
			p.consumeCurrent(child)
		case lexer.TokenPublic, lexer.TokenPrivate, lexer.TokenInternal:
			visibility := NewCategory(CatVisibility)
			p.consumeCurrent(visibility)
			child.AddChild(visibility)
		default:
			break modifiers
		}
	}

	corresponding := p.current()
	if !p.oneOf(child, p.parseConstructorDefinition, p.parseDeclaration, p.parseFunctionDefinition) {
		return p.absorb("Could not parse class declaration", false, corresponding)
	}
	parent.AddChild(child)
	return true
}

// parseConstructorDefinition parses `Name(params);` or
// `Name(params) [: this|super(args)] { body }`.
func (p *Parser) parseConstructorDefinition(parent *CategoryNode) bool {
	child := NewCategory(CatConstructor)
	if !p.consumeLeaf(lexer.TokenTypeName, child) {
		return false
	}
	if !p.consume(lexer.TokenLParen) {
		return false
	}
	p.forceCommit()

	if p.match(lexer.TokenRParen) {
		child.AddChild(NewCategory(CatParameterList))
	} else if !p.parseParameterList(child) {
		return p.errorHere("Bad constructor parameter list")
	}
	if !p.consume(lexer.TokenRParen) {
		return p.reportMissing("Missing matching )")
	}

	if p.consumeLeaf(lexer.TokenSemicolon, child) {
		parent.AddChild(child)
		return true
	}
	if p.consumeLeaf(lexer.TokenColon, child) {
		if !p.matchAny(lexer.TokenIdent, lexer.TokenSuper) || (p.match(lexer.TokenIdent) && p.current().Literal != "this") {
			return p.errorHere("Expected this or super")
		}
		p.consumeCurrent(child)
		if !p.consume(lexer.TokenLParen) {
			return p.errorHere("Expected ( after delegating constructor")
		}
		if !p.parseArgsList(child) {
			return false
		}
		if !p.consume(lexer.TokenRParen) {
			return p.reportMissing("Missing matching )")
		}
	}
	if !p.parseCompoundStatement(child) {
		return false
	}
	parent.AddChild(child)
	return true
}
