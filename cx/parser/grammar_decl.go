package parser

import "github.com/dhamidi/radin/cx/lexer"

// parseList parses `item` one or more times into the right-nested shape
//
//	List -> item Tail
//	Tail -> List | ε
//
// more decides, after each item, whether another one follows. It may consume a
// separator. The list is built iteratively so that long bodies do not count
// against the nesting limit.
func (p *Parser) parseList(parent *CategoryNode, listName, tailName string, item rule, more func() bool) bool {
	head := NewCategory(listName)
	list := head
	for {
		if !item(list) {
			return false
		}
		tail := NewCategory(tailName)
		list.AddChild(tail)
		if !more() {
			break
		}
		next := NewCategory(listName)
		tail.AddChild(next)
		list = next
	}
	parent.AddChild(head)
	return true
}

// separatedBy returns a continuation for parseList that consumes sep.
func (p *Parser) separatedBy(sep lexer.TokenKind) func() bool {
	return func() bool {
		return p.consume(sep)
	}
}

// until returns a continuation for parseList that stops before end or EOF.
func (p *Parser) until(end lexer.TokenKind) func() bool {
	return func() bool {
		return !p.matchAny(end, lexer.TokenEOF)
	}
}

// startsDeclaration reports whether the current token can begin declaration specifiers.
func (p *Parser) startsDeclaration() bool {
	k := p.current().Kind
	if k.IsPrimitive() {
		return true
	}
	switch k {
	case lexer.TokenTypeName, lexer.TokenStruct, lexer.TokenUnion, lexer.TokenClass,
		lexer.TokenConst, lexer.TokenIdent:
		return true
	}
	return false
}

// parseTopLevelDecsList parses declarations until EOF, or until the closing brace of an
// enclosing namespace block when nested is set. A failed declaration is left out of
// the tree and the cursor moves to the next synchronisation point.
func (p *Parser) parseTopLevelDecsList(parent *CategoryNode, nested bool) bool {
	atEnd := func() bool {
		return p.match(lexer.TokenEOF) || (nested && p.match(lexer.TokenRBrace))
	}

	list := NewCategory(CatTopLevelDecsList)
	parent.AddChild(list)
	for {
		p.clearTemporary()
		p.errs.settle()
		if p.tooDeep {
			return false
		}
		if atEnd() {
			return true
		}
		if !nested && p.match(lexer.TokenRBrace) {
			p.errorHere("Unmatched }")
			p.src.Advance()
			continue
		}

		start := p.src.Position()
		if !p.parseTopLevelDeclaration(list) {
			if p.tooDeep {
				return false
			}
			p.synchronize(start, nested)
			if p.src.Position() == start && !atEnd() {
				p.src.Advance()
			}
			continue
		}

		tail := NewCategory(CatTopLevelDecsTail)
		list.AddChild(tail)
		if atEnd() {
			continue
		}
		next := NewCategory(CatTopLevelDecsList)
		tail.AddChild(next)
		list = next
	}
}

// synchronize skips past the next semicolon or brace-balanced block at the nesting
// level of the failed declaration that began at start. In nested mode an unmatched
// closing brace stops it without being read.
func (p *Parser) synchronize(start int, nested bool) {
	depth := p.openBraces(start)
	for !p.match(lexer.TokenEOF) {
		switch p.current().Kind {
		case lexer.TokenLBrace:
			depth++
		case lexer.TokenRBrace:
			if depth == 0 {
				if !nested {
					p.src.Advance()
				}
				return
			}
			depth--
			if depth == 0 {
				p.src.Advance()
				p.consume(lexer.TokenSemicolon)
				return
			}
		case lexer.TokenSemicolon:
			if depth == 0 {
				p.src.Advance()
				return
			}
		}
		p.src.Advance()
	}
}

// openBraces counts the braces opened and not yet closed between start and the cursor.
// The cursor ends where it was.
func (p *Parser) openBraces(start int) int {
	end := p.src.Position()
	p.src.Seek(start)
	depth := 0
	for p.src.Position() < end && !p.match(lexer.TokenEOF) {
		switch p.current().Kind {
		case lexer.TokenLBrace:
			depth++
		case lexer.TokenRBrace:
			depth = max(depth-1, 0)
		}
		p.src.Advance()
	}
	p.src.Seek(end)
	return depth
}

func (p *Parser) parseTopLevelDeclaration(parent *CategoryNode) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	child := NewCategory(CatTopLevelDecl)
	if p.match(lexer.TokenLBracket) && !p.parseCompilationTagList(child) {
		return false
	}

	if p.match(lexer.TokenClass) {
		switch status := p.attempt(p.parseClassDeclaration, child); status {
		case Parsed:
			parent.AddChild(child)
			return true
		case Desync:
			return false
		case Rollback:
			// `class Foo;` and `class Foo x;` are declarations with a class specifier.
		default:
			panic("parser: illegal attempt status " + status.String())
		}
	}

	corresponding := p.current()
	switch corresponding.Kind {
	case lexer.TokenTypedef:
		if !p.parseTypeDef(child) {
			return false
		}
		if !p.consume(lexer.TokenSemicolon) {
			return p.reportMissing("Missing semi-colon")
		}
	case lexer.TokenIn:
		if !p.parseInIdentifier(child) {
			return false
		}
	case lexer.TokenImplement:
		if !p.parseImplement(child) {
			return false
		}
	case lexer.TokenUsing:
		if !p.parseUsing(child) {
			return false
		}
	case lexer.TokenFor:
		if !p.parseGenericDeclaration(child) {
			return false
		}
	default:
		if !p.startsDeclaration() {
			return p.errorHere("Not a valid top level declaration")
		}
		if !p.oneOf(child, p.parseFunctionDefinition, p.parseDeclaration) {
			return p.absorb("Could not parse declaration", false, corresponding)
		}
	}
	parent.AddChild(child)
	return true
}

// parseInIdentifier parses `in ns { decls }` or `in ns decl`.
func (p *Parser) parseInIdentifier(parent *CategoryNode) bool {
	child := NewCategory(CatInIdentifier)
	if !p.consume(lexer.TokenIn) {
		return false
	}
	name, ok := p.identifier()
	if !ok {
		return p.errorHere("Expected namespace name")
	}
	child.AddChild(NewLeaf(name))
	p.src.Advance()

	if p.consume(lexer.TokenLBrace) {
		if !p.parseTopLevelDecsList(child, true) {
			return false
		}
		if !p.consume(lexer.TokenRBrace) {
			return p.reportMissing("Missing matching } for namespace")
		}
	} else if !p.parseTopLevelDeclaration(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseImplement(parent *CategoryNode) bool {
	child := NewCategory(CatImplement)
	if !p.consume(lexer.TokenImplement) {
		return false
	}
	if !p.parseNamespacedType(child) {
		return false
	}
	if p.consume(lexer.TokenLBrace) {
		if !p.match(lexer.TokenRBrace) {
			if !p.parseList(child, CatImplementList, CatImplementTail, p.parseImplementation, p.until(lexer.TokenRBrace)) {
				return false
			}
		}
		if !p.consume(lexer.TokenRBrace) {
			return p.reportMissing("Missing matching } for implement section")
		}
	} else if !p.parseImplementation(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseImplementation(parent *CategoryNode) bool {
	child := NewCategory(CatImplementation)
	corresponding := p.current()
	if !p.oneOf(child, p.parseFunctionDefinition, p.parseConstructorDefinition) {
		return p.absorb("Illegal statement in implement section", false, corresponding)
	}
	parent.AddChild(child)
	return true
}

// parseUsing parses `using a::b;` and `using a::b = alias;`. The alias, or the innermost
// name when there is none, becomes a type name.
func (p *Parser) parseUsing(parent *CategoryNode) bool {
	child := NewCategory(CatUsing)
	if !p.consumeLeaf(lexer.TokenUsing, child) {
		return false
	}
	if !p.parseNamespace(child) {
		return false
	}
	var declared string
	for ns := child.ChildCategory(CatNamespace); ns != nil; ns = ns.ChildCategory(CatNamespace) {
		declared = ns.ChildLeaf(lexer.TokenIdent).Token.Literal
	}
	if p.match(lexer.TokenAssign) {
		alias := NewCategory(CatAlias)
		p.src.Advance()
		name, ok := p.identifier()
		if !ok {
			return p.errorHere("Expected alias name")
		}
		alias.AddChild(NewLeaf(name))
		p.src.Advance()
		child.AddChild(alias)
		declared = name.Literal
	}
	if !p.consume(lexer.TokenSemicolon) {
		return p.reportMissing("Missing semi-colon")
	}
	p.types.DeclareType(declared)
	parent.AddChild(child)
	return true
}

func (p *Parser) parseNamespace(parent *CategoryNode) bool {
	child := NewCategory(CatNamespace)
	name, ok := p.identifier()
	if !ok {
		return p.errorHere("Expected namespace name")
	}
	child.AddChild(NewLeaf(name))
	p.src.Advance()
	if p.consumeLeaf(lexer.TokenColonColon, child) && !p.parseNamespace(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

// parseNamespacedType parses `a::b::T` where T is a known type name.
func (p *Parser) parseNamespacedType(parent *CategoryNode) bool {
	child := NewCategory(CatNamespacedType)
	switch p.current().Kind {
	case lexer.TokenTypeName:
		p.consumeCurrent(child)
	case lexer.TokenIdent:
		p.consumeCurrent(child)
		if !p.consumeLeaf(lexer.TokenColonColon, child) {
			return p.reportMissing("Not a valid type")
		}
		if !p.parseNamespacedType(child) {
			return false
		}
	default:
		return p.errorHere("Not a valid type")
	}
	parent.AddChild(child)
	return true
}

// parseGenericDeclaration parses `for <T, U : Base> decl`. Type parameters are visible
// only inside decl; a generic class name outlives the parameter scope.
func (p *Parser) parseGenericDeclaration(parent *CategoryNode) bool {
	child := NewCategory(CatGenericDecl)
	if !p.consumeLeaf(lexer.TokenFor, child) {
		return false
	}
	if !p.consumeLeaf(lexer.TokenLT, child) {
		return p.errorHere("Expected < to open type parameters")
	}

	corresponding := p.current()
	p.types.OpenScope()
	ok := p.parseGenericBody(child)
	p.types.CloseScope()
	if !ok {
		return p.absorb("Could not parse generic declaration", false, corresponding)
	}

	if cls := child.ChildCategory(CatClassDecl); cls != nil {
		if name := cls.ChildLeaf(lexer.TokenIdent); name != nil {
			p.types.DeclareType(name.Token.Literal)
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseGenericBody(child *CategoryNode) bool {
	if !p.parseList(child, CatTypeParamList, CatTypeParamTail, p.parseTypeParameter, p.separatedBy(lexer.TokenComma)) {
		return false
	}
	if !p.consumeLeaf(lexer.TokenGT, child) {
		return p.errorHere("Expected > to close type parameters")
	}
	if p.match(lexer.TokenClass) {
		return p.parseClassDeclaration(child)
	}
	return p.parseFunctionDefinition(child)
}

func (p *Parser) parseTypeParameter(parent *CategoryNode) bool {
	child := NewCategory(CatTypeParam)
	name, ok := p.identifier()
	if !ok {
		return p.errorHere("Expected type parameter name")
	}
	child.AddChild(NewLeaf(name))
	p.src.Advance()
	p.types.DeclareType(name.Literal)
	if p.match(lexer.TokenColon) && !p.parseInherit(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseCompilationTagList(parent *CategoryNode) bool {
	more := func() bool { return p.match(lexer.TokenLBracket) }
	return p.parseList(parent, CatCompilationTags, CatCompilationTagsTail, p.parseCompilationTag, more)
}

// parseCompilationTag parses `[name]` or `[name(args)]`.
func (p *Parser) parseCompilationTag(parent *CategoryNode) bool {
	child := NewCategory(CatCompilationTag)
	if !p.consume(lexer.TokenLBracket) {
		return false
	}
	if !p.consumeLeaf(lexer.TokenIdent, child) {
		return p.errorHere("Expected compilation tag name")
	}
	if p.consume(lexer.TokenLParen) {
		if !p.parseArgsList(child) {
			return false
		}
		if !p.consume(lexer.TokenRParen) {
			return p.reportMissing("Missing matching )")
		}
	}
	if !p.consume(lexer.TokenRBracket) {
		return p.reportMissing("Missing matching ]")
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseTypeDef(parent *CategoryNode) bool {
	child := NewCategory(CatTypeDef)
	if !p.consumeLeaf(lexer.TokenTypedef, child) {
		return false
	}
	p.forceCommit()
	if !p.parseTypeName(child) {
		return p.errorHere("Can't typedef this")
	}
	switch {
	case p.match(lexer.TokenTypeName):
		return p.errorHere("ID already exists as a type")
	case p.matchAny(lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenCharLiteral, lexer.TokenStringLiteral):
		return p.errorHere("Can't typedef a literal")
	case !p.match(lexer.TokenIdent):
		return p.errorHere("Expected a name for the typedef")
	}
	name := p.current()
	child.AddChild(NewLeaf(name))
	p.src.Advance()
	p.types.DeclareType(name.Literal)
	parent.AddChild(child)
	return true
}

func (p *Parser) parseFunctionDefinition(parent *CategoryNode) bool {
	child := NewCategory(CatFunctionDef)
	if p.attempt(p.parseDeclarationSpecifiers, child) == Desync {
		return false
	}
	if !p.parseDeclarator(child) {
		return false
	}
	if !p.match(lexer.TokenLBrace) && !p.parseDeclarationList(child) {
		return false
	}
	corresponding := p.current()
	if !p.parseCompoundStatement(child) {
		return p.absorb("Failed to compile compound statement", false, corresponding)
	}
	parent.AddChild(child)
	return true
}

// parseDeclarationList parses old-style parameter declarations between a function
// declarator and its body.
func (p *Parser) parseDeclarationList(parent *CategoryNode) bool {
	more := func() bool { return !p.matchAny(lexer.TokenLBrace, lexer.TokenEOF) }
	return p.parseList(parent, CatDeclarationList, CatDeclarationTail, p.parseDeclaration, more)
}

func (p *Parser) parseDeclaration(parent *CategoryNode) bool {
	child := NewCategory(CatDeclaration)
	if !p.parseDeclarationSpecifiers(child) {
		return false
	}
	if !p.match(lexer.TokenSemicolon) && !p.parseInitDeclaratorList(child) {
		return false
	}
	if !p.consume(lexer.TokenSemicolon) {
		if !p.recoverToToken("Missing semi-colon", lexer.TokenSemicolon, lexer.TokenLBrace) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseDeclarationSpecifiers(parent *CategoryNode) bool {
	child := NewCategory(CatDeclSpecifiers)
	if !p.parseSpecsAndQuals(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseInitDeclaratorList(parent *CategoryNode) bool {
	return p.parseList(parent, CatInitDeclaratorList, CatInitDeclaratorTail, p.parseInitDeclarator, p.separatedBy(lexer.TokenComma))
}

func (p *Parser) parseInitDeclarator(parent *CategoryNode) bool {
	child := NewCategory(CatInitDeclarator)
	if !p.parseDeclarator(child) {
		return false
	}
	if p.consumeLeaf(lexer.TokenAssign, child) {
		p.forceCommit()
		if !p.parseInitializer(child) {
			return p.reportMissing("Missing initial value")
		}
	}
	parent.AddChild(child)
	return true
}

// parseInitializer parses an assignment expression or a braced initializer list.
func (p *Parser) parseInitializer(parent *CategoryNode) bool {
	child := NewCategory(CatInitializer)
	if p.match(lexer.TokenLBrace) {
		if !p.parseInitializerList(child) {
			return false
		}
	} else if !p.parseAssignmentExpression(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseInitializerList(parent *CategoryNode) bool {
	child := NewCategory(CatInitializerList)
	if !p.consume(lexer.TokenLBrace) {
		return false
	}
	for !p.matchAny(lexer.TokenRBrace, lexer.TokenEOF) {
		if !p.parseInitializer(child) {
			return false
		}
		if !p.consume(lexer.TokenComma) {
			break
		}
	}
	if !p.consume(lexer.TokenRBrace) {
		return p.reportMissing("Missing matching } for initializer")
	}
	parent.AddChild(child)
	return true
}

// Types

func (p *Parser) parseTypeName(parent *CategoryNode) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	child := NewCategory(CatTypeName)
	if !p.parseSpecsAndQuals(child) {
		return false
	}
	if !p.parseAbstractDeclarator(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseSpecsAndQuals(parent *CategoryNode) bool {
	return p.specsAndQuals(parent, false)
}

// specsAndQuals reads specifiers and qualifiers. Once a type has been specified, a
// following type name is the declarator, as in `typedef int A; A A2;`.
func (p *Parser) specsAndQuals(parent *CategoryNode, typed bool) bool {
	child := NewCategory(CatSpecsAndQuals)
	k := p.current().Kind
	switch {
	case k == lexer.TokenConst:
		if !p.parseQualifier(child) {
			return false
		}
	case k.IsPrimitive(), k == lexer.TokenTypeName, k == lexer.TokenStruct,
		k == lexer.TokenUnion, k == lexer.TokenClass:
		if !p.parseSpecifier(child) {
			return false
		}
		typed = true
	case k == lexer.TokenIdent:
		if !p.parseNamespacedType(child) {
			return false
		}
		typed = true
	default:
		return false
	}
	if !p.parseSpecsAndQualsTail(child, typed) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseSpecsAndQualsTail(parent *CategoryNode, typed bool) bool {
	child := NewCategory(CatSpecsAndQualsTail)
	k := p.current().Kind
	if k.IsPrimitive() || (k == lexer.TokenTypeName && !typed) || k == lexer.TokenStruct ||
		k == lexer.TokenUnion || k == lexer.TokenClass || k == lexer.TokenConst {
		if !p.specsAndQuals(child, typed) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseQualifier(parent *CategoryNode) bool {
	child := NewCategory(CatQualifier)
	if !p.consumeLeaf(lexer.TokenConst, child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseQualifierList(parent *CategoryNode) bool {
	return p.parseList(parent, CatQualifierList, CatQualifierListTail, p.parseQualifier, func() bool {
		return p.match(lexer.TokenConst)
	})
}

func (p *Parser) parseSpecifier(parent *CategoryNode) bool {
	child := NewCategory(CatSpecifier)
	k := p.current().Kind
	switch {
	case k.IsPrimitive(), k == lexer.TokenTypeName:
		p.consumeCurrent(child)
	case k == lexer.TokenStruct, k == lexer.TokenUnion:
		if !p.parseStructOrUnionSpecifier(child) {
			return false
		}
	case k == lexer.TokenClass:
		if !p.parseClassSpecifier(child) {
			return false
		}
	default:
		return p.errorHere("Not a valid specifier")
	}
	parent.AddChild(child)
	return true
}

// parseStructOrUnionSpecifier parses `struct tag`, `struct tag { ... }` and
// `struct { ... }`. Defining a body registers the tag as a compound name.
func (p *Parser) parseStructOrUnionSpecifier(parent *CategoryNode) bool {
	child := NewCategory(CatStructOrUnionSpec)
	kw := NewCategory(CatStructOrUnion)
	p.consumeCurrent(kw)
	child.AddChild(kw)

	if tag, ok := p.identifier(); ok {
		child.AddChild(NewLeaf(tag))
		p.src.Advance()
		if p.match(lexer.TokenLBrace) {
			p.types.DeclareCompound(tag.Literal)
			if !p.parseStructBody(child) {
				return false
			}
		}
	} else if p.match(lexer.TokenLBrace) {
		if !p.parseStructBody(child) {
			return false
		}
	} else {
		return p.errorHere("Expected struct tag or body")
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseStructBody(child *CategoryNode) bool {
	if !p.consume(lexer.TokenLBrace) {
		return false
	}
	if !p.parseList(child, CatStructDeclList, CatStructDeclListTail, p.parseStructDeclaration, p.until(lexer.TokenRBrace)) {
		return false
	}
	if !p.consume(lexer.TokenRBrace) {
		return p.reportMissing("Missing matching } for struct body")
	}
	return true
}

func (p *Parser) parseStructDeclaration(parent *CategoryNode) bool {
	child := NewCategory(CatStructDeclaration)
	if !p.parseSpecsAndQuals(child) {
		return p.errorHere("Expected member declaration")
	}
	if !p.parseList(child, CatStructDeclaratorList, CatStructDeclaratorTail, p.parseStructDeclarator, p.separatedBy(lexer.TokenComma)) {
		return false
	}
	if !p.consume(lexer.TokenSemicolon) {
		return p.reportMissing("Missing ;")
	}
	parent.AddChild(child)
	return true
}

// parseStructDeclarator parses a member declarator with an optional bit width.
func (p *Parser) parseStructDeclarator(parent *CategoryNode) bool {
	child := NewCategory(CatStructDeclarator)
	if !p.match(lexer.TokenColon) && !p.parseDeclarator(child) {
		return false
	}
	if p.consumeLeaf(lexer.TokenColon, child) && !p.parseConstantExpression(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseConstantExpression(parent *CategoryNode) bool {
	child := NewCategory(CatConstantExpression)
	if !p.matchAny(lexer.TokenIntLiteral, lexer.TokenCharLiteral) {
		return p.errorHere("Expected a constant")
	}
	p.consumeCurrent(child)
	parent.AddChild(child)
	return true
}

func (p *Parser) parseClassSpecifier(parent *CategoryNode) bool {
	child := NewCategory(CatClassSpecifier)
	if !p.consumeLeaf(lexer.TokenClass, child) {
		return false
	}
	name, ok := p.identifier()
	if !ok {
		return p.errorHere("Expected class name")
	}
	child.AddChild(NewLeaf(name))
	p.src.Advance()
	p.types.DeclareType(name.Literal)
	parent.AddChild(child)
	return true
}

// Declarators

func (p *Parser) parsePointer(parent *CategoryNode) bool {
	child := NewCategory(CatPointer)
	if !p.consumeLeaf(lexer.TokenStar, child) {
		return false
	}
	if p.match(lexer.TokenConst) && !p.parseQualifierList(child) {
		return false
	}
	if p.match(lexer.TokenStar) && !p.parsePointer(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

// parseAbstractDeclarator parses the declarator part of a type name. It may be empty.
func (p *Parser) parseAbstractDeclarator(parent *CategoryNode) bool {
	child := NewCategory(CatAbstractDeclarator)
	switch p.current().Kind {
	case lexer.TokenStar:
		if !p.parsePointer(child) {
			return false
		}
		if !p.parseDirectAbstractDeclarator(child) {
			return false
		}
	case lexer.TokenLParen, lexer.TokenLBracket:
		p.forceCommit()
		if !p.parseDirectAbstractDeclarator(child) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseDirectAbstractDeclarator(parent *CategoryNode) bool {
	child := NewCategory(CatDirectAbstractDecl)
	switch p.current().Kind {
	case lexer.TokenLBracket:
		p.consumeCurrent(child)
		if !p.consumeLeaf(lexer.TokenRBracket, child) {
			return p.errorHere("Missing matching ]")
		}
		if !p.parseDirectAbstractDeclarator(child) {
			return false
		}
	case lexer.TokenLParen:
		p.consumeCurrent(child)
		if !p.match(lexer.TokenRParen) && !p.parseParameterTypeList(child) {
			return false
		}
		if !p.consumeLeaf(lexer.TokenRParen, child) {
			return p.reportMissing("Missing matching )")
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseDeclarator(parent *CategoryNode) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	child := NewCategory(CatDeclarator)
	if p.match(lexer.TokenStar) && !p.parsePointer(child) {
		return false
	}
	if !p.parseDirectDeclarator(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseDirectDeclarator(parent *CategoryNode) bool {
	child := NewCategory(CatDirectDeclarator)
	switch p.current().Kind {
	case lexer.TokenIdent:
		p.consumeCurrent(child)
	case lexer.TokenLParen:
		p.src.Advance()
		if !p.parseDeclarator(child) {
			return false
		}
		if !p.consume(lexer.TokenRParen) {
			return p.reportMissing("Missing matching )")
		}
	default:
		return false
	}
	if !p.parseDirectDeclaratorTail(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

// parseDirectDeclaratorTail parses the parameter lists and array bounds after a
// declarator name.
func (p *Parser) parseDirectDeclaratorTail(parent *CategoryNode) bool {
	child := NewCategory(CatDirectDeclaratorTail)
	switch p.current().Kind {
	case lexer.TokenLParen:
		p.consumeCurrent(child)
		switch p.attempt(p.parseParameterTypeList, child) {
		case Rollback:
			if p.attempt(p.parseIdentifierList, child) == Desync {
				return p.reportError("Error parsing parameter list", p.current(), true)
			}
		case Desync:
			return p.reportError("Error parsing parameter list", p.current(), true)
		}
		if !p.consumeLeaf(lexer.TokenRParen, child) {
			return false
		}
		if !p.parseDirectDeclaratorTail(child) {
			return false
		}
	case lexer.TokenLBracket:
		p.consumeCurrent(child)
		if p.attempt(p.parseExpression, child) == Desync {
			return false
		}
		if !p.consumeLeaf(lexer.TokenRBracket, child) {
			p.forceCommit()
			return p.reportMissing("Missing matching ]")
		}
		if !p.parseDirectDeclaratorTail(child) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseParameterTypeList(parent *CategoryNode) bool {
	child := NewCategory(CatParameterTypeList)
	if !p.parseParameterList(child) {
		return false
	}
	if p.consume(lexer.TokenComma) {
		if !p.consumeLeaf(lexer.TokenEllipsis, child) {
			return p.errorHere("Expected ...")
		}
	}
	parent.AddChild(child)
	return true
}

// parseParameterList stops before a `, ...` suffix so the caller can read it.
func (p *Parser) parseParameterList(parent *CategoryNode) bool {
	more := func() bool {
		if !p.match(lexer.TokenComma) {
			return false
		}
		pos := p.src.Position()
		p.src.Advance()
		if p.match(lexer.TokenEllipsis) {
			p.src.Seek(pos)
			return false
		}
		return true
	}
	return p.parseList(parent, CatParameterList, CatParameterListTail, p.parseParameterDeclaration, more)
}

// parseParameterDeclaration parses a parameter, named or abstract.
func (p *Parser) parseParameterDeclaration(parent *CategoryNode) bool {
	child := NewCategory(CatParameterDecl)
	if !p.parseDeclarationSpecifiers(child) {
		return false
	}
	switch p.attempt(p.parseDeclarator, child) {
	case Rollback:
		if p.attempt(p.parseAbstractDeclarator, child) == Desync {
			return p.reportError("Failure parsing parameter declaration", p.current(), true)
		}
	case Desync:
		return p.reportError("Failure parsing parameter declaration", p.current(), true)
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseIdentifierList(parent *CategoryNode) bool {
	item := func(list *CategoryNode) bool {
		return p.consumeLeaf(lexer.TokenIdent, list)
	}
	return p.parseList(parent, CatIdentifierList, CatIdentifierListTail, item, p.separatedBy(lexer.TokenComma))
}
