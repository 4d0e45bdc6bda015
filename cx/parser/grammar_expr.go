package parser

import "github.com/dhamidi/radin/cx/lexer"

// startsExpression reports whether the current token can begin an expression.
func (p *Parser) startsExpression() bool {
	switch p.current().Kind {
	case lexer.TokenMinus, lexer.TokenPlus, lexer.TokenNot, lexer.TokenTilde,
		lexer.TokenStar, lexer.TokenBitAnd, lexer.TokenIncrement, lexer.TokenDecrement,
		lexer.TokenLParen, lexer.TokenIdent, lexer.TokenTypeName,
		lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenCharLiteral, lexer.TokenStringLiteral,
		lexer.TokenTrue, lexer.TokenFalse,
		lexer.TokenSizeof, lexer.TokenTypeid, lexer.TokenNew, lexer.TokenSuper:
		return true
	}
	return false
}

// parseTopExpression parses a comma-separated sequence of assignment expressions.
func (p *Parser) parseTopExpression(parent *CategoryNode) bool {
	child := NewCategory(CatTopExpression)
	if !p.parseAssignmentExpression(child) {
		return false
	}
	if p.consumeLeaf(lexer.TokenComma, child) && !p.parseTopExpression(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseAssignmentExpression(parent *CategoryNode) bool {
	child := NewCategory(CatAssignmentExpr)
	if !p.oneOf(child, p.parseAssignment, p.parseExpression) {
		return false
	}
	parent.AddChild(child)
	return true
}

// parseAssignment commits once the operator is read: `a = <garbage>` is an error, not
// an expression statement.
func (p *Parser) parseAssignment(parent *CategoryNode) bool {
	child := NewCategory(CatAssignment)
	if !p.parseFactor(child) {
		return false
	}
	if !p.parseAssignOperator(child) {
		return false
	}
	p.forceCommit()
	if !p.parseAssignmentExpression(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseAssignOperator(parent *CategoryNode) bool {
	k := p.current().Kind
	if k != lexer.TokenAssign && !k.IsCompoundAssign() {
		return false
	}
	child := NewCategory(CatAssignOperator)
	p.consumeCurrent(child)
	parent.AddChild(child)
	return true
}

func (p *Parser) parseExpression(parent *CategoryNode) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	if !p.startsExpression() {
		return p.errorHere("unrecognized expression")
	}
	child := NewCategory(CatExpression)
	if !p.parseLogicalOr(child) || !p.parseLogicalOrTail(child) {
		return false
	}
	if !p.parseExpressionTail(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

// parseExpressionTail parses the `? a : b` suffix of a conditional expression.
func (p *Parser) parseExpressionTail(parent *CategoryNode) bool {
	child := NewCategory(CatExpressionTail)
	if p.consumeLeaf(lexer.TokenQuestion, child) {
		if !p.parseExpression(child) {
			return false
		}
		if !p.consumeLeaf(lexer.TokenColon, child) {
			return p.errorHere("Missing : in conditional expression")
		}
		if !p.parseExpression(child) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

// binaryLevel parses `operand operandTail` as category name.
func (p *Parser) binaryLevel(parent *CategoryNode, name string, operand, operandTail rule) bool {
	child := NewCategory(name)
	if !operand(child) || !operandTail(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

// binaryTail parses `op level tail` when one of ops is next and an empty name node
// otherwise.
func (p *Parser) binaryTail(parent *CategoryNode, name string, level, tail rule, ops ...lexer.TokenKind) bool {
	child := NewCategory(name)
	if p.matchAny(ops...) {
		p.consumeCurrent(child)
		if !level(child) || !tail(child) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseLogicalOr(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatLogicalOr, p.parseLogicalAnd, p.parseLogicalAndTail)
}

func (p *Parser) parseLogicalOrTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatLogicalOrTail, p.parseLogicalOr, p.parseLogicalOrTail, lexer.TokenOr)
}

func (p *Parser) parseLogicalAnd(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatLogicalAnd, p.parseBitwiseOr, p.parseBitwiseOrTail)
}

func (p *Parser) parseLogicalAndTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatLogicalAndTail, p.parseLogicalAnd, p.parseLogicalAndTail, lexer.TokenAnd)
}

func (p *Parser) parseBitwiseOr(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatBitwiseOr, p.parseBitwiseXor, p.parseBitwiseXorTail)
}

func (p *Parser) parseBitwiseOrTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatBitwiseOrTail, p.parseBitwiseOr, p.parseBitwiseOrTail, lexer.TokenBitOr)
}

func (p *Parser) parseBitwiseXor(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatBitwiseXor, p.parseBitwiseAnd, p.parseBitwiseAndTail)
}

func (p *Parser) parseBitwiseXorTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatBitwiseXorTail, p.parseBitwiseXor, p.parseBitwiseXorTail, lexer.TokenBitXor)
}

func (p *Parser) parseBitwiseAnd(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatBitwiseAnd, p.parseEquality, p.parseEqualityTail)
}

func (p *Parser) parseBitwiseAndTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatBitwiseAndTail, p.parseBitwiseAnd, p.parseBitwiseAndTail, lexer.TokenBitAnd)
}

func (p *Parser) parseEquality(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatEquality, p.parseRelational, p.parseRelationalTail)
}

func (p *Parser) parseEqualityTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatEqualityTail, p.parseEquality, p.parseEqualityTail, lexer.TokenEQ, lexer.TokenNE)
}

func (p *Parser) parseRelational(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatRelational, p.parseShift, p.parseShiftTail)
}

func (p *Parser) parseRelationalTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatRelationalTail, p.parseRelational, p.parseRelationalTail,
		lexer.TokenLT, lexer.TokenGT, lexer.TokenLE, lexer.TokenGE)
}

func (p *Parser) parseShift(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatShift, p.parseAdditive, p.parseAdditiveTail)
}

func (p *Parser) parseShiftTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatShiftTail, p.parseShift, p.parseShiftTail, lexer.TokenShl, lexer.TokenShr)
}

func (p *Parser) parseAdditive(parent *CategoryNode) bool {
	return p.binaryLevel(parent, CatAdditive, p.parseFactor, p.parseFactorTail)
}

func (p *Parser) parseAdditiveTail(parent *CategoryNode) bool {
	return p.binaryTail(parent, CatAdditiveTail, p.parseAdditive, p.parseAdditiveTail, lexer.TokenPlus, lexer.TokenMinus)
}

// parseFactorTail parses the multiplicative operators that bind a factor to the next.
func (p *Parser) parseFactorTail(parent *CategoryNode) bool {
	child := NewCategory(CatFactorTail)
	if p.matchAny(lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent) {
		p.consumeCurrent(child)
		if !p.parseFactor(child) || !p.parseFactorTail(child) {
			return false
		}
	}
	parent.AddChild(child)
	return true
}

// parseFactor parses unary operators, literals, casts and postfix chains. A
// parenthesised prefix is tried as a cast first: `(T) x` is a cast exactly when T
// is a known type name.
func (p *Parser) parseFactor(parent *CategoryNode) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	child := NewCategory(CatFactor)
	switch p.current().Kind {
	case lexer.TokenMinus, lexer.TokenPlus, lexer.TokenNot, lexer.TokenTilde,
		lexer.TokenStar, lexer.TokenBitAnd, lexer.TokenIncrement, lexer.TokenDecrement:
		p.consumeCurrent(child)
		if !p.parseFactor(child) {
			return false
		}
	case lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenCharLiteral,
		lexer.TokenStringLiteral, lexer.TokenTrue, lexer.TokenFalse:
		p.consumeCurrent(child)
	case lexer.TokenLParen:
		switch p.attempt(p.parseCastExpression, child) {
		case Desync:
			return false
		case Rollback:
			if !p.parseAtom(child) || !p.parseAtomTail(child) {
				return false
			}
		}
	case lexer.TokenIdent, lexer.TokenNew, lexer.TokenSuper, lexer.TokenTypeName:
		if !p.parseAtom(child) || !p.parseAtomTail(child) {
			return false
		}
	case lexer.TokenSizeof:
		p.consumeCurrent(child)
		if !p.consume(lexer.TokenLParen) {
			return p.errorHere("Missing ( after sizeof")
		}
		if !p.parseTypeName(child) {
			return p.errorHere("Expected a type name")
		}
		if !p.consume(lexer.TokenRParen) {
			return p.reportMissing("Missing matching )")
		}
	case lexer.TokenTypeid:
		p.consumeCurrent(child)
		if !p.parseTypeName(child) {
			return p.errorHere("Expected a type name")
		}
	default:
		return p.errorHere("Not a valid expression")
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseCastExpression(parent *CategoryNode) bool {
	child := NewCategory(CatCast)
	if !p.consume(lexer.TokenLParen) {
		return false
	}
	if !p.parseTypeName(child) {
		return p.errorHere("Not a type name")
	}
	if !p.consume(lexer.TokenRParen) {
		return p.reportMissing("Missing matching )")
	}
	if !p.parseFactor(child) {
		return false
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseAtom(parent *CategoryNode) bool {
	child := NewCategory(CatAtom)
	switch p.current().Kind {
	case lexer.TokenLParen:
		p.src.Advance()
		if !p.parseExpression(child) {
			return false
		}
		if !p.consume(lexer.TokenRParen) {
			return p.reportMissing("Missing matching )")
		}
	case lexer.TokenIdent, lexer.TokenSuper:
		p.consumeCurrent(child)
		if !p.parseFunctionCall(child) {
			return false
		}
	case lexer.TokenTypeName:
		p.consumeCurrent(child)
		if !p.parseCallArguments(child) {
			return false
		}
	case lexer.TokenNew:
		p.consumeCurrent(child)
		if p.match(lexer.TokenTypeName) {
			p.consumeCurrent(child)
		} else if !p.parseNamespacedType(child) {
			return false
		}
		if !p.parseCallArguments(child) {
			return false
		}
	default:
		return p.errorHere("Not a valid expression")
	}
	parent.AddChild(child)
	return true
}

// parseCallArguments parses a mandatory `( args )`.
func (p *Parser) parseCallArguments(child *CategoryNode) bool {
	if !p.consume(lexer.TokenLParen) {
		return p.errorHere("Expected ( for constructor call")
	}
	if !p.parseArgsList(child) {
		return false
	}
	if !p.consume(lexer.TokenRParen) {
		return p.reportMissing("Missing matching )")
	}
	return true
}

// parseAtomTail parses member access, indexing and postfix increments.
func (p *Parser) parseAtomTail(parent *CategoryNode) bool {
	child := NewCategory(CatAtomTail)
	switch p.current().Kind {
	case lexer.TokenArrow, lexer.TokenDot:
		p.consumeCurrent(child)
		if !p.consumeLeaf(lexer.TokenIdent, child) {
			return p.errorHere("Expected member name")
		}
		if !p.parseFunctionCall(child) || !p.parseAtomTail(child) {
			return false
		}
	case lexer.TokenLBracket:
		p.consumeCurrent(child)
		if !p.parseExpression(child) {
			return false
		}
		if !p.consumeLeaf(lexer.TokenRBracket, child) {
			return p.reportMissing("Missing matching ]")
		}
		if !p.parseAtomTail(child) {
			return false
		}
	case lexer.TokenIncrement, lexer.TokenDecrement:
		p.consumeCurrent(child)
	}
	parent.AddChild(child)
	return true
}

// parseFunctionCall parses an optional argument list. Without one it adds an empty node.
func (p *Parser) parseFunctionCall(parent *CategoryNode) bool {
	child := NewCategory(CatFunctionCall)
	if p.consume(lexer.TokenLParen) {
		if !p.parseArgsList(child) {
			return false
		}
		if !p.consume(lexer.TokenRParen) {
			return p.reportMissing("Missing matching )")
		}
	}
	parent.AddChild(child)
	return true
}

func (p *Parser) parseArgsList(parent *CategoryNode) bool {
	child := NewCategory(CatArgsList)
	if p.startsExpression() {
		if !p.parseExpression(child) {
			return false
		}
		tail := NewCategory(CatArgsListTail)
		if p.consume(lexer.TokenComma) && !p.parseArgsList(tail) {
			return false
		}
		child.AddChild(tail)
	}
	parent.AddChild(child)
	return true
}
