package parser

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/dhamidi/radin/cx/lexer"
)

// rule parses one nonterminal into parent. It adds its node to parent only on success.
type rule func(parent *CategoryNode) bool

// AttemptStatus is the outcome of a speculative rule invocation.
type AttemptStatus int

const (
	// Parsed means the rule succeeded and its effects were kept.
	Parsed AttemptStatus = iota
	// Rollback means the rule failed before committing; cursor, type names, tree and
	// errors are exactly as they were before the attempt.
	Rollback
	// Desync means the rule failed after committing; its errors are permanent and the
	// cursor stays where the failure happened.
	Desync
)

func (s AttemptStatus) String() string {
	switch s {
	case Parsed:
		return "Parsed"
	case Rollback:
		return "Rollback"
	case Desync:
		return "Desync"
	}
	return fmt.Sprintf("AttemptStatus(%d)", int(s))
}

// checkpoint bundles everything a rollback has to rewind.
type checkpoint struct {
	pos      int
	types    typeSnapshot
	errMark  int
	parent   *CategoryNode
	children int
	force    bool
}

func (p *Parser) checkpoint(parent *CategoryNode) {
	cp := checkpoint{
		pos:     p.src.Position(),
		types:   p.types.snapshot(),
		errMark: p.errs.mark(),
		parent:  parent,
	}
	if parent != nil {
		cp.children = len(parent.Children)
	}
	p.frames = append(p.frames, cp)
}

func (p *Parser) popCheckpoint() checkpoint {
	cp := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	return cp
}

// discardCheckpoint commits the innermost frame.
func (p *Parser) discardCheckpoint() {
	cp := p.popCheckpoint()
	p.errs.keepRecoveredFrom(cp.errMark, p.speculative())
}

// restoreCheckpoint rewinds to the state recorded by the innermost frame.
func (p *Parser) restoreCheckpoint() {
	cp := p.popCheckpoint()
	p.src.Seek(cp.pos)
	p.types.restore(cp.types)
	p.errs.dropFrom(cp.errMark)
	cp.truncate()
}

// desyncCheckpoint pops the innermost frame without rewinding and surfaces its errors.
func (p *Parser) desyncCheckpoint() {
	cp := p.popCheckpoint()
	p.errs.promoteFrom(cp.errMark)
	cp.truncate()
}

func (cp checkpoint) truncate() {
	if cp.parent != nil && len(cp.parent.Children) > cp.children {
		cp.parent.Children = cp.parent.Children[:cp.children]
	}
}

// clampMarks keeps every open frame's mark within the temporary list after it shrank,
// so that a later rollback drops the errors raised after the shrink.
func (p *Parser) clampMarks() {
	n := p.errs.mark()
	for i := range p.frames {
		p.frames[i].errMark = min(p.frames[i].errMark, n)
	}
}

// speculative reports whether errors raised now belong to an uncommitted branch.
func (p *Parser) speculative() bool {
	return len(p.frames) > 0 && !p.frames[len(p.frames)-1].force
}

// forceCommit marks the innermost frame as committed. A later failure in it is a
// syntax error instead of a reason to try another alternative.
func (p *Parser) forceCommit() {
	if len(p.frames) == 0 {
		return
	}
	p.frames[len(p.frames)-1].force = true
}

func (p *Parser) attempt(r rule, parent *CategoryNode) AttemptStatus {
	p.traceEnter(r)
	p.checkpoint(parent)
	status := Parsed
	switch {
	case r(parent):
		p.discardCheckpoint()
	case p.frames[len(p.frames)-1].force || p.tooDeep:
		p.desyncCheckpoint()
		status = Desync
	default:
		p.restoreCheckpoint()
		status = Rollback
	}
	p.traceLeave(status)
	return status
}

// oneOf tries each alternative in order. The last one runs without a checkpoint so that
// its errors are reported as they are.
func (p *Parser) oneOf(parent *CategoryNode, alternatives ...rule) bool {
	for i, r := range alternatives {
		if i == len(alternatives)-1 {
			return r(parent)
		}
		switch status := p.attempt(r, parent); status {
		case Parsed:
			return true
		case Rollback:
			continue
		case Desync:
			return false
		default:
			panic(fmt.Sprintf("parser: illegal attempt status %v", status))
		}
	}
	return false
}

// current returns the token under the cursor, re-tagging identifiers that name a type.
func (p *Parser) current() lexer.Token {
	tok := p.src.Current()
	if tok.Kind == lexer.TokenIdent && p.types.IsTypeName(tok.Literal) {
		return tok.WithKind(lexer.TokenTypeName)
	}
	return tok
}

func (p *Parser) previous() lexer.Token {
	return p.src.Previous()
}

func (p *Parser) match(kind lexer.TokenKind) bool {
	return p.current().Kind == kind
}

func (p *Parser) matchAny(kinds ...lexer.TokenKind) bool {
	k := p.current().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.TokenKind) bool {
	if !p.match(kind) {
		return false
	}
	p.src.Advance()
	return true
}

// consumeLeaf consumes a token of kind and adds it to parent as a leaf.
func (p *Parser) consumeLeaf(kind lexer.TokenKind, parent *CategoryNode) bool {
	tok := p.current()
	if tok.Kind != kind {
		return false
	}
	parent.AddChild(NewLeaf(tok))
	p.src.Advance()
	return true
}

// consumeCurrent adds the current token to parent and advances, whatever its kind.
func (p *Parser) consumeCurrent(parent *CategoryNode) lexer.Token {
	tok := p.current()
	parent.AddChild(NewLeaf(tok))
	p.src.Advance()
	return tok
}

// identifier returns the current token read as a plain identifier. Name-introducing
// positions use it so that a redeclared type name is accepted.
func (p *Parser) identifier() (lexer.Token, bool) {
	tok := p.src.Current()
	if tok.Kind != lexer.TokenIdent {
		return tok, false
	}
	return tok, true
}

func (p *Parser) traceEnter(r rule) {
	if p.trace == nil {
		return
	}
	name := runtime.FuncForPC(reflect.ValueOf(r).Pointer()).Name()
	name = strings.TrimSuffix(name[strings.LastIndex(name, ".")+1:], "-fm")
	name = strings.TrimPrefix(name, "parse")
	fmt.Fprintf(p.trace, "%sattempt %s at %s %q\n",
		strings.Repeat("  ", len(p.frames)), name, p.current().Span.Start, p.current().Literal)
}

func (p *Parser) traceLeave(status AttemptStatus) {
	if p.trace == nil {
		return
	}
	fmt.Fprintf(p.trace, "%s-> %s\n", strings.Repeat("  ", len(p.frames)), status)
}
