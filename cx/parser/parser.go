package parser

import (
	"io"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/radin/cx/lexer"
)

const DefaultMaxDepth = 512

var log = commonlog.GetLogger("radin.parser")

type Option func(*Parser)

func WithFile(file string) Option {
	return func(p *Parser) {
		p.file = file
	}
}

// WithTypeNames predeclares type names, for builtins such as bool that the language
// does not reserve.
func WithTypeNames(names ...string) Option {
	return func(p *Parser) {
		p.predeclared = append(p.predeclared, names...)
	}
}

// WithMaxDepth bounds rule nesting. Deeper input fails with a single diagnostic.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithTrace writes every speculative attempt and its outcome to w.
func WithTrace(w io.Writer) Option {
	return func(p *Parser) {
		p.trace = w
	}
}

type Parser struct {
	src         lexer.Source
	file        string
	predeclared []string
	types       *TypeContext
	errs        ledger
	frames      []checkpoint

	depth    int
	maxDepth int
	tooDeep  bool
	depthErr *Diagnostic

	trace io.Writer
}

func New(src lexer.Source, opts ...Option) *Parser {
	p := &Parser{
		src:      src,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.types = NewTypeContext(p.predeclared...)
	return p
}

// NewFromBytes tokenizes data and returns a parser over it.
func NewFromBytes(data []byte, opts ...Option) *Parser {
	p := New(nil, opts...)
	p.src = lexer.NewStream(data, p.file)
	return p
}

// Reset rewinds the token source and clears errors and all declared type names.
func (p *Parser) Reset() {
	p.src.Reset()
	p.types = NewTypeContext(p.predeclared...)
	p.clearState()
}

// Feed switches to a new token source and keeps the declared type names.
func (p *Parser) Feed(src lexer.Source) {
	p.src = src
	p.clearState()
}

func (p *Parser) clearState() {
	p.errs.reset()
	p.frames = nil
	p.depth = 0
	p.tooDeep = false
	p.depthErr = nil
}

func (p *Parser) Types() *TypeContext {
	return p.types
}

// Errors returns the reported diagnostics in the order they were raised.
func (p *Parser) Errors() []*Diagnostic {
	errs := p.errs.permanent()
	if p.depthErr != nil {
		errs = append(errs, p.depthErr)
	}
	return errs
}

// Parse parses a translation unit. Declarations that fail are reported and left out of
// the tree. It returns nil only when the input nests deeper than the configured limit.
func (p *Parser) Parse() *CategoryNode {
	root := NewCategory(CatProgram)
	p.parseTopLevelDecsList(root, false)
	if p.tooDeep {
		log.Debugf("%s: gave up after exceeding nesting depth %d", p.file, p.maxDepth)
		return nil
	}
	log.Debugf("%s: parsed with %d diagnostics", p.file, len(p.Errors()))
	return root
}

// ParseExpression parses a single expression, assignments included. Trailing tokens are
// left unread; AtEOF reports whether any remain.
func (p *Parser) ParseExpression() *CategoryNode {
	holder := NewCategory(CatProgram)
	ok := p.parseTopExpression(holder)
	p.errs.settle()
	if !ok || p.tooDeep {
		return nil
	}
	return holder.ChildCategory(CatTopExpression)
}

// AtEOF reports whether the whole input has been consumed.
func (p *Parser) AtEOF() bool {
	return p.match(lexer.TokenEOF)
}

// Position returns the cursor position in the token source.
func (p *Parser) Position() int {
	return p.src.Position()
}

// enter guards rule recursion. Callers pair it with leave.
func (p *Parser) enter() bool {
	if p.tooDeep {
		return false
	}
	if p.depth >= p.maxDepth {
		p.tooDeep = true
		p.depthErr = &Diagnostic{Message: "nesting too deep", Token: p.current()}
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// reportError records msg at tok and returns false so rules can `return p.reportError(...)`.
// promote surfaces every pending speculative error as well.
func (p *Parser) reportError(msg string, tok lexer.Token, promote bool) bool {
	p.errs.add(&Diagnostic{Message: msg, Token: tok}, p.speculative(), false)
	if promote {
		p.errs.promoteAll()
		p.clampMarks()
	}
	return false
}

// errorHere reports msg at the current token.
func (p *Parser) errorHere(msg string) bool {
	return p.reportError(msg, p.current(), false)
}

// reportMissing reports msg at the token before the cursor, where the missing token
// should have followed.
func (p *Parser) reportMissing(msg string) bool {
	return p.reportError(msg, p.missingAt(), false)
}

func (p *Parser) missingAt() lexer.Token {
	if p.src.Position() == 0 {
		return p.current()
	}
	return p.previous()
}

// recoverToToken reports msg and skips tokens until sync has been consumed or a stop
// token (EOF always stops) is under the cursor. It returns true when sync was found.
func (p *Parser) recoverToToken(msg string, sync lexer.TokenKind, stops ...lexer.TokenKind) bool {
	p.errs.add(&Diagnostic{Message: msg, Token: p.missingAt()}, p.speculative(), true)
	for {
		if p.match(lexer.TokenEOF) || p.matchAny(stops...) {
			return false
		}
		if p.consume(sync) {
			return true
		}
		p.src.Advance()
	}
}

// absorb folds the pending errors of the current construct into one diagnostic at tok.
// Without anything to fold it reports msg alone.
func (p *Parser) absorb(msg string, includeTemps bool, tok lexer.Token) bool {
	d := p.errs.absorb(msg, tok, includeTemps)
	p.clampMarks()
	if d == nil {
		return p.reportError(msg, tok, false)
	}
	p.errs.add(d, p.speculative(), false)
	return false
}

func (p *Parser) clearTemporary() {
	p.errs.clearTemporary()
	p.clampMarks()
}
