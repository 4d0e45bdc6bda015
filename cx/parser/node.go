package parser

import (
	"strings"

	"github.com/dhamidi/radin/cx/lexer"
)

// Node is a parse tree node: either a *CategoryNode or a *LeafNode.
type Node interface {
	// Label is the category name for category nodes and the token image for leaves.
	Label() string
	Span() lexer.Span

	SetInherited(v any)
	Inherited() (any, bool)
	InheritedAt(i int) (any, bool)
	SetSynthesized(v any)
	Synthesized() (any, bool)

	stringIndent(b *strings.Builder, indent int, showPositions bool)
}

// attributes holds the slots used by the semantic pass. The parser never reads them.
type attributes struct {
	inherited   []any
	synthesized any
	hasSynth    bool
}

// SetInherited pushes v in front of previously inherited values.
func (a *attributes) SetInherited(v any) {
	a.inherited = append([]any{v}, a.inherited...)
}

func (a *attributes) Inherited() (any, bool) {
	return a.InheritedAt(0)
}

func (a *attributes) InheritedAt(i int) (any, bool) {
	if i < 0 || i >= len(a.inherited) {
		return nil, false
	}
	return a.inherited[i], true
}

func (a *attributes) SetSynthesized(v any) {
	a.synthesized = v
	a.hasSynth = true
}

func (a *attributes) Synthesized() (any, bool) {
	return a.synthesized, a.hasSynth
}

type CategoryNode struct {
	attributes
	Name     string
	Children []Node
}

func NewCategory(name string) *CategoryNode {
	return &CategoryNode{Name: name}
}

func (n *CategoryNode) Label() string {
	return n.Name
}

// Span covers the first to the last leaf below n. Empty categories have a zero span.
func (n *CategoryNode) Span() lexer.Span {
	var span lexer.Span
	first := true
	for _, child := range n.Children {
		s := child.Span()
		if s == (lexer.Span{}) {
			continue
		}
		if first {
			span.Start = s.Start
			first = false
		}
		span.End = s.End
	}
	return span
}

func (n *CategoryNode) AddChild(child Node) {
	if child == nil {
		return
	}
	if c, ok := child.(*CategoryNode); ok && c == nil {
		return
	}
	n.Children = append(n.Children, child)
}

func (n *CategoryNode) ChildCategory(name string) *CategoryNode {
	return n.NthChildCategory(name, 0)
}

// NthChildCategory returns the n-th (zero-based) direct child category called name.
func (n *CategoryNode) NthChildCategory(name string, nth int) *CategoryNode {
	for _, child := range n.Children {
		if c, ok := child.(*CategoryNode); ok && c.Name == name {
			if nth == 0 {
				return c
			}
			nth--
		}
	}
	return nil
}

func (n *CategoryNode) ChildCategories(name string) []*CategoryNode {
	var result []*CategoryNode
	for _, child := range n.Children {
		if c, ok := child.(*CategoryNode); ok && c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

func (n *CategoryNode) HasChildCategory(name string) bool {
	return n.ChildCategory(name) != nil
}

func (n *CategoryNode) ChildLeaf(kind lexer.TokenKind) *LeafNode {
	return n.NthChildLeaf(kind, 0)
}

func (n *CategoryNode) NthChildLeaf(kind lexer.TokenKind, nth int) *LeafNode {
	for _, child := range n.Children {
		if l, ok := child.(*LeafNode); ok && l.Token.Kind == kind {
			if nth == 0 {
				return l
			}
			nth--
		}
	}
	return nil
}

// Find returns the first category called name in a depth-first, pre-order walk of n,
// n itself included.
func (n *CategoryNode) Find(name string) *CategoryNode {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if c, ok := child.(*CategoryNode); ok {
			if found := c.Find(name); found != nil {
				return found
			}
		}
	}
	return nil
}

// Leaves returns the tokens below n in source order.
func (n *CategoryNode) Leaves() []lexer.Token {
	var tokens []lexer.Token
	for _, node := range n.Postfix() {
		if l, ok := node.(*LeafNode); ok {
			tokens = append(tokens, l.Token)
		}
	}
	return tokens
}

// Postfix lists the subtree rooted at n in post-order: children before their parent.
func (n *CategoryNode) Postfix() []Node {
	var out []Node
	var walk func(Node)
	walk = func(node Node) {
		if c, ok := node.(*CategoryNode); ok {
			for _, child := range c.Children {
				walk(child)
			}
		}
		out = append(out, node)
	}
	walk(n)
	return out
}

func (n *CategoryNode) String() string {
	var b strings.Builder
	n.stringIndent(&b, 0, false)
	return b.String()
}

func (n *CategoryNode) StringWithPositions() string {
	var b strings.Builder
	n.stringIndent(&b, 0, true)
	return b.String()
}

func (n *CategoryNode) stringIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Name)
	if showPositions && len(n.Children) > 0 {
		span := n.Span()
		b.WriteString(" [" + span.Start.String() + "-" + span.End.String() + "]")
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		child.stringIndent(b, indent+1, showPositions)
	}
}

type LeafNode struct {
	attributes
	Token lexer.Token
}

func NewLeaf(tok lexer.Token) *LeafNode {
	return &LeafNode{Token: tok}
}

func (n *LeafNode) Label() string {
	return n.Token.Literal
}

func (n *LeafNode) Span() lexer.Span {
	return n.Token.Span
}

func (n *LeafNode) String() string {
	return n.Token.Kind.String() + " " + n.Token.Literal
}

func (n *LeafNode) stringIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Token.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Token.Span.Start.String() + "]")
	}
	b.WriteString(" " + n.Token.Literal + "\n")
}
