package parser

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/radin/cx/lexer"
)

func leafAt(kind lexer.TokenKind, lit string, line, col int) *LeafNode {
	start := lexer.Position{Line: line, Column: col}
	end := lexer.Position{Line: line, Column: col + len(lit)}
	return NewLeaf(lexer.Token{Kind: kind, Literal: lit, Span: lexer.Span{Start: start, End: end}})
}

func sampleTree() *CategoryNode {
	decl := NewCategory(CatDeclaration)
	specs := NewCategory(CatDeclSpecifiers)
	specs.AddChild(leafAt(lexer.TokenInt, "int", 1, 1))
	decl.AddChild(specs)
	decl.AddChild(NewCategory(CatInitDeclaratorList))
	decl.AddChild(leafAt(lexer.TokenIdent, "x", 1, 5))
	return decl
}

func TestCategoryNodeSpanSkipsEmptyChildren(t *testing.T) {
	decl := sampleTree()
	span := decl.Span()
	assert.Equal(t, 1, span.Start.Column)
	assert.Equal(t, 6, span.End.Column)
	assert.Equal(t, lexer.Span{}, NewCategory("Empty").Span())
}

func TestCategoryNodeLookup(t *testing.T) {
	decl := sampleTree()
	assert.NotNil(t, decl.ChildCategory(CatDeclSpecifiers))
	assert.Nil(t, decl.ChildCategory(CatStatement))
	assert.True(t, decl.HasChildCategory(CatInitDeclaratorList))
	assert.Equal(t, "x", decl.ChildLeaf(lexer.TokenIdent).Token.Literal)
	assert.Nil(t, decl.NthChildLeaf(lexer.TokenIdent, 1))
	assert.Same(t, decl.ChildCategory(CatDeclSpecifiers), decl.Find(CatDeclSpecifiers))

	var nilCat *CategoryNode
	decl.AddChild(nilCat)
	assert.Len(t, decl.Children, 3, "typed nil children are ignored")
}

func TestCategoryNodeTraversals(t *testing.T) {
	decl := sampleTree()

	var leaves []string
	for _, tok := range decl.Leaves() {
		leaves = append(leaves, tok.Literal)
	}
	assert.Equal(t, []string{"int", "x"}, leaves)

	var order []string
	for _, n := range decl.Postfix() {
		order = append(order, n.Label())
	}
	want := []string{"int", CatDeclSpecifiers, CatInitDeclaratorList, "x", CatDeclaration}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("postfix order mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributes(t *testing.T) {
	n := NewCategory(CatStatement)
	_, ok := n.Synthesized()
	assert.False(t, ok)

	n.SetInherited("outer")
	n.SetInherited("inner")
	v, ok := n.Inherited()
	require.True(t, ok)
	assert.Equal(t, "inner", v)
	v, _ = n.InheritedAt(1)
	assert.Equal(t, "outer", v)
	_, ok = n.InheritedAt(2)
	assert.False(t, ok)

	n.SetSynthesized(42)
	v, ok = n.Synthesized()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestNodeString(t *testing.T) {
	want := "Declaration\n" +
		"  DeclarationSpecifiers\n" +
		"    int int\n" +
		"  InitDeclaratorList\n" +
		"  Ident x\n"
	assert.Equal(t, want, sampleTree().String())
}

func TestNodeJSON(t *testing.T) {
	data, err := json.Marshal(sampleTree())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, CatDeclaration, got["category"])

	children, ok := got["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 3)
	leaf := children[2].(map[string]any)
	assert.Equal(t, "Ident", leaf["kind"])
	assert.Equal(t, "x", leaf["token"])
	empty := children[1].(map[string]any)
	assert.NotContains(t, empty, "span")
}
