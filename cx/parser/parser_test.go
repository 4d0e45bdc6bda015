package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/radin/cx/lexer"
)

func messages(errs []*Diagnostic) []string {
	var out []string
	for _, d := range errs {
		out = append(out, d.Message)
	}
	return out
}

func topLevelDeclarations(root *CategoryNode) []*CategoryNode {
	var decls []*CategoryNode
	for list := root.ChildCategory(CatTopLevelDecsList); list != nil; {
		if d := list.ChildCategory(CatTopLevelDecl); d != nil {
			decls = append(decls, d)
		}
		tail := list.ChildCategory(CatTopLevelDecsTail)
		if tail == nil {
			break
		}
		list = tail.ChildCategory(CatTopLevelDecsList)
	}
	return decls
}

func TestParseSimpleDeclaration(t *testing.T) {
	p := newTestParser("int x;")
	root := p.Parse()
	require.NotNil(t, root)
	assert.Empty(t, p.Errors())

	decls := topLevelDeclarations(root)
	require.Len(t, decls, 1)
	decl := decls[0].ChildCategory(CatDeclaration)
	require.NotNil(t, decl)
	assert.Equal(t, []string{"int", "x"}, leafLiterals(decl))
	assert.True(t, p.AtEOF())
}

func leafLiterals(n *CategoryNode) []string {
	var out []string
	for _, tok := range n.Leaves() {
		out = append(out, tok.Literal)
	}
	return out
}

func TestParseTypedefFeedsLexicalContext(t *testing.T) {
	p := newTestParser("typedef int myint; myint y;")
	root := p.Parse()
	require.NotNil(t, root)
	assert.Empty(t, p.Errors())
	assert.True(t, p.Types().IsTypeName("myint"))

	decls := topLevelDeclarations(root)
	require.Len(t, decls, 2)
	require.NotNil(t, decls[0].ChildCategory(CatTypeDef))

	spec := decls[1].Find(CatSpecifier)
	require.NotNil(t, spec)
	leaf := spec.ChildLeaf(lexer.TokenTypeName)
	require.NotNil(t, leaf, "myint is read back as a type name")
	assert.Equal(t, "myint", leaf.Token.Literal)
}

func TestParseExpressionCast(t *testing.T) {
	p := newTestParser("(Foo) x", WithTypeNames("Foo"))
	expr := p.ParseExpression()
	require.NotNil(t, expr)
	assert.Empty(t, p.Errors())
	assert.True(t, p.AtEOF())

	cast := expr.Find(CatCast)
	require.NotNil(t, cast)
	assert.NotNil(t, cast.Find(CatTypeName))
}

func TestParseExpressionParenthesisedIdentifierIsNotACast(t *testing.T) {
	p := newTestParser("(a) x")
	expr := p.ParseExpression()
	require.NotNil(t, expr)
	assert.Empty(t, p.Errors(), "the failed cast attempt leaves no trace")
	assert.Nil(t, expr.Find(CatCast))

	atom := expr.Find(CatAtom)
	require.NotNil(t, atom)
	assert.NotNil(t, atom.ChildCategory(CatExpression))
	assert.False(t, p.AtEOF())
	assert.Equal(t, 3, p.Position(), "x is left unread")
}

func TestParseClassMissingBrace(t *testing.T) {
	p := newTestParser("class B {}; class A : B { int x")
	root := p.Parse()
	require.NotNil(t, root)

	var missing *Diagnostic
	for _, d := range p.Errors() {
		if d.Message == "Missing matching }" {
			missing = d
		}
	}
	require.NotNil(t, missing, "errors: %v", messages(p.Errors()))
	assert.Equal(t, "x", missing.Token.Literal, "reported after the last token read")

	decls := topLevelDeclarations(root)
	require.Len(t, decls, 1, "the broken class is left out of the tree")
	assert.NotNil(t, decls[0].ChildCategory(CatClassDecl))
}

func TestParseMissingSemicolonRecovers(t *testing.T) {
	p := newTestParser("void f() { a = b c d; e = f; }")
	root := p.Parse()
	require.NotNil(t, root)

	errs := p.Errors()
	require.Len(t, errs, 1, "errors: %v", messages(errs))
	assert.Equal(t, "Missing semi-colon", errs[0].Message)
	assert.Equal(t, "b", errs[0].Token.Literal)

	body := root.Find(CatCompound)
	require.NotNil(t, body)
	var assigned []string
	for _, n := range body.Postfix() {
		if c, ok := n.(*CategoryNode); ok && c.Name == CatAssignment {
			assigned = append(assigned, c.Leaves()[0].Literal)
		}
	}
	assert.Equal(t, []string{"a", "e"}, assigned)
}

func TestParseTopLevelRecovery(t *testing.T) {
	p := newTestParser("int x = ; int y;")
	root := p.Parse()
	require.NotNil(t, root)

	errs := p.Errors()
	require.Len(t, errs, 1, "errors: %v", messages(errs))
	assert.Equal(t, "Could not parse declaration", errs[0].Message)
	assert.True(t, errs[0].Composite())
	assert.Contains(t, messagesOf(errs[0].Related), "Missing initial value")

	decls := topLevelDeclarations(root)
	require.Len(t, decls, 1)
	assert.Equal(t, []string{"int", "y"}, leafLiterals(decls[0]))
}

func messagesOf(related []Related) []string {
	var out []string
	for _, r := range related {
		out = append(out, r.Message)
	}
	return out
}

func TestParseUnmatchedBraceMakesProgress(t *testing.T) {
	p := newTestParser("} int x; )")
	root := p.Parse()
	require.NotNil(t, root)
	assert.True(t, p.AtEOF())
	assert.Equal(t, []string{"Unmatched }", "Not a valid top level declaration"}, messages(p.Errors()))
	assert.Len(t, topLevelDeclarations(root), 1)
}

func TestParseValidPrograms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		find  string
	}{
		{"function", "int main(int argc, char **argv) { return 0; }", CatFunctionDef},
		{"prototype", "int puts(const char *s);", CatParameterTypeList},
		{"variadic", "int printf(char *fmt, ...);", CatParameterTypeList},
		{"pointer to function", "void sort(int (*cmp)(int, int));", CatParameterDecl},
		{"abstract parameter", "void f(int, char *);", CatAbstractDeclarator},
		{"array", "int xs[10];", CatDirectDeclaratorTail},
		{"struct", "struct point { int x, y; } origin;", CatStructDeclaration},
		{"bit field", "struct flags { unsigned a : 1; };", CatConstantExpression},
		{"union", "union u { int i; float f; };", CatStructOrUnion},
		{"initializer list", "int xs[] = {1, 2, 3};", CatInitializerList},
		{"k&r", "int add(a, b) int a; int b; { return a + b; }", CatIdentifierList},
		{"while", "void f() { while (x < 10) x++; }", CatIteration},
		{"do", "void f() { do { x--; } while (x); }", CatIteration},
		{"for", "void f() { for (int i = 0; i < n; i += 1) g(i); }", CatIteration},
		{"if else", "void f() { if (a && !b) return; else { c = d ? e : f; } }", CatSelection},
		{"sizeof", "void f() { n = sizeof(struct point *); }", CatTypeName},
		{"member access", "void f() { p->next.value[3] = q->items[i++]; }", CatAtomTail},
		{"compound assign", "void f() { x <<= 2; y %= 3; }", CatAssignOperator},
		{"precedence", "void f() { x = a | b ^ c & d == e < f << g + h * i; }", CatFactorTail},
		{"comma", "void f() { a = 1, b = 2; }", CatTopExpression},
		{"cast", "typedef int T; void f() { x = (T *) y; }", CatCast},
		{"new", "class Box {}; void f() { b = new Box(1, 2); }", CatAtom},
		{"namespace block", "in ll { typedef int Node; Node n; }", CatInIdentifier},
		{"namespace single", "in ll int n;", CatInIdentifier},
		{"compilation tag", "[inline] [section(\"text\")] int f() { return 0; }", CatCompilationTag},
		{"typeid", "void f() { t = typeid int; }", CatFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(tt.input)
			root := p.Parse()
			require.NotNil(t, root)
			assert.Empty(t, p.Errors(), "errors: %v", messages(p.Errors()))
			assert.NotNil(t, root.Find(tt.find), "no %s in\n%s", tt.find, root)
			assert.True(t, p.AtEOF())
		})
	}
}

const linkedList = `
class Node {
	public void* value_ptr;
	public Node next;
	public Node prev;

	public Node(void* value_ptr) {
		this->value_ptr = value_ptr;
	}
};

class LinkedList {
	private Node head;
	private int size;
	public LinkedList();
	public bool add(void* value_ptr);
	public virtual int length() { return this->size; }
};

implement LinkedList {
	LinkedList() {
		this->head = 0;
		this->size = 0;
	}

	bool add(void* value_ptr) {
		Node n = new Node(value_ptr);
		n->next = this->head;
		this->head = n;
		this->size++;
		return true;
	}
}
`

func TestParseClassesAndImplement(t *testing.T) {
	p := newTestParser(linkedList, WithTypeNames("bool"))
	root := p.Parse()
	require.NotNil(t, root)
	assert.Empty(t, p.Errors(), "errors: %v", messages(p.Errors()))
	assert.True(t, p.Types().IsTypeName("Node"))
	assert.True(t, p.Types().IsTypeName("LinkedList"))

	decls := topLevelDeclarations(root)
	require.Len(t, decls, 3)
	assert.NotNil(t, decls[0].ChildCategory(CatClassDecl))
	assert.NotNil(t, decls[2].ChildCategory(CatImplement))

	var ctors int
	for _, n := range root.Postfix() {
		if c, ok := n.(*CategoryNode); ok && c.Name == CatConstructor {
			ctors++
		}
	}
	assert.Equal(t, 3, ctors)
}

func TestParseConstructorDelegation(t *testing.T) {
	src := `class A { public A(int x) : this(x, 0) { } public A(int x, int y) { } };`
	p := newTestParser(src)
	require.NotNil(t, p.Parse())
	assert.Empty(t, p.Errors(), "errors: %v", messages(p.Errors()))
}

func TestParseClassMemberRecovery(t *testing.T) {
	src := `class A { int ok; int 5 bad; int also_ok; };`
	p := newTestParser(src)
	root := p.Parse()
	require.NotNil(t, root)

	require.Len(t, p.Errors(), 1, "errors: %v", messages(p.Errors()))
	assert.Equal(t, "Could not parse class declaration", p.Errors()[0].Message)

	cls := root.Find(CatClassDecl)
	require.NotNil(t, cls, "the class survives a bad member")
	assert.Contains(t, leafLiterals(cls), "also_ok")
}

func TestParseGenericScope(t *testing.T) {
	p := newTestParser("for <T> T id(T x) { return x; } T y;")
	root := p.Parse()
	require.NotNil(t, root)

	assert.False(t, p.Types().IsTypeName("T"), "type parameters end with their declaration")
	assert.Equal(t, 0, p.Types().Depth())
	require.Len(t, p.Errors(), 1)
	assert.Equal(t, "Could not parse declaration", p.Errors()[0].Message)

	generic := root.Find(CatGenericDecl)
	require.NotNil(t, generic)
	assert.NotNil(t, generic.Find(CatFunctionDef))
}

func TestParseGenericClass(t *testing.T) {
	p := newTestParser("for <T : Base> class Box { T value; }; Box b;", WithTypeNames("Base"))
	require.NotNil(t, p.Parse())
	assert.Empty(t, p.Errors(), "errors: %v", messages(p.Errors()))
	assert.True(t, p.Types().IsTypeName("Box"))
	assert.False(t, p.Types().IsTypeName("T"))
}

func TestParseUsing(t *testing.T) {
	tests := []struct {
		input    string
		declared string
	}{
		{"using std::String; String s;", "String"},
		{"using std::String = Str; Str s;", "Str"},
		{"using io::fs::File; File f;", "File"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			require.NotNil(t, p.Parse())
			assert.Empty(t, p.Errors(), "errors: %v", messages(p.Errors()))
			assert.True(t, p.Types().IsTypeName(tt.declared))
		})
	}
}

func TestParseNamespacedTypes(t *testing.T) {
	p := newTestParser("typedef int Node; ll::Node head; void f() { ll::Node n; }")
	root := p.Parse()
	require.NotNil(t, root)
	assert.Empty(t, p.Errors(), "errors: %v", messages(p.Errors()))
	assert.NotNil(t, root.Find(CatNamespacedType))
}

func TestParseTypedefErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"typedef int A; typedef int A;", "ID already exists as a type"},
		{"typedef int 5;", "Can't typedef a literal"},
		{"typedef ;", "Can't typedef this"},
		{"typedef int B", "Missing semi-colon"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			require.NotNil(t, p.Parse())
			assert.Contains(t, messages(p.Errors()), tt.want)
		})
	}
}

func TestParseStructTagsAreCompounds(t *testing.T) {
	p := newTestParser("struct point { int x; }; struct point p;")
	require.NotNil(t, p.Parse())
	assert.Empty(t, p.Errors())
	assert.True(t, p.Types().IsCompoundName("point"))
	assert.False(t, p.Types().IsTypeName("point"))
}

// Speculative declarations that fail must not leak the names they introduced.
func TestParseRollbackForgetsTypeNames(t *testing.T) {
	p := newTestParser("void f() { g(); }")
	require.NotNil(t, p.Parse())
	assert.Empty(t, p.Errors())
	assert.Empty(t, p.Types().Names())
	assert.Empty(t, p.Types().Compounds())
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 100) + "x" + strings.Repeat(")", 100)

	p := newTestParser(deep, WithMaxDepth(16))
	assert.Nil(t, p.ParseExpression())
	require.NotEmpty(t, p.Errors())
	assert.Equal(t, "nesting too deep", p.Errors()[len(p.Errors())-1].Message)

	p = newTestParser("void f() { x = "+deep+"; }", WithMaxDepth(16))
	assert.Nil(t, p.Parse())

	p = newTestParser(deep)
	assert.NotNil(t, p.ParseExpression(), "the default limit allows moderate nesting")
}

func TestParseLongBodiesDoNotCountAsNesting(t *testing.T) {
	body := strings.Repeat("x = x + 1;\n", 2000)
	p := newTestParser("void f() {\n"+body+"}", WithMaxDepth(32))
	require.NotNil(t, p.Parse())
	assert.Empty(t, p.Errors())
}

func TestFeedKeepsTypeNames(t *testing.T) {
	p := newTestParser("typedef int A;")
	require.NotNil(t, p.Parse())

	p.Feed(lexer.NewStream([]byte("A x;"), "second.cx"))
	root := p.Parse()
	require.NotNil(t, root)
	assert.Empty(t, p.Errors())
	assert.NotNil(t, root.Find(CatSpecifier).ChildLeaf(lexer.TokenTypeName))

	p.Reset()
	assert.False(t, p.Types().IsTypeName("A"))
}

func TestDiagnosticsAreOrderedAcrossDeclarations(t *testing.T) {
	p := newTestParser("int a = ;\nint b = ;\n")
	require.NotNil(t, p.Parse())

	var lines []int
	for _, d := range p.Errors() {
		lines = append(lines, d.Pos().Line)
	}
	if diff := cmp.Diff([]int{1, 2}, lines); diff != "" {
		t.Errorf("diagnostic lines mismatch (-want +got):\n%s", diff)
	}
	for _, d := range p.Errors() {
		assert.Len(t, d.Related, 2, "each declaration folds only its own errors")
	}
}

func TestParseBrokenGenericIsReported(t *testing.T) {
	tests := []struct {
		input string
		decls int
	}{
		{"for <T> T f( ;", 0},
		{"for <T, U> T f( ; int y;", 1},
		{"for <T> T f(T x) { return x; ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input, WithTypeNames("Known"))
			before := p.Types().Names()

			root := p.Parse()
			require.NotNil(t, root)
			assert.Contains(t, messages(p.Errors()), "Could not parse generic declaration")
			assert.Len(t, topLevelDeclarations(root), tt.decls)

			assert.Equal(t, before, p.Types().Names(), "type parameters do not outlive a failed generic")
			assert.Equal(t, 0, p.Types().Depth())
		})
	}
}

func TestParseRecoveryInsideBlocks(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"void f() { int x = ; } int y;", []string{"Failed to compile compound statement", "Could not parse declaration"}},
		{"class A {}; implement A { A( ; } int y;", []string{"Illegal statement in implement section"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			root := p.Parse()
			require.NotNil(t, root)

			got := messages(p.Errors())
			require.NotEmpty(t, got)
			assert.NotContains(t, got, "Unmatched }")
			assert.Equal(t, tt.want, got)

			decls := topLevelDeclarations(root)
			require.NotEmpty(t, decls)
			assert.Equal(t, []string{"int", "y"}, leafLiterals(decls[len(decls)-1]))
		})
	}
}

// An undeclared base name fails the inheritance clause before the body is read.
func TestParseClassInheritFromUnknownName(t *testing.T) {
	p := newTestParser("class A : B { int x")
	root := p.Parse()
	require.NotNil(t, root)

	got := messages(p.Errors())
	assert.Contains(t, got, "Not a proper type name for inherit")
	assert.NotContains(t, got, "Missing matching }")
	assert.Empty(t, topLevelDeclarations(root))
}

func TestParseArrayBoundTooDeep(t *testing.T) {
	deep := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)
	p := newTestParser("int xs["+deep+"];", WithMaxDepth(16))
	assert.Nil(t, p.Parse())

	got := messages(p.Errors())
	require.NotEmpty(t, got)
	assert.Equal(t, "nesting too deep", got[len(got)-1])
	assert.NotContains(t, got, "Missing matching ]")
}
