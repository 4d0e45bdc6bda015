package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/cx/parser"
	"github.com/dhamidi/radin/project"
)

func parseResult(t *testing.T, src string) project.Result {
	t.Helper()
	p := parser.NewFromBytes([]byte(src), parser.WithFile("t.cx"))
	tree := p.Parse()
	return project.Result{
		File:        &project.File{Path: "t.cx", Rel: "t.cx"},
		Tree:        tree,
		Diagnostics: p.Errors(),
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{}, Options{})
	assert.EqualError(t, err, "unknown format: xml")

	for _, name := range []string{"", "text", "json", "table"} {
		enc, err := New(name, &bytes.Buffer{}, Options{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewLineEncoder(&buf, Options{Tree: true})
	require.NoError(t, enc.Encode(parseResult(t, "void f() { a = b c d; e = f; }")))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Program\n"), out)
	assert.Contains(t, out, "t.cx:1:")
	assert.Contains(t, out, "Missing semi-colon")
	assert.NotContains(t, out, "\x1b[", "color is off")
}

func TestLineEncoderComposite(t *testing.T) {
	d := &parser.Diagnostic{
		Message: "Could not parse declaration",
		Token:   lexer.Token{Kind: lexer.TokenIdent, Literal: "x", Span: lexer.Span{Start: lexer.Position{File: "t.cx", Line: 2, Column: 1}}},
		Related: []parser.Related{{
			Message: "Missing semi-colon",
			Token:   lexer.Token{Kind: lexer.TokenEOF, Span: lexer.Span{Start: lexer.Position{File: "t.cx", Line: 2, Column: 5}}},
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf, Options{}).Encode(project.Result{Diagnostics: []*parser.Diagnostic{d}}))

	want := "t.cx:2:1: Could not parse declaration near \"x\"\n" +
		"\tt.cx:2:5: Missing semi-colon at end of input\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf, Options{Tree: true})
	require.NoError(t, enc.Encode(parseResult(t, "typedef int T; T x;")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "t.cx", got["file"])
	assert.Equal(t, []any{}, got["diagnostics"])
	tree, ok := got["tree"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, parser.CatProgram, tree["category"])
}

func TestJSONEncoderWithoutTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, Options{}).Encode(parseResult(t, "int x")))

	var got struct {
		Tree        any              `json:"tree"`
		Diagnostics []jsonDiagnostic `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Nil(t, got.Tree)
	require.NotEmpty(t, got.Diagnostics)
	assert.Equal(t, 1, got.Diagnostics[0].Line)
}

func TestTableEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTableEncoder(&buf)
	require.NoError(t, enc.Encode(parseResult(t, "int x;")))
	assert.Empty(t, buf.String(), "clean files print nothing")

	require.NoError(t, enc.Encode(parseResult(t, "void f() { a = b c d; e = f; }")))
	out := buf.String()
	assert.Contains(t, out, "MESSAGE")
	assert.Contains(t, out, "Missing semi-colon")
}

func TestWriteTokens(t *testing.T) {
	var buf bytes.Buffer
	WriteTokens(&buf, lexer.Tokenize([]byte("int x;"), "t.cx"))
	out := buf.String()
	assert.Contains(t, out, "t.cx:1:5")
	assert.Contains(t, out, `"x"`)
}
