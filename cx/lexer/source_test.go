package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamCursor(t *testing.T) {
	s := NewStream([]byte("int x;"), "t.h")
	require.Equal(t, 4, s.Len())

	assert.Equal(t, TokenInt, s.Current().Kind)
	assert.Equal(t, Token{}, s.Previous())

	assert.Equal(t, TokenIdent, s.Advance().Kind)
	assert.Equal(t, TokenInt, s.Previous().Kind)
	assert.Equal(t, 1, s.Position())

	s.Advance()
	s.Advance()
	s.Advance()
	assert.Equal(t, TokenEOF, s.Current().Kind, "Advance stops at EOF")
	assert.Equal(t, 3, s.Position())

	s.Seek(1)
	assert.Equal(t, "x", s.Current().Literal)
	s.Seek(99)
	assert.Equal(t, 1, s.Position(), "out-of-range seek is ignored")
	s.Seek(-1)
	assert.Equal(t, 1, s.Position())

	s.Reset()
	assert.Equal(t, 0, s.Position())
}

func TestNewTokenStreamAppendsEOF(t *testing.T) {
	in := []Token{
		{Kind: TokenIdent, Literal: "a"},
		{Kind: TokenSemicolon, Literal: ";"},
	}
	s := NewTokenStream(in)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, TokenEOF, s.Tokens()[2].Kind)
	assert.Nil(t, in[1].Prev, "caller slice is not modified")
	assert.Equal(t, "a", s.Tokens()[1].Prev.Literal)
}

func TestEmptyStream(t *testing.T) {
	s := NewStream(nil, "empty.h")
	assert.Equal(t, TokenEOF, s.Current().Kind)
	assert.Equal(t, TokenEOF, s.Advance().Kind)
}
