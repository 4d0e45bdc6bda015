package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/radin/cx/lexer"
)

func diagAt(msg string, line, col int) *Diagnostic {
	return &Diagnostic{
		Message: msg,
		Token: lexer.Token{
			Kind:    lexer.TokenIdent,
			Literal: msg,
			Span:    lexer.Span{Start: lexer.Position{Line: line, Column: col}},
		},
	}
}

func TestLedgerAbsorbOrdersByPosition(t *testing.T) {
	var l ledger
	l.add(diagAt("late", 3, 1), false, false)
	l.add(diagAt("early", 1, 5), false, false)
	l.add(diagAt("temp", 2, 1), true, false)

	d := l.absorb("Could not parse declaration", lexer.Token{}, true)
	require.NotNil(t, d)

	var got []string
	for _, r := range d.Related {
		got = append(got, r.Message)
	}
	if diff := cmp.Diff([]string{"early", "temp", "late"}, got); diff != "" {
		t.Errorf("related order mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, l.pending)
	assert.Empty(t, l.temporary)
}

func TestLedgerAbsorbLeavesComposites(t *testing.T) {
	var l ledger
	composite := &Diagnostic{Message: "outer", Related: []Related{{Message: "inner"}}}
	l.add(composite, false, false)
	l.add(diagAt("single", 1, 1), false, false)

	d := l.absorb("folded", lexer.Token{}, false)
	require.NotNil(t, d)
	assert.Len(t, d.Related, 1)
	assert.Equal(t, []*Diagnostic{composite}, l.pending)
}

func TestLedgerAbsorbNothing(t *testing.T) {
	var l ledger
	l.add(diagAt("temp", 1, 1), true, false)
	assert.Nil(t, l.absorb("folded", lexer.Token{}, false))
	assert.Len(t, l.temporary, 1, "temporaries stay unless asked for")
}

func TestLedgerSettledErrorsAreNotAbsorbed(t *testing.T) {
	var l ledger
	l.add(diagAt("first declaration", 1, 1), false, false)
	l.settle()
	assert.Nil(t, l.absorb("second declaration", lexer.Token{}, false))
	assert.Len(t, l.permanent(), 1)
}

func TestLedgerMarksSurviveClearTemporary(t *testing.T) {
	var l ledger
	l.add(diagAt("a", 1, 1), true, false)
	l.add(diagAt("b", 1, 2), true, false)
	mark := l.mark()
	l.clearTemporary()

	assert.NotPanics(t, func() { l.dropFrom(mark) })
	assert.NotPanics(t, func() { l.promoteFrom(mark) })
	assert.NotPanics(t, func() { l.keepRecoveredFrom(mark, true) })
	assert.Empty(t, l.permanent())
}

func TestLedgerKeepRecovered(t *testing.T) {
	var l ledger
	l.add(diagAt("explore", 1, 1), true, false)
	l.add(diagAt("recovered", 1, 2), true, true)

	l.keepRecoveredFrom(0, true)
	require.Len(t, l.temporary, 1)
	assert.True(t, l.temporary[0].recovered)

	l.keepRecoveredFrom(0, false)
	assert.Empty(t, l.temporary)
	require.Len(t, l.permanent(), 1)
	assert.Equal(t, "recovered", l.permanent()[0].Message)
}

// Frame operations never shrink the permanent list. Only absorb does, by folding
// singles into one composite.
func TestLedgerPermanentIsMonotonic(t *testing.T) {
	var l ledger
	ops := []func(){
		func() { l.add(diagAt("p", 1, 1), false, false) },
		func() { l.add(diagAt("t", 1, 2), true, false) },
		func() { l.add(diagAt("r", 1, 3), true, true) },
		func() { l.dropFrom(0) },
		func() { l.promoteFrom(1) },
		func() { l.keepRecoveredFrom(0, false) },
		func() { l.clearTemporary() },
		func() { l.settle() },
		func() {
			if d := l.absorb("folded", lexer.Token{}, true); d != nil {
				l.add(d, false, false)
			}
		},
	}

	last := 0
	for round := 0; round < 3; round++ {
		for i, op := range ops {
			op()
			n := len(l.permanent())
			if i == len(ops)-1 {
				// absorb replaces singles with one composite
				last = n
				continue
			}
			assert.GreaterOrEqual(t, n, last, "op %d in round %d", i, round)
			last = n
		}
	}
}

func TestDiagnosticError(t *testing.T) {
	d := &Diagnostic{
		Message: "Missing semi-colon",
		Token: lexer.Token{
			Kind:    lexer.TokenIdent,
			Literal: "b",
			Span:    lexer.Span{Start: lexer.Position{File: "f.cx", Line: 1, Column: 9}},
		},
	}
	assert.Equal(t, `f.cx:1:9: Missing semi-colon near "b"`, d.Error())

	eof := &Diagnostic{Message: "unexpected", Token: lexer.Token{Kind: lexer.TokenEOF}}
	assert.Contains(t, eof.Error(), "at end of input")
	assert.False(t, d.Composite())
}
