package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/radin/cx/lexer"
)

// Diagnostic is a syntax error. A composite diagnostic carries the candidate errors it
// replaced in Related, ordered by source position.
type Diagnostic struct {
	Message string
	Token   lexer.Token
	Related []Related
}

type Related struct {
	Message string
	Token   lexer.Token
}

func (d *Diagnostic) Composite() bool {
	return len(d.Related) > 0
}

func (d *Diagnostic) Pos() lexer.Position {
	return d.Token.Span.Start
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Token.Span.Start, d.Message)
	if d.Token.Kind == lexer.TokenEOF {
		b.WriteString(" at end of input")
	} else if d.Token.Literal != "" {
		fmt.Fprintf(&b, " near %q", d.Token.Literal)
	}
	for _, r := range d.Related {
		fmt.Fprintf(&b, "\n\t%s: %s", r.Token.Span.Start, r.Message)
	}
	return b.String()
}

type entry struct {
	diag *Diagnostic
	// recovered entries come from panic-mode recovery inside a branch that kept parsing;
	// they survive that branch's success.
	recovered bool
}

// ledger classifies diagnostics. temporary holds errors raised inside speculative frames;
// pending holds permanent errors of the construct being parsed and settled holds permanent
// errors of constructs already finished.
type ledger struct {
	temporary []entry
	pending   []*Diagnostic
	settled   []*Diagnostic
}

func (l *ledger) add(d *Diagnostic, speculative, recovered bool) {
	if speculative {
		l.temporary = append(l.temporary, entry{diag: d, recovered: recovered})
		return
	}
	l.pending = append(l.pending, d)
}

func (l *ledger) mark() int {
	return len(l.temporary)
}

// promoteAll moves every temporary error to the permanent list.
func (l *ledger) promoteAll() {
	l.promoteFrom(0)
}

func (l *ledger) promoteFrom(mark int) {
	mark = min(mark, len(l.temporary))
	for _, e := range l.temporary[mark:] {
		l.pending = append(l.pending, e.diag)
	}
	l.temporary = l.temporary[:mark]
}

// dropFrom discards temporary errors raised since mark.
func (l *ledger) dropFrom(mark int) {
	mark = min(mark, len(l.temporary))
	l.temporary = l.temporary[:mark]
}

// keepRecoveredFrom discards the exploratory errors raised since mark and keeps recovered
// ones. Kept errors become permanent unless the enclosing context is still speculative.
func (l *ledger) keepRecoveredFrom(mark int, speculative bool) {
	mark = min(mark, len(l.temporary))
	kept := l.temporary[:mark]
	for _, e := range l.temporary[mark:] {
		if !e.recovered {
			continue
		}
		if speculative {
			kept = append(kept, e)
		} else {
			l.pending = append(l.pending, e.diag)
		}
	}
	l.temporary = kept
}

func (l *ledger) clearTemporary() {
	l.temporary = nil
}

// settle marks the pending errors as belonging to a finished construct, so that later
// aggregation leaves them alone.
func (l *ledger) settle() {
	l.settled = append(l.settled, l.pending...)
	l.pending = nil
}

// absorb removes the pending single-location errors, and the temporary ones when
// includeTemps is set, and returns them as a composite diagnostic. It returns nil when
// there was nothing to absorb.
func (l *ledger) absorb(message string, tok lexer.Token, includeTemps bool) *Diagnostic {
	var singles []*Diagnostic
	var keep []*Diagnostic
	for _, d := range l.pending {
		if d.Composite() {
			keep = append(keep, d)
			continue
		}
		singles = append(singles, d)
	}
	l.pending = keep

	if includeTemps {
		var keepTemps []entry
		for _, e := range l.temporary {
			if e.diag.Composite() {
				keepTemps = append(keepTemps, e)
				continue
			}
			singles = append(singles, e.diag)
		}
		l.temporary = keepTemps
	}

	if len(singles) == 0 {
		return nil
	}

	sort.SliceStable(singles, func(i, j int) bool {
		return singles[i].Pos().Before(singles[j].Pos())
	})
	d := &Diagnostic{Message: message, Token: tok}
	for _, s := range singles {
		d.Related = append(d.Related, Related{Message: s.Message, Token: s.Token})
	}
	return d
}

func (l *ledger) permanent() []*Diagnostic {
	out := make([]*Diagnostic, 0, len(l.settled)+len(l.pending))
	out = append(out, l.settled...)
	return append(out, l.pending...)
}

func (l *ledger) reset() {
	*l = ledger{}
}
