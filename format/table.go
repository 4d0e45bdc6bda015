package format

import (
	"bytes"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/project"
)

// TableEncoder lists diagnostics in a table, one row per diagnostic and one per
// related candidate.
type TableEncoder struct {
	w      io.Writer
	result project.Result
}

func NewTableEncoder(w io.Writer) *TableEncoder {
	return &TableEncoder{w: w}
}

func (e *TableEncoder) Encode(r project.Result) error {
	e.result = r
	return write(e.w, e)
}

func (e *TableEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	r := e.result
	if len(r.Diagnostics) == 0 {
		return nil, nil
	}

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Line", "Col", "Message", "Near"})
	table.SetAutoWrapText(false)
	for _, d := range r.Diagnostics {
		table.Append(row(d.Token.Span.Start, d.Message, d.Token))
		for _, rel := range d.Related {
			table.Append(row(rel.Token.Span.Start, "  "+rel.Message, rel.Token))
		}
	}
	table.Render()
	return buf.Bytes(), nil
}

func row(pos lexer.Position, msg string, tok lexer.Token) []string {
	nearText := tok.Literal
	if tok.Kind == lexer.TokenEOF {
		nearText = "EOF"
	}
	return []string{pos.File, strconv.Itoa(pos.Line), strconv.Itoa(pos.Column), msg, nearText}
}

// WriteTokens lists tokens with their position and kind.
func WriteTokens(w io.Writer, tokens []lexer.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pos", "Kind", "Literal"})
	table.SetAutoWrapText(false)
	for _, tok := range tokens {
		table.Append([]string{tok.Span.Start.String(), tok.Kind.String(), strconv.Quote(tok.Literal)})
	}
	table.Render()
}
