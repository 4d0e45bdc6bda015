package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/cx/parser"
	"github.com/dhamidi/radin/project"
)

// LineEncoder prints the tree as an indented outline followed by one line per
// diagnostic, compiler style.
type LineEncoder struct {
	w      io.Writer
	opts   Options
	result project.Result

	file    *color.Color
	message *color.Color
	related *color.Color
}

func NewLineEncoder(w io.Writer, opts Options) *LineEncoder {
	e := &LineEncoder{
		w:       w,
		opts:    opts,
		file:    color.New(color.Bold),
		message: color.New(color.FgRed),
		related: color.New(color.FgYellow),
	}
	if !opts.Color {
		e.file.DisableColor()
		e.message.DisableColor()
		e.related.DisableColor()
	}
	return e
}

func (e *LineEncoder) Encode(r project.Result) error {
	e.result = r
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.result

	if e.opts.Tree {
		switch {
		case r.Tree == nil:
			sb.WriteString("(no tree)\n")
		case e.opts.Positions:
			sb.WriteString(r.Tree.StringWithPositions())
		default:
			sb.WriteString(r.Tree.String())
		}
	}

	for _, d := range r.Diagnostics {
		e.writeDiagnostic(&sb, d)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeDiagnostic(sb *strings.Builder, d *parser.Diagnostic) {
	fmt.Fprintf(sb, "%s %s%s\n",
		e.file.Sprintf("%s:", d.Pos()),
		e.message.Sprint(d.Message),
		near(d.Token),
	)
	for _, r := range d.Related {
		fmt.Fprintf(sb, "\t%s %s%s\n",
			e.file.Sprintf("%s:", r.Token.Span.Start),
			e.related.Sprint(r.Message),
			near(r.Token),
		)
	}
}

func near(tok lexer.Token) string {
	if tok.Kind == lexer.TokenEOF {
		return " at end of input"
	}
	if tok.Literal == "" {
		return ""
	}
	return fmt.Sprintf(" near %q", tok.Literal)
}
