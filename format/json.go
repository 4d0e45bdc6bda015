package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/cx/parser"
	"github.com/dhamidi/radin/project"
)

type JSONEncoder struct {
	w      io.Writer
	opts   Options
	result project.Result
}

func NewJSONEncoder(w io.Writer, opts Options) *JSONEncoder {
	return &JSONEncoder{w: w, opts: opts}
}

func (e *JSONEncoder) Encode(r project.Result) error {
	e.result = r
	if err := write(e.w, e); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildResultData(), "", "  ")
}

type jsonResult struct {
	File        string               `json:"file"`
	Tree        *parser.CategoryNode `json:"tree,omitempty"`
	Diagnostics []jsonDiagnostic     `json:"diagnostics"`
}

type jsonDiagnostic struct {
	Message string           `json:"message"`
	Line    int              `json:"line"`
	Column  int              `json:"column"`
	Near    string           `json:"near,omitempty"`
	Related []jsonDiagnostic `json:"related,omitempty"`
}

func (e *JSONEncoder) buildResultData() jsonResult {
	r := e.result
	data := jsonResult{Diagnostics: make([]jsonDiagnostic, 0, len(r.Diagnostics))}
	if r.File != nil {
		data.File = r.File.Rel
	}
	if e.opts.Tree {
		data.Tree = r.Tree
	}
	for _, d := range r.Diagnostics {
		jd := diagnosticData(d.Message, d.Token)
		for _, rel := range d.Related {
			jd.Related = append(jd.Related, diagnosticData(rel.Message, rel.Token))
		}
		data.Diagnostics = append(data.Diagnostics, jd)
	}
	return data
}

func diagnosticData(msg string, tok lexer.Token) jsonDiagnostic {
	d := jsonDiagnostic{
		Message: msg,
		Line:    tok.Span.Start.Line,
		Column:  tok.Span.Start.Column,
	}
	if tok.Kind != lexer.TokenEOF {
		d.Near = tok.Literal
	}
	return d
}
