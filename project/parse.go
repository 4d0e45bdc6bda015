package project

import (
	"fmt"
	"os"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/cx/parser"
)

// Result is the outcome of parsing one project file.
type Result struct {
	File *File
	// Tree is nil when the file nests deeper than the parser allows.
	Tree        *parser.CategoryNode
	Diagnostics []*parser.Diagnostic
}

// ParseAll parses every file in include order with a single parser, so type names
// declared by a header are known in the files that include it.
func (p *Project) ParseAll(opts ...parser.Option) ([]Result, error) {
	var prs *parser.Parser
	results := make([]Result, 0, len(p.Files))
	for _, f := range p.FilesInOrder() {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Path, err)
		}
		src := lexer.NewStream(data, f.Rel)
		if prs == nil {
			prs = parser.New(src, opts...)
		} else {
			prs.Feed(src)
		}
		tree := prs.Parse()
		results = append(results, Result{File: f, Tree: tree, Diagnostics: prs.Errors()})
		log.Debugf("%s: %d diagnostics", f.Rel, len(prs.Errors()))
	}
	return results, nil
}

// ErrorCount sums the diagnostics over results.
func ErrorCount(results []Result) int {
	n := 0
	for _, r := range results {
		n += len(r.Diagnostics)
	}
	return n
}
