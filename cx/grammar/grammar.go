// Package grammar carries the cx grammar as an EBNF document. The parser is written by
// hand; the document describes the language it accepts and is verified in tests and by
// `radin grammar`.
package grammar

import (
	"bytes"
	_ "embed"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

//go:embed cx.ebnf
var Source []byte

// Start is the production every cx file derives from.
const Start = "Program"

// Load parses and verifies the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Parse("cx.ebnf", Source, Start)
}

// Parse reads an EBNF grammar. When start is not empty the grammar is also verified:
// every production must be defined and reachable from start.
func Parse(filename string, src []byte, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	if start != "" {
		if err := ebnf.Verify(g, start); err != nil {
			return g, err
		}
	}
	return g, nil
}

// Errors flattens the error lists returned by Parse.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}

// Nonterminals returns the sorted names of the syntactic productions of g. Lexical
// productions, whose names start in lower case, are left out.
func Nonterminals(g ebnf.Grammar) []string {
	var names []string
	for name := range g {
		r, _ := utf8.DecodeRuneInString(name)
		if unicode.IsUpper(r) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
