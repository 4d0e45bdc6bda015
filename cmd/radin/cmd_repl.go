package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lmorg/readline"
	"github.com/spf13/cobra"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/cx/parser"
	"github.com/dhamidi/radin/format"
	"github.com/dhamidi/radin/project"
)

func newReplCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse declarations and expressions interactively",
		Long: `Each line is parsed as an expression when it is one, and as top-level
declarations otherwise. Type names declared on one line are known on the next.

Commands: :types lists the known type names, :reset forgets them, :quit exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRepl(cmd.OutOrStdout(), a.cfg.Output.Color, a.cfg.ParserOptions()...)

			rline := readline.NewInstance()
			rline.SetPrompt("radin> ")
			rline.TabCompleter = r.complete
			for {
				line, err := rline.Readline()
				if err != nil {
					return nil
				}
				if r.eval(line) {
					return nil
				}
			}
		},
	}

	addParserFlags(cmd)
	cmd.Flags().Bool("no-color", false, "disable colored output")

	return cmd
}

var replCommands = []string{":quit", ":reset", ":types"}

type repl struct {
	out    io.Writer
	parser *parser.Parser
	enc    *format.LineEncoder
	lines  int
}

func newRepl(out io.Writer, color bool, opts ...parser.Option) *repl {
	return &repl{
		out:    out,
		parser: parser.NewFromBytes(nil, opts...),
		enc:    format.NewLineEncoder(out, format.Options{Tree: true, Color: color}),
	}
}

// eval handles one input line and reports whether the session should end.
func (r *repl) eval(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case ":quit", ":q":
		return true
	case ":types":
		fmt.Fprintln(r.out, strings.Join(r.parser.Types().Names(), " "))
		return false
	case ":reset":
		r.parser.Reset()
		fmt.Fprintln(r.out, "type names cleared")
		return false
	}
	if strings.HasPrefix(line, ":") {
		fmt.Fprintf(r.out, "unknown command %s\n", line)
		return false
	}

	r.lines++
	file := fmt.Sprintf("<repl:%d>", r.lines)
	tokens := lexer.Tokenize([]byte(line), file)

	r.parser.Feed(lexer.NewTokenStream(tokens))
	if tree := r.parser.ParseExpression(); tree != nil && r.parser.AtEOF() && len(r.parser.Errors()) == 0 {
		r.print(tree, nil)
		return false
	}

	r.parser.Feed(lexer.NewTokenStream(tokens))
	tree := r.parser.Parse()
	r.print(tree, r.parser.Errors())
	return false
}

func (r *repl) print(tree *parser.CategoryNode, diags []*parser.Diagnostic) {
	if err := r.enc.Encode(project.Result{Tree: tree, Diagnostics: diags}); err != nil {
		fmt.Fprintln(r.out, err)
	}
}

// complete offers commands after a leading colon and known type names otherwise.
func (r *repl) complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])

	candidates := r.parser.Types().Names()
	if strings.HasPrefix(prefix, ":") {
		candidates = replCommands
	}

	var suggestions []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			suggestions = append(suggestions, c[len(prefix):])
		}
	}
	return prefix, suggestions, nil, readline.TabDisplayGrid
}

func isWordRune(r rune) bool {
	return r == '_' || r == ':' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
