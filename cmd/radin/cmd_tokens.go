package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/format"
)

func newTokensCmd(a *app) *cobra.Command {
	var trivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}

			var tokens []lexer.Token
			if trivia {
				l := lexer.NewLexer(data, args[0])
				for {
					tok := l.NextToken()
					tokens = append(tokens, tok)
					if tok.Kind == lexer.TokenEOF {
						break
					}
				}
			} else {
				tokens = lexer.Tokenize(data, args[0])
			}

			format.WriteTokens(cmd.OutOrStdout(), tokens)
			return nil
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", false, "include whitespace, comments and directives")

	return cmd
}
