package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/radin/cx/parser"
	"github.com/dhamidi/radin/format"
	"github.com/dhamidi/radin/project"
)

func newParseCmd(a *app) *cobra.Command {
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its tree and diagnostics",
		Long:  `Parse a single file, or standard input when the file is "-".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			var data []byte
			var err error
			if filename == "-" {
				filename = "<stdin>"
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(filename)
			}
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}

			opts := append([]parser.Option{parser.WithFile(filename)}, a.cfg.ParserOptions()...)
			p := parser.NewFromBytes(data, opts...)
			result := project.Result{
				File: &project.File{Path: filename, Rel: filename},
				Tree: p.Parse(),
			}
			result.Diagnostics = p.Errors()

			enc, err := format.New(a.cfg.Output.Format, cmd.OutOrStdout(), format.Options{
				Tree:      true,
				Positions: includePositions,
				Color:     a.cfg.Output.Color,
			})
			if err != nil {
				return err
			}
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return diagnosticsError(len(result.Diagnostics))
		},
	}

	addOutputFlags(cmd)
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include token positions in the text tree")

	return cmd
}
