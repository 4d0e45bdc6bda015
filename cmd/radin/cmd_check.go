package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/radin/format"
	"github.com/dhamidi/radin/project"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse every source file and report diagnostics",
		Long: `Parse the source files found under each path, headers before the files that
include them, and print their diagnostics. Exits non-zero when any file has errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load(a.cfg.Project, args...)
			if err != nil {
				return err
			}
			return a.check(proj, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addOutputFlags(cmd)

	return cmd
}

func (a *app) check(proj *project.Project, out, summary io.Writer) error {
	results, err := proj.ParseAll(a.cfg.ParserOptions()...)
	if err != nil {
		return err
	}

	enc, err := format.New(a.cfg.Output.Format, out, format.Options{Color: a.cfg.Output.Color})
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode %s: %w", r.File.Rel, err)
		}
	}

	n := project.ErrorCount(results)
	fmt.Fprintf(summary, "%d files checked, %d diagnostics\n", len(results), n)
	return diagnosticsError(n)
}
