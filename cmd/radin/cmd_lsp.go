package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/radin/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := lsp.NewServer(version, a.cfg.ParserOptions()...)
			if err != nil {
				return err
			}
			return server.RunStdio()
		},
	}

	addParserFlags(cmd)

	return cmd
}
