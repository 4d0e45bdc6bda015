package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/radin/project"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Check source files again whenever one changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load(a.cfg.Project, args...)
			if err != nil {
				return err
			}
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			recheck := func() {
				if err := a.check(proj, out, errOut); err != nil {
					fmt.Fprintln(errOut, err)
				}
			}
			recheck()

			w, err := project.NewFileWatcher(proj, func(c project.Change) {
				verb := "changed"
				if c.Removed {
					verb = "removed"
				}
				fmt.Fprintf(errOut, "%s %s\n", c.Path, verb)
				recheck()
			})
			if err != nil {
				return fmt.Errorf("watch %s: %w", proj.RootDir, err)
			}
			w.Start()
			defer w.Stop()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	addOutputFlags(cmd)

	return cmd
}
