package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/radin/config"
)

const version = "0.1.0"

// app carries state shared by the subcommands once the root command has loaded the
// configuration.
type app struct {
	configFile string
	verbosity  int
	cfg        config.Config
}

func main() {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "radin",
		Short:        "Parse and check cx sources",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(a.verbosity, nil)
			cfg, err := config.LoadDefault(a.configFile, cmd.Flags().Changed("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			return a.applyFlags(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", config.DefaultFile, "configuration file")
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "log more (repeat for debug output)")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newReplCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newGrammarCmd(a))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addOutputFlags registers the flags that override the [Output] and [Parser] sections.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "output format (text, json, table)")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	addParserFlags(cmd)
}

func addParserFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("types", nil, "predeclared type names, added to the configured ones")
	cmd.Flags().Int("max-depth", 0, "maximum rule nesting depth")
	cmd.Flags().Bool("trace", false, "trace speculative attempts to stderr")
}

func (a *app) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		a.cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("no-color") {
		noColor, _ := flags.GetBool("no-color")
		a.cfg.Output.Color = !noColor
	}
	if flags.Changed("types") {
		types, err := flags.GetStringSlice("types")
		if err != nil {
			return err
		}
		a.cfg.Parser.Types = append(a.cfg.Parser.Types, types...)
	}
	if flags.Changed("max-depth") {
		a.cfg.Parser.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if flags.Changed("trace") {
		a.cfg.Parser.Trace, _ = flags.GetBool("trace")
	}
	return nil
}

func diagnosticsError(n int) error {
	switch n {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("1 syntax error")
	default:
		return fmt.Errorf("%d syntax errors", n)
	}
}
