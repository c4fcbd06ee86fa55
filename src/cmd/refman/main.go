package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"refman/src/cmd/refman/shellcmd"
	"refman/src/internal/app"
	"refman/src/internal/bibtex"
	"refman/src/internal/config"
	"refman/src/internal/logx"
)

// newRootCmd wires the root command around a shared App. Running it without
// a subcommand starts the interactive shell.
func newRootCmd(a *app.App) *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:           "refman [file]",
		Short:         "Manage a BibTeX bibliography from the command line",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return a.Init(cfg, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return shellcmd.Run(cmd, a, args)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default "+config.FileName+" or ~/.config/refman/config.json)")
	pf.String("log-level", logx.DefaultLevel, "log level: debug, info, warn, error, none")
	pf.String("collision", bibtex.SuffixOnce.String(), "cite key collision policy: suffix or resolve")
	pf.String("history", "", "file to keep interactive prompt history in")

	root.AddCommand(
		newShellCmd(a),
		newAddCmd(a),
		newFindCmd(a),
		newFormatCmd(a),
		newExportCmd(a),
		newKindsCmd(),
	)
	return root
}

func execute() error {
	return newRootCmd(app.New()).Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
