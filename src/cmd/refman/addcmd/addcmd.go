package addcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"refman/src/internal/app"
	"refman/src/internal/config"
	"refman/src/internal/prompt"
	"refman/src/internal/schema"
)

const msgWrote = "wrote %s (%s)\n"

// New returns the "add" command: prompt for one entry of the given kind and
// save it into the library file, creating the file when needed.
func New(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:       "add <kind> [file]",
		Short:     "Add one entry by answering prompts",
		Long:      "Add one entry by answering prompts. Known kinds: " + schema.KindList(),
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := schema.ParseKind(args[0]); err != nil {
				return err
			}
			path := a.Path(args[1:])
			doc, err := a.LoadOrEmpty(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p, done := prompter(cmd.InOrStdin(), out, a)
			defer done()

			r, err := prompt.Build(p, out, doc, args[0])
			if err != nil {
				return err
			}
			key := doc.Insert(r)
			if err := a.Save(path, doc); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, msgWrote, path, key)
			return err
		},
	}
}

func prompter(in io.Reader, out io.Writer, a *app.App) (prompt.Prompter, func()) {
	if in == os.Stdin {
		t := prompt.NewTerminal(config.ExpandHome(a.Config.History), nil, a.Logger)
		return t, func() { _ = t.Close() }
	}
	return prompt.NewReader(in, out), func() {}
}

func kindNames() []string {
	var out []string
	for _, k := range schema.Kinds() {
		out = append(out, string(k))
	}
	return out
}
