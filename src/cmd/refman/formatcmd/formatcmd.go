package formatcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"refman/src/internal/app"
	"refman/src/internal/store"
)

// New returns the format command, which rewrites a library in the canonical
// layout.
func New(a *app.App) *cobra.Command {
	var out string
	var force bool
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Rewrite a library file in canonical layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.Path(args)
			doc, err := store.Load(path, a.Options()...)
			if err != nil {
				// rewriting would silently drop the entries that failed to parse
				if !store.IsSkipped(err) || !force {
					return err
				}
			}
			target := out
			if target == "" {
				target = path
			}
			if err := a.Save(target, doc); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "formatted %s (%d entries)\n", target, doc.Len())
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to this file instead of rewriting in place")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite even if some entries cannot be parsed (they are dropped)")
	return cmd
}
