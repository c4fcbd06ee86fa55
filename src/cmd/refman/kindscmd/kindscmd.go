package kindscmd

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"refman/src/internal/schema"
)

// New returns the kinds command listing entry kinds and their fields.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [kind]",
		Short: "List entry kinds with their required and optional fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := schema.Kinds()
			if len(args) == 1 {
				k, err := schema.ParseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []schema.Kind{k}
			}
			Render(cmd.OutOrStdout(), kinds)
			return nil
		},
	}
}

// Render writes one row per kind.
func Render(w io.Writer, kinds []schema.Kind) {
	x := table.NewWriter()
	x.AppendHeader(table.Row{"kind", "required", "optional"})
	for _, k := range kinds {
		req := strings.Join(k.Required(), ", ")
		if req == "" {
			req = "-"
		}
		x.AppendRow(table.Row{k, req, strings.Join(k.Optional(), ", ")})
	}
	_, _ = io.WriteString(w, x.Render()+"\n")
}
