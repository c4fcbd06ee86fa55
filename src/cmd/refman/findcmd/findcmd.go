package findcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"refman/src/internal/app"
	"refman/src/internal/bibtex"
	"refman/src/internal/names"
)

// New returns the find command for author/title substring searches.
func New(a *app.App) *cobra.Command {
	var authorQ, titleQ string
	var asTable bool
	cmd := &cobra.Command{
		Use:   "find [file]",
		Short: "Find entries whose author or title contains a string (case sensitive)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if authorQ == "" && titleQ == "" {
				return fmt.Errorf("provide --author or --title")
			}
			doc, err := a.Load(a.Path(args))
			if err != nil {
				return err
			}
			matches := doc.Filter(Match(authorQ, titleQ))
			var found []*bibtex.Record
			for r := range matches {
				found = append(found, r)
			}
			if asTable {
				renderTable(cmd.OutOrStdout(), found)
				return nil
			}
			return renderBib(cmd.OutOrStdout(), found)
		},
	}
	cmd.Flags().StringVar(&authorQ, "author", "", "substring of the author field")
	cmd.Flags().StringVar(&titleQ, "title", "", "substring of the title field")
	cmd.Flags().BoolVar(&asTable, "table", false, "print a summary table instead of BibTeX")
	return cmd
}

// Match returns a predicate requiring every non-empty query to be a
// substring of its field.
func Match(authorQ, titleQ string) func(*bibtex.Record) bool {
	return func(r *bibtex.Record) bool {
		return contains(r, "author", authorQ) && contains(r, "title", titleQ)
	}
}

func contains(r *bibtex.Record, key, q string) bool {
	if q == "" {
		return true
	}
	v, ok := r.Get(key)
	return ok && strings.Contains(v, q)
}

func renderBib(w io.Writer, rs []*bibtex.Record) error {
	for i, r := range rs {
		sep := "\n"
		if i == len(rs)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintln(w, r.String()+sep); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, rs []*bibtex.Record) {
	x := table.NewWriter()
	x.AppendHeader(table.Row{"cite key", "kind", "title", "author", "year"})
	for _, r := range rs {
		title, _ := r.Get("title")
		author, _ := r.Get("author")
		year, _ := r.Get("year")
		x.AppendRow(table.Row{r.CiteKey, r.Kind(), title, names.Short(author), year})
	}
	x.AppendFooter(table.Row{"", "", "", "matches", len(rs)})
	_, _ = io.WriteString(w, x.Render()+"\n")
}
