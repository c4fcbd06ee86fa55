package exportcmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"refman/src/internal/app"
	"refman/src/internal/bibtex"
)

// Entry is the structured form of one record. Only set fields are included.
type Entry struct {
	Kind    string            `yaml:"kind" json:"kind" toml:"kind"`
	CiteKey string            `yaml:"cite_key" json:"cite_key" toml:"cite_key"`
	Fields  map[string]string `yaml:"fields" json:"fields" toml:"fields"`
}

// Document wraps the entries so every format has a top-level table.
type Document struct {
	Entries []Entry `yaml:"entries" json:"entries" toml:"entries"`
}

// Formats lists the accepted --format values.
var Formats = []string{"yaml", "json", "toml"}

// New returns the export command.
func New(a *app.App) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a library as YAML, JSON or TOML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.Load(a.Path(args))
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := Encode(&buf, format, ToDocument(doc)); err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := atomic.WriteFile(out, &buf); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: "+strings.Join(Formats, ", "))
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

// ToDocument converts a collection, keeping collection order.
func ToDocument(c *bibtex.Collection) Document {
	d := Document{Entries: make([]Entry, 0, c.Len())}
	for _, r := range c.Records() {
		e := Entry{Kind: string(r.Kind()), CiteKey: r.CiteKey, Fields: map[string]string{}}
		for _, f := range r.Fields() {
			if f.Value != "" {
				e.Fields[f.Key] = f.Value
			}
		}
		d.Entries = append(d.Entries, e)
	}
	return d
}

// Encode writes d to w in the named format.
func Encode(w io.Writer, format string, d Document) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "toml":
		b, err := toml.Marshal(d)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unknown format %q (want %s)", format, strings.Join(Formats, ", "))
}
