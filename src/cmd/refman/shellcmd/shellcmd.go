package shellcmd

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"refman/src/internal/app"
	"refman/src/internal/bibtex"
	"refman/src/internal/config"
	"refman/src/internal/prompt"
	"refman/src/internal/schema"
)

const (
	msgUnknown   = "Unknown - exiting safely"
	promptMarker = "> "
)

// New returns the "shell" command. The root command runs the same loop when
// invoked without a subcommand.
func New(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [file]",
		Short: "Interactively add and find entries, then optionally save",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, a, args)
		},
	}
}

// Run starts the interactive session on the command's input and output.
// With one argument the file is loaded first and becomes the save location.
func Run(cmd *cobra.Command, a *app.App, args []string) error {
	out := cmd.OutOrStdout()
	s := &Shell{App: a, Out: out, Doc: bibtex.NewCollection(a.Options()...)}

	if in := cmd.InOrStdin(); in == os.Stdin {
		term := prompt.NewTerminal(config.ExpandHome(a.Config.History), completions(), a.Logger)
		defer term.Close()
		s.Prompter = term
	} else {
		s.Prompter = prompt.NewReader(in, out)
	}

	fmt.Fprintln(out, "\nRefMan - an interactive commandline BibTeX management tool")
	if len(args) == 1 {
		doc, err := a.Load(args[0])
		if err != nil {
			return err
		}
		s.Doc = doc
		s.Path = args[0]
		fmt.Fprintln(out, "\nLoaded: "+args[0])
	}
	return s.Run()
}

func completions() []string {
	words := []string{"add", "find", "q"}
	for _, k := range schema.Kinds() {
		words = append(words, string(k))
	}
	return words
}

// Shell is the interactive mode loop over one document.
type Shell struct {
	App      *app.App
	Prompter prompt.Prompter
	Out      io.Writer
	Doc      *bibtex.Collection
	// Path is the save location; empty until the user provides one.
	Path string
}

// ask prints the heading lines and reads one answer, asking again while
// the answer is empty.
func (s *Shell) ask(heading string) (string, error) {
	for {
		fmt.Fprintln(s.Out, heading)
		v, err := s.Prompter.Prompt(promptMarker)
		if err != nil || v != "" {
			return v, err
		}
	}
}

// Run drives mode selection until the user quits, then offers to save.
func (s *Shell) Run() error {
	if err := s.modeLoop(); err != nil && !isEnd(err) {
		return err
	}
	return s.offerSave()
}

func (s *Shell) modeLoop() error {
	for {
		mode, err := s.ask("\nMODE SELECT\nMode ('q' to quit):")
		if err != nil {
			return err
		}
		switch mode {
		case "q":
			return nil
		case "add":
			err = s.addMode()
		case "find":
			err = s.findMode()
		default:
			fmt.Fprintln(s.Out, msgUnknown)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) addMode() error {
	for {
		kind, err := s.ask("\nADD MODE\nEntry type ('q' to quit):")
		if err != nil {
			return err
		}
		if kind == "q" {
			return nil
		}
		r, err := prompt.Build(s.Prompter, s.Out, s.Doc, kind)
		if errors.Is(err, bibtex.ErrUnknownKind) {
			fmt.Fprintf(s.Out, "%v (known kinds: %s)\n", err, schema.KindList())
			continue
		}
		if err != nil {
			return err
		}
		s.Doc.Insert(r)
		level.Debug(s.App.Logger).Log("msg", "added entry", "kind", r.Kind(), "cite_key", r.CiteKey)
	}
}

func (s *Shell) findMode() error {
	for {
		typ, err := s.ask("\nFIND MODE\nFind type ('q' to quit):")
		if err != nil {
			return err
		}
		switch typ {
		case "q":
			return nil
		case "h":
			fmt.Fprintln(s.Out, "Find Mode - available Find types:")
			fmt.Fprintln(s.Out, "a: author, returns all entries with a given author")
			fmt.Fprintln(s.Out, "t: title, returns all entries whose title contains given string")
		case "a":
			if err := s.printMatches("Author:", s.Doc.FindByAuthor); err != nil {
				return err
			}
		case "t":
			if err := s.printMatches("Title:", s.Doc.FindByTitle); err != nil {
				return err
			}
		default:
			fmt.Fprintln(s.Out, msgUnknown)
			return nil
		}
	}
}

func (s *Shell) printMatches(heading string, find func(string) iter.Seq[*bibtex.Record]) error {
	fmt.Fprintln(s.Out, heading)
	q, err := s.Prompter.Prompt(promptMarker)
	if err != nil {
		return err
	}
	for r := range find(q) {
		fmt.Fprintln(s.Out, "\n"+r.String())
	}
	return nil
}

func (s *Shell) offerSave() error {
	fmt.Fprintln(s.Out, "Save changes? (y/N):")
	ok, err := prompt.Confirm(s.Prompter, promptMarker)
	if err != nil || !ok {
		return nil
	}
	for s.Path == "" {
		fmt.Fprintln(s.Out, "No save location known\nSave as:")
		p, err := s.Prompter.Prompt(promptMarker)
		if err != nil {
			if isEnd(err) {
				return nil
			}
			return err
		}
		s.Path = p
	}
	return s.App.Save(s.Path, s.Doc)
}

// isEnd reports whether err means the user closed or cancelled input.
func isEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrAborted)
}
