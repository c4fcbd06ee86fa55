package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"refman/src/internal/bibtex"
)

// ErrAborted is returned when the user cancels a prompt (Ctrl-C).
var ErrAborted = errors.New("prompt aborted")

// Prompter reads one line of user input after showing label. It returns
// io.EOF once input is exhausted.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Reader prompts on an io.Writer and reads answers line by line from an
// io.Reader. It backs non-interactive use and tests.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader returns a Reader over in, echoing labels to out.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

func (r *Reader) Prompt(label string) (string, error) {
	if _, err := fmt.Fprint(r.out, label); err != nil {
		return "", err
	}
	s, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimRight(s, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// CiteKey asks until it gets a non-empty key that c does not already hold.
func CiteKey(p Prompter, out io.Writer, c *bibtex.Collection) (string, error) {
	for {
		key, err := p.Prompt("Cite key: ")
		if err != nil {
			return "", err
		}
		if key == "" {
			continue
		}
		if c != nil && c.HasCiteKey(key) {
			fmt.Fprintln(out, "Cite key already exists in database")
			continue
		}
		return key, nil
	}
}

// Fill asks for every field of r in schema order. Required fields are asked
// again until the answer is non-empty; optional fields accept an empty line.
func Fill(p Prompter, out io.Writer, r *bibtex.Record) error {
	inOptional := false
	for i, q := range r.Prompts() {
		switch {
		case i == 0 && q.Required:
			fmt.Fprintln(out, "\nRequired fields:")
		case !q.Required && !inOptional:
			fmt.Fprintln(out, "\nOptional fields:")
			inOptional = true
		}
		v, err := p.Prompt(q.Key + ": ")
		for err == nil && q.Required && v == "" {
			v, err = p.Prompt(q.Key + ": ")
		}
		if err != nil {
			return fmt.Errorf("%s: %w", q.Key, err)
		}
		r.Set(q.Key, v)
	}
	return nil
}

// Build creates a record of kind and fills its cite key and fields
// interactively. The record is not inserted into c.
func Build(p Prompter, out io.Writer, c *bibtex.Collection, kind string) (*bibtex.Record, error) {
	r, err := bibtex.New(kind)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(out, r.Kind())
	key, err := CiteKey(p, out, c)
	if err != nil {
		return nil, err
	}
	r.CiteKey = key
	if err := Fill(p, out, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Confirm asks a y/N question. Only an answer of exactly "y" agrees.
func Confirm(p Prompter, label string) (bool, error) {
	ans, err := p.Prompt(label)
	if err != nil {
		return false, err
	}
	return ans == "y", nil
}
