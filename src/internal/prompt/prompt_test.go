package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"refman/src/internal/bibtex"
)

func TestReaderPrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewReader(strings.NewReader("one\r\ntwo\nlast"), &out)
	for _, want := range []string{"one", "two", "last"} {
		got, err := p.Prompt("> ")
		if err != nil || got != want {
			t.Fatalf("Prompt=%q,%v want %q", got, err, want)
		}
	}
	if _, err := p.Prompt("> "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if out.String() != "> > > > " {
		t.Fatalf("labels not echoed: %q", out.String())
	}
}

func TestBuildRepromptsRequiredAndDuplicateKey(t *testing.T) {
	c := bibtex.NewCollection()
	existing, _ := bibtex.New("misc")
	existing.CiteKey = "taken"
	c.Insert(existing)

	input := strings.Join([]string{
		"",         // empty cite key
		"taken",    // duplicate
		"turing36", // accepted
		"",         // empty required title
		"On Computable Numbers",
		"Alan Turing",
		"Proc. LMS",
		"1936",
		"42", "", "", "", "", "", // optional
	}, "\n") + "\n"
	var out bytes.Buffer
	r, err := Build(NewReader(strings.NewReader(input), &out), &out, c, "article")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if r.CiteKey != "turing36" {
		t.Fatalf("cite key %q", r.CiteKey)
	}
	if v, _ := r.Get("title"); v != "On Computable Numbers" {
		t.Fatalf("title %q", v)
	}
	if v, _ := r.Get("volume"); v != "42" {
		t.Fatalf("volume %q", v)
	}
	if v, _ := r.Get("number"); v != "" {
		t.Fatalf("number %q", v)
	}
	if !strings.Contains(out.String(), "Cite key already exists in database") {
		t.Fatalf("expected duplicate warning: %s", out.String())
	}
	if !strings.Contains(out.String(), "Required fields:") || !strings.Contains(out.String(), "Optional fields:") {
		t.Fatalf("expected section headers: %s", out.String())
	}
	if c.Len() != 1 {
		t.Fatalf("Build must not insert")
	}
}

func TestBuildMiscHasNoRequiredSection(t *testing.T) {
	var out bytes.Buffer
	input := "m\n" + strings.Repeat("\n", 7)
	r, err := Build(NewReader(strings.NewReader(input), &out), &out, nil, "misc")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if r.CiteKey != "m" {
		t.Fatalf("cite key %q", r.CiteKey)
	}
	if strings.Contains(out.String(), "Required fields:") {
		t.Fatalf("misc has no required fields: %s", out.String())
	}
}

func TestBuildErrors(t *testing.T) {
	var out bytes.Buffer
	if _, err := Build(NewReader(strings.NewReader(""), &out), &out, nil, "website"); !errors.Is(err, bibtex.ErrUnknownKind) {
		t.Fatalf("expected unknown kind, got %v", err)
	}
	// input ends while a required field is still empty
	_, err := Build(NewReader(strings.NewReader("k\n\n\n"), &out), &out, nil, "book")
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "y\r\n": true, "Y\n": false, "yes\n": false, " y\n": false, "n\n": false, "\n": false} {
		got, err := Confirm(NewReader(strings.NewReader(in), io.Discard), "? ")
		if err != nil || got != want {
			t.Fatalf("Confirm(%q)=%v,%v", in, got, err)
		}
	}
}

func TestTerminalComplete(t *testing.T) {
	term := &Terminal{words: []string{"article", "add", "book"}}
	got := term.complete("a")
	if len(got) != 2 || got[0] != "article" || got[1] != "add" {
		t.Fatalf("complete: %v", got)
	}
}
