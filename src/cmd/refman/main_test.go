package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refman/src/internal/app"
)

// execCmd runs the root command with args and captures stdout/stderr.
func execCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	root := newRootCmd(app.New())
	buf := new(bytes.Buffer)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestExecuteHelp(t *testing.T) {
	out, err := execCmd(t, "", "--help")
	if err != nil {
		t.Fatalf("execute help: %v", err)
	}
	for _, sub := range []string{"add", "find", "format", "export", "kinds", "shell"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("help missing %q:\n%s", sub, out)
		}
	}
}

func TestRootRunsShell(t *testing.T) {
	out, err := execCmd(t, "q\nn\n")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(out, "MODE SELECT") || !strings.Contains(out, "Save changes?") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAddThenFindUsesConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "refs.bib")
	t.Setenv("REFMAN_FILE", lib)
	t.Setenv("REFMAN_LOG_LEVEL", "info")

	input := "knuth1968\nThe Art of Computer Programming\nDonald Knuth\nAddison-Wesley\n1968\n\n\n\n\n\n\n\n"
	out, err := execCmd(t, input, "add", "book")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "msg=\"saved library\"") {
		t.Fatalf("expected info log of the save: %s", out)
	}

	out, err = execCmd(t, "", "find", "--author", "Knuth")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out, "@book{knuth1968,") {
		t.Fatalf("expected match: %s", out)
	}
}

func TestInvalidCollisionFlag(t *testing.T) {
	if _, err := execCmd(t, "", "--collision", "loop", "kinds"); err == nil {
		t.Fatalf("expected error for invalid collision policy")
	}
}

func TestTooManyArgs(t *testing.T) {
	if _, err := execCmd(t, "", "a.bib", "b.bib"); err == nil {
		t.Fatalf("expected error for two files")
	}
}
