package findcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refman/src/internal/app"
)

const library = `@book{knuth1968,
    title={The Art of Computer Programming},
    author={Donald Knuth},
    publisher={Addison-Wesley},
    year={1968}
}

@article{turing1936,
    title={On Computable Numbers},
    author={Alan Turing},
    journal={Proc. LMS},
    year={1936}
}

@techreport{knuth1977,
    title={A Generalization of Dijkstra's Algorithm},
    author={Donald E. Knuth and J. Doe},
    institution={Stanford University},
    year={1977}
}

`

func execFind(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.bib")
	if err := os.WriteFile(path, []byte(library), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := New(app.New())
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, path))
	err := cmd.Execute()
	return buf.String(), err
}

func TestFindByAuthor(t *testing.T) {
	out, err := execFind(t, "--author", "Knuth")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out, "@book{knuth1968,") || !strings.Contains(out, "@techreport{knuth1977,") {
		t.Fatalf("missing matches: %s", out)
	}
	if strings.Contains(out, "turing1936") {
		t.Fatalf("unexpected match: %s", out)
	}
}

func TestFindAuthorAndTitle(t *testing.T) {
	out, err := execFind(t, "--author", "Knuth", "--title", "Art")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out, "knuth1968") || strings.Contains(out, "knuth1977") {
		t.Fatalf("expected only knuth1968: %s", out)
	}
}

func TestFindTable(t *testing.T) {
	out, err := execFind(t, "--author", "Knuth", "--table")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	for _, want := range []string{"CITE KEY", "knuth1968", "Knuth, D. E. et al.", "MATCHES"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFindRequiresQuery(t *testing.T) {
	if _, err := execFind(t); err == nil {
		t.Fatalf("expected error without a query")
	}
}

func TestMatchCaseSensitive(t *testing.T) {
	out, err := execFind(t, "--author", "knuth")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if strings.Contains(out, "@") {
		t.Fatalf("matching is case sensitive: %s", out)
	}
}
