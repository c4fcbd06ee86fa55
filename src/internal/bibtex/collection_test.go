package bibtex

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func rec(t *testing.T, kind, key string, kv ...string) *Record {
	t.Helper()
	r, err := New(kind)
	require.NoError(t, err)
	r.CiteKey = key
	for i := 0; i+1 < len(kv); i += 2 {
		require.True(t, r.Set(kv[i], kv[i+1]), "set %s", kv[i])
	}
	return r
}

func citeKeys(c *Collection) []string {
	var out []string
	for _, r := range c.Records() {
		out = append(out, r.CiteKey)
	}
	return out
}

func TestInsertSuffixOnce(t *testing.T) {
	c := NewCollection()
	require.Equal(t, "K", c.Insert(rec(t, "misc", "K")))
	require.Equal(t, "K1", c.Insert(rec(t, "misc", "K")))
	// single-shot suffixing: the third insert collides with K1 and is kept
	// as a duplicate
	require.Equal(t, "K1", c.Insert(rec(t, "misc", "K")))
	require.Equal(t, []string{"K", "K1", "K1"}, citeKeys(c))
}

func TestInsertResolve(t *testing.T) {
	c := NewCollection(WithPolicy(Resolve))
	c.Insert(rec(t, "misc", "K"))
	c.Insert(rec(t, "misc", "K"))
	c.Insert(rec(t, "misc", "K"))
	c.Insert(rec(t, "misc", "K1"))
	keys := citeKeys(c)
	require.Equal(t, []string{"K", "K1", "K11", "K111"}, keys)
	seen := map[string]bool{}
	for _, k := range keys {
		require.False(t, seen[k], "duplicate %s", k)
		seen[k] = true
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": SuffixOnce, "suffix": SuffixOnce, "RESOLVE": Resolve, " resolve ": Resolve} {
		p, ok := ParsePolicy(in)
		require.True(t, ok, in)
		require.Equal(t, want, p, in)
	}
	_, ok := ParsePolicy("loop")
	require.False(t, ok)
	require.Equal(t, "resolve", Resolve.String())
	require.Equal(t, "suffix", SuffixOnce.String())
}

func TestFindByAuthor(t *testing.T) {
	c := NewCollection()
	c.Insert(rec(t, "book", "a", "author", "Donald Knuth"))
	c.Insert(rec(t, "book", "b", "author", "Alan Turing"))
	c.Insert(rec(t, "book", "c", "author", "Donald E. Knuth and J. Doe"))

	seq := c.FindByAuthor("Knuth")
	var got []string
	for r := range seq {
		got = append(got, r.CiteKey)
	}
	require.Equal(t, []string{"a", "c"}, got)

	// restartable
	require.Len(t, slices.Collect(seq), 2)

	// case sensitive
	require.Empty(t, slices.Collect(c.FindByAuthor("knuth")))
}

func TestFindByAuthorIsLazy(t *testing.T) {
	c := NewCollection()
	seq := c.FindByAuthor("Doe")
	c.Insert(rec(t, "misc", "late", "author", "Jane Doe"))
	require.Len(t, slices.Collect(seq), 1)
}

func TestFindByTitleAndFilterEarlyStop(t *testing.T) {
	c := NewCollection()
	c.Insert(rec(t, "misc", "a", "title", "The Art of Computer Programming"))
	c.Insert(rec(t, "misc", "b", "title", "Computer Networks"))
	c.Insert(rec(t, "misc", "c", "title", "Compilers"))

	require.Len(t, slices.Collect(c.FindByTitle("Computer")), 2)

	n := 0
	for range c.Filter(func(*Record) bool { return true }) {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestLookup(t *testing.T) {
	c := NewCollection()
	c.Insert(rec(t, "misc", "a"))
	r, ok := c.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "a", r.CiteKey)
	_, ok = c.Lookup("zz")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())
	c.Reset()
	require.Equal(t, 0, c.Len())
}

func TestStringAndWriteTo(t *testing.T) {
	c := NewCollection()
	c.Insert(rec(t, "misc", "a", "title", "A"))
	c.Insert(rec(t, "misc", "b", "title", "B"))

	want := "@misc{a,\n    title={A}\n}\n\n@misc{b,\n    title={B}\n}"
	require.Equal(t, want, c.String())

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.Equal(t, want+"\n\n", buf.String())

	require.Equal(t, "", NewCollection().String())
}
