package bibtex

import (
	"io"
	"iter"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Policy selects how Insert handles a cite key that is already taken.
type Policy int

const (
	// SuffixOnce appends "1" a single time. If the suffixed key is also taken
	// the duplicate is kept; files written by earlier versions rely on this.
	SuffixOnce Policy = iota
	// Resolve keeps appending "1" until the key is unique.
	Resolve
)

// ParsePolicy maps the configuration names "suffix" and "resolve".
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "suffix":
		return SuffixOnce, true
	case "resolve":
		return Resolve, true
	}
	return SuffixOnce, false
}

func (p Policy) String() string {
	if p == Resolve {
		return "resolve"
	}
	return "suffix"
}

// Collection is an ordered set of records with unique cite keys.
type Collection struct {
	records []*Record
	policy  Policy
	logger  log.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithPolicy sets the cite key collision policy.
func WithPolicy(p Policy) Option { return func(c *Collection) { c.policy = p } }

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCollection returns an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{logger: log.NewNopLogger()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Policy returns the collision policy in use.
func (c *Collection) Policy() Policy { return c.policy }

// Insert appends r, renaming it first if its cite key collides with an
// existing record. It returns the cite key r ends up with.
func (c *Collection) Insert(r *Record) string {
	if c.HasCiteKey(r.CiteKey) {
		orig := r.CiteKey
		r.CiteKey += "1"
		if c.policy == Resolve {
			for c.HasCiteKey(r.CiteKey) {
				r.CiteKey += "1"
			}
		}
		level.Info(c.logger).Log("msg", "cite key already in use, renamed", "cite_key", orig, "renamed", r.CiteKey)
	}
	c.records = append(c.records, r)
	return r.CiteKey
}

// HasCiteKey reports whether a record with key is present.
func (c *Collection) HasCiteKey(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Lookup returns the first record with the given cite key.
func (c *Collection) Lookup(key string) (*Record, bool) {
	for _, r := range c.records {
		if r.CiteKey == key {
			return r, true
		}
	}
	return nil, false
}

// Len is the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Records returns the records in collection order. The slice is a copy; the
// records are shared.
func (c *Collection) Records() []*Record {
	out := make([]*Record, len(c.records))
	copy(out, c.records)
	return out
}

// Reset drops every record.
func (c *Collection) Reset() { c.records = nil }

// Filter yields the records matching pred, in order. The sequence reads the
// collection each time it is ranged over.
func (c *Collection) Filter(pred func(*Record) bool) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, r := range c.records {
			if pred(r) && !yield(r) {
				return
			}
		}
	}
}

// FindByAuthor yields records whose author field contains name. Matching is
// case sensitive.
func (c *Collection) FindByAuthor(name string) iter.Seq[*Record] {
	return c.Filter(fieldContains("author", name))
}

// FindByTitle yields records whose title field contains s.
func (c *Collection) FindByTitle(s string) iter.Seq[*Record] {
	return c.Filter(fieldContains("title", s))
}

func fieldContains(key, s string) func(*Record) bool {
	return func(r *Record) bool {
		v, ok := r.Get(key)
		return ok && strings.Contains(v, s)
	}
}

// String renders every record separated by one blank line.
func (c *Collection) String() string {
	parts := make([]string, len(c.records))
	for i, r := range c.records {
		parts[i] = r.String()
	}
	return strings.Join(parts, "\n\n")
}

// WriteTo writes the document in file layout: each record followed by a
// blank line.
func (c *Collection) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range c.records {
		n, err := io.WriteString(w, r.String()+"\n\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
