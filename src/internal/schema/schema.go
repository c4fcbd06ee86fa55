package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a BibTeX entry type tag such as "article" or "book".
type Kind string

const (
	Article       Kind = "article"
	Book          Kind = "book"
	Booklet       Kind = "booklet"
	Conference    Kind = "conference"
	Inbook        Kind = "inbook"
	Incollection  Kind = "incollection"
	Inproceedings Kind = "inproceedings"
	Manual        Kind = "manual"
	MastersThesis Kind = "mastersthesis"
	Misc          Kind = "misc"
	PhDThesis     Kind = "phdthesis"
	Proceedings   Kind = "proceedings"
	TechReport    Kind = "techreport"
	Unpublished   Kind = "unpublished"
)

// ErrUnknownKind matches any *UnknownKindError via errors.Is.
var ErrUnknownKind = errors.New("unknown entry kind")

// UnknownKindError reports an entry kind outside the supported set.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown entry kind %q", e.Kind)
}

func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }

// fieldSet holds the ordered field names of a kind, split into the leading
// required names and the trailing optional ones.
type fieldSet struct {
	required []string
	optional []string
}

var order = []Kind{
	Article, Book, Booklet, Conference, Inbook, Incollection, Inproceedings,
	Manual, MastersThesis, Misc, PhDThesis, Proceedings, TechReport, Unpublished,
}

var table = map[Kind]fieldSet{
	Article: {
		required: []string{"title", "author", "journal", "year"},
		optional: []string{"volume", "number", "pages", "month", "note", "key"},
	},
	Book: {
		required: []string{"title", "author", "publisher", "year"},
		optional: []string{"volume", "series", "address", "edition", "month", "note", "key"},
	},
	Booklet: {
		required: []string{"title"},
		optional: []string{"author", "howpublished", "address", "month", "year", "note", "key"},
	},
	Conference: {
		required: []string{"title", "author", "booktitle", "year"},
		optional: []string{"editor", "pages", "organization", "publisher", "address", "month", "note", "key"},
	},
	Inbook: {
		required: []string{"title", "author", "chapter", "pages", "publisher"},
		optional: []string{"volume", "series", "address", "edition", "month", "note", "key"},
	},
	Incollection: {
		required: []string{"title", "author", "booktitle", "year"},
		optional: []string{"editor", "pages", "organization", "publisher", "address", "month", "note", "key"},
	},
	Inproceedings: {
		required: []string{"title", "author", "booktitle", "year"},
		optional: []string{"editor", "pages", "organization", "publisher", "address", "month", "note", "key"},
	},
	Manual: {
		required: []string{"title"},
		optional: []string{"author", "organization", "address", "edition", "month", "year", "note", "key"},
	},
	MastersThesis: {
		required: []string{"title", "author", "school", "year"},
		optional: []string{"address", "month", "note", "key"},
	},
	Misc: {
		optional: []string{"title", "author", "howpublished", "month", "year", "note", "key"},
	},
	PhDThesis: {
		required: []string{"title", "author", "school", "year"},
		optional: []string{"address", "month", "note", "key"},
	},
	Proceedings: {
		required: []string{"title", "year"},
		optional: []string{"editor", "publisher", "organization", "address", "month", "note", "key"},
	},
	TechReport: {
		required: []string{"title", "author", "institution", "year"},
		optional: []string{"type", "number", "address", "month", "note", "key"},
	},
	Unpublished: {
		required: []string{"title", "author", "note"},
		optional: []string{"month", "year", "key"},
	},
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

// ParseKind validates s against the supported kinds. Matching is exact:
// the on-disk format uses lowercase tags only.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := table[k]; !ok {
		return "", &UnknownKindError{Kind: s}
	}
	return k, nil
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := table[k]
	return ok
}

// Required returns the names of the fields conventionally required for k.
func (k Kind) Required() []string { return clone(table[k].required) }

// Optional returns the names of the remaining fields for k.
func (k Kind) Optional() []string { return clone(table[k].optional) }

// FieldNames returns required followed by optional names.
func (k Kind) FieldNames() []string {
	fs := table[k]
	out := make([]string, 0, len(fs.required)+len(fs.optional))
	out = append(out, fs.required...)
	return append(out, fs.optional...)
}

// NumRequired is the count of leading required fields for k.
func (k Kind) NumRequired() int { return len(table[k].required) }

func (k Kind) String() string { return string(k) }

// KindList renders the supported kinds as a comma separated list for help text.
func KindList() string {
	parts := make([]string, len(order))
	for i, k := range order {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

func clone(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
