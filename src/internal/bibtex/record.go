package bibtex

import (
	"strings"

	"refman/src/internal/schema"
)

// Field is a single key/value pair of a record. An empty Value means unset.
type Field struct {
	Key   string
	Value string
}

// Record is one bibliographic entry. Its field list is fixed by its kind at
// construction; only values change afterwards.
type Record struct {
	CiteKey string

	kind      schema.Kind
	fields    []Field
	nrequired int
}

// New returns an empty record of the given kind with every schema field
// present and unset.
func New(kind string) (*Record, error) {
	k, err := schema.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return newRecord(k), nil
}

// newRecord builds the empty record for a kind already checked by ParseKind.
func newRecord(k schema.Kind) *Record {
	names := k.FieldNames()
	r := &Record{kind: k, fields: make([]Field, len(names)), nrequired: k.NumRequired()}
	for i, n := range names {
		r.fields[i] = Field{Key: n}
	}
	return r
}

// Kind returns the entry type of r.
func (r *Record) Kind() schema.Kind { return r.kind }

// Set assigns value to key. It reports false and changes nothing when key is
// not part of the record's schema.
func (r *Record) Set(key, value string) bool {
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return true
		}
	}
	return false
}

// Get returns the value stored for key; ok is false when the schema has no
// such key.
func (r *Record) Get(key string) (value string, ok bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Fields returns a copy of all fields in schema order.
func (r *Record) Fields() []Field { return cloneFields(r.fields) }

// Required returns a copy of the leading required fields.
func (r *Record) Required() []Field { return cloneFields(r.fields[:r.nrequired]) }

// Optional returns a copy of the fields after the required ones.
func (r *Record) Optional() []Field { return cloneFields(r.fields[r.nrequired:]) }

// Prompt describes one value an interactive builder must collect.
type Prompt struct {
	Key      string
	Required bool
}

// Prompts lists the record's fields in the order they should be asked for.
func (r *Record) Prompts() []Prompt {
	out := make([]Prompt, len(r.fields))
	for i, f := range r.fields {
		out[i] = Prompt{Key: f.Key, Required: i < r.nrequired}
	}
	return out
}

// String renders r in the canonical on-disk layout. Unset fields are omitted.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(string(r.kind))
	b.WriteString("{")
	b.WriteString(r.CiteKey)
	b.WriteString(",\n")
	for _, f := range r.fields {
		if f.Value == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(f.Key)
		b.WriteString("={")
		b.WriteString(f.Value)
		b.WriteString("},\n")
	}
	// drop the separator after the last line; with no fields this eats the
	// comma after the cite key
	out := strings.TrimSuffix(b.String(), ",\n")
	return out + "\n}"
}

func cloneFields(in []Field) []Field {
	out := make([]Field, len(in))
	copy(out, in)
	return out
}
