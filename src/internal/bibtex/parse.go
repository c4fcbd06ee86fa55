package bibtex

import (
	"errors"
	"strings"

	"github.com/go-kit/log/level"
)

// compact strips line endings (CR and LF) and tabs, then double and
// quadruple space runs. Single spaces survive, so values keep their word
// breaks.
func compact(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\t", "")
	s = strings.ReplaceAll(s, "  ", "")
	return strings.ReplaceAll(s, "    ", "")
}

// segments splits compacted text into raw entries. Empty segments are
// skipped; segments containing a '%' comment marker are returned in
// commented so the caller can report them.
func segments(s string) (entries, commented []string) {
	for _, seg := range strings.Split(s, "@") {
		switch {
		case seg == "":
		case strings.Contains(seg, "%"):
			commented = append(commented, seg)
		default:
			entries = append(entries, seg)
		}
	}
	return entries, commented
}

// Parse replaces the collection's contents with the records in text.
//
// Input is expected in the layout String writes. Entries that cannot be
// turned into a record are skipped; their errors (*UnknownKindError or
// *ParseError) are joined into the returned error while every other entry
// is still inserted.
func (c *Collection) Parse(text string) error {
	c.Reset()
	entries, commented := segments(compact(text))
	for _, seg := range commented {
		level.Warn(c.logger).Log("msg", "dropping segment containing '%'", "segment", truncate(seg, 40))
	}
	var errs []error
	for i, seg := range entries {
		r, err := parseEntry(i+1, seg, c)
		if err != nil {
			level.Warn(c.logger).Log("msg", "skipping entry", "entry", i+1, "err", err)
			errs = append(errs, err)
			continue
		}
		c.Insert(r)
	}
	return errors.Join(errs...)
}

// Parse is a convenience for NewCollection followed by Collection.Parse.
func Parse(text string, opts ...Option) (*Collection, error) {
	c := NewCollection(opts...)
	err := c.Parse(text)
	return c, err
}

func parseEntry(n int, seg string, c *Collection) (*Record, error) {
	kind, body, ok := strings.Cut(seg, "{")
	if !ok {
		return nil, &ParseError{Entry: n, Segment: seg, Reason: "missing '{' after entry kind"}
	}
	r, err := New(kind)
	if err != nil {
		return nil, &entryError{entry: n, err: err}
	}
	key, fieldBody, ok := strings.Cut(body, ",")
	if !ok {
		// a record with no set fields is written as "@kind{key\n}"
		if k, found := strings.CutSuffix(body, "}"); found {
			r.CiteKey = k
			return r, nil
		}
		return nil, &ParseError{Entry: n, Segment: seg, Reason: "missing ',' after cite key"}
	}
	r.CiteKey = key
	if fieldBody == "}" || fieldBody == "" {
		return r, nil
	}
	chunks := strings.Split(fieldBody, "},")
	last := len(chunks) - 1
	chunks[last] = strings.ReplaceAll(chunks[last], "}}", "")
	for _, chunk := range chunks {
		parts := strings.Split(chunk, "={")
		if len(parts) != 2 {
			return nil, &ParseError{Entry: n, Segment: seg, Reason: "field is not of the form key={value}"}
		}
		if !r.Set(parts[0], parts[1]) {
			level.Debug(c.logger).Log("msg", "dropping field not in schema", "kind", r.Kind(), "cite_key", r.CiteKey, "field", parts[0])
		}
	}
	return r, nil
}
