// Package hint implements Hint: the typed, categorized hint tree attached
// to files and indexes via the FileHint/IndexHint parameters. A hint is
// parsed out of the `hint 'element, element, ...'` clause of a DDL
// statement, kept as a small ordered element list tagged with a category
// bitmap, and re-renders through ToSQLStatement to the same text a parser
// would accept again.
//
// Each parsed hint token is categorized into one of a small fixed set
// (file-hint, heap, non-truncate, unique, partial-import) and kept as a
// bitmap alongside the element list so a file driver can test "does this
// hint request heap storage" without restringifying.
package hint

import (
	"fmt"
	"strings"
)

// Category is a bitmask so one Hint can belong to several categories at
// once (e.g. an index hint that is both "unique" and "non-truncate").
type Category uint32

const (
	CategoryNone Category = 0
	CategoryFile Category = 1 << (iota - 1)
	CategoryHeap
	CategoryNonTruncate
	CategoryUnique
	CategoryPartialImport
)

var categoryNames = []struct {
	bit  Category
	name string
}{
	{CategoryFile, "file"},
	{CategoryHeap, "heap"},
	{CategoryNonTruncate, "non-truncate"},
	{CategoryUnique, "unique"},
	{CategoryPartialImport, "partial-import"},
}

// elementCategory is the category implied by a bare element keyword, used
// both when parsing free-form elements and when recognizing the
// well-known ones during Parse.
var elementCategory = map[string]Category{
	"heap":           CategoryHeap,
	"notruncate":     CategoryNonTruncate,
	"non-truncate":   CategoryNonTruncate,
	"unique":         CategoryUnique,
	"partialimport":  CategoryPartialImport,
	"partial-import": CategoryPartialImport,
}

// Element is one comma-separated hint token, optionally carrying a
// parenthesized argument, e.g. `compressed` or `pagesize(4096)`.
type Element struct {
	Name Category
	Raw  string // verbatim token text, e.g. "pagesize(4096)"
}

// Hint is an ordered list of elements plus the category bitmap derived
// from them. The zero value is the empty hint (no category, no
// elements), distinct from a nil *Hint which means "no hint clause was
// given at all".
type Hint struct {
	Category Category
	Elements []Element
}

// Empty reports whether the hint carries no elements.
func (h *Hint) Empty() bool {
	return h == nil || len(h.Elements) == 0
}

// Has reports whether the hint's category bitmap includes c.
func (h *Hint) Has(c Category) bool {
	if h == nil {
		return false
	}
	return h.Category&c != 0
}

// Parse splits a `hint 'a, b(1), c'`-style clause body into a Hint,
// classifying each element by its leading keyword. Unrecognized elements
// are kept verbatim with CategoryNone and reported back so the caller can
// emit an info-level "unrecognized hint element" warning — Parse itself
// never fails on an unknown element.
func Parse(body string) (*Hint, []string) {
	h := &Hint{}
	var warnings []string
	for _, tok := range strings.Split(body, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key := strings.ToLower(tok)
		if idx := strings.IndexByte(key, '('); idx >= 0 {
			key = key[:idx]
		}
		cat, known := elementCategory[key]
		if known {
			h.Category |= cat
		} else {
			warnings = append(warnings, fmt.Sprintf("unrecognized hint element %q", tok))
		}
		h.Elements = append(h.Elements, Element{Name: cat, Raw: tok})
	}
	return h, warnings
}

// ToSQLStatement renders the hint back to the clause body text a parser
// accepts, preserving element order so Parse(h.ToSQLStatement()) round-trips.
func (h *Hint) ToSQLStatement() string {
	if h.Empty() {
		return ""
	}
	raws := make([]string, len(h.Elements))
	for i, e := range h.Elements {
		raws[i] = e.Raw
	}
	return strings.Join(raws, ", ")
}

// CategoryNames returns the human-readable names of every category bit
// set on h, for diagnostics.
func (h *Hint) CategoryNames() []string {
	if h == nil {
		return nil
	}
	var out []string
	for _, c := range categoryNames {
		if h.Category&c.bit != 0 {
			out = append(out, c.name)
		}
	}
	return out
}
