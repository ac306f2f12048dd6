// Package fulltext implements the FullText logical-file variant: a
// Like-searchable text index exposing score and term-frequency function
// fields. It does not tokenize: a row's score is the number of
// case-insensitive occurrences of the search text in it, deliberately
// simple since ranking algorithms are out of this kernel's scope — only
// the capability surface and storage contract matter here.
package fulltext

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

func init() {
	logfile.Register(catalog.FileCategoryFullText, New)
}

// File is the FullText variant.
type File struct {
	logfile.Base

	field   string
	store   *logfile.MemStore
	profile logfile.CapabilityProfile
}

// Option configures the field that holds the indexed text.
type Option func(*File)

// WithField names the text column this file indexes.
func WithField(field string) Option {
	return func(f *File) { f.field = field }
}

// New constructs a FullText driver.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	return NewWithOptions(table, file)
}

// NewWithOptions builds a FullText driver, optionally bound to a field.
func NewWithOptions(table *catalog.Table, file *catalog.File, opts ...Option) (logfile.ILogicalFile, error) {
	f := &File{store: logfile.NewMemStore()}
	for _, opt := range opts {
		opt(f)
	}

	id, hasAttached, err := logfile.AttachedFileID(file)
	if err != nil {
		return nil, err
	}
	if !hasAttached {
		id = fileid.New()
		id.SetInt(fileid.KeyVersion, 3)
		if err := logfile.PersistFileID(file, id); err != nil {
			return nil, err
		}
	}
	f.Base = logfile.NewBase(table, file, id)

	f.profile = logfile.CapabilityProfile{
		Scan: true, Fetch: false, Sort: true,
		HasAllTuples: true,
		FunctionFields: map[logfile.FunctionField]bool{
			catalog.FieldFunctionScore:          true,
			catalog.FieldFunctionTermFrequency:  true,
		},
		SearchPredicates: map[predicate.Kind]bool{
			predicate.KindLike: true,
		},
	}
	return f, nil
}

func (f *File) Insert(ctx context.Context, tuple logfile.Tuple) error {
	return f.store.Insert(tuple, []string{f.field})
}

func (f *File) Update(ctx context.Context, key logfile.Tuple, tuple logfile.Tuple) error {
	if err := f.store.Delete(key, []string{f.field}); err != nil {
		return err
	}
	return f.store.Insert(tuple, []string{f.field})
}

func (f *File) Delete(ctx context.Context, key logfile.Tuple) error {
	return f.store.Delete(key, []string{f.field})
}

// Fetch is unsupported: FullText never reports IsAbleToFetch.
func (f *File) Fetch(ctx context.Context, key logfile.Tuple) (logfile.Tuple, bool, error) {
	return nil, false, fmt.Errorf("fulltext: fetch is not supported")
}

func (f *File) Scan(ctx context.Context) (logfile.Cursor, error) { return f.store.Snapshot(), nil }

// Search supports Like only, scoring hits by how often the pattern, with
// its leading and trailing % removed, occurs in the text (ignoring case)
// and returning them highest-score-first.
func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	if pred == nil || pred.Kind != predicate.KindLike {
		return nil, fmt.Errorf("fulltext: only Like predicates are supported")
	}
	pattern, _ := pred.Value.(string)
	needle := strings.ToLower(strings.Trim(pattern, "%"))

	type scored struct {
		tuple logfile.Tuple
		score int
	}
	var hits []scored
	cur := f.store.Snapshot()
	bg := context.Background()
	for {
		t, ok, _ := cur.Next(bg)
		if !ok {
			break
		}
		text, _ := t[pred.Field].(string)
		score := strings.Count(strings.ToLower(text), needle)
		if score > 0 {
			hits = append(hits, scored{tuple: t, score: score})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	tuples := make([]logfile.Tuple, 0, len(hits))
	for _, h := range hits {
		out := logfile.Tuple{}
		for k, v := range h.tuple {
			out[k] = v
		}
		out["_score"] = h.score
		tuples = append(tuples, out)
	}
	return logfile.NewSliceCursor(tuples), nil
}

func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	return nil, fmt.Errorf("fulltext: search-by-bitset is not supported")
}

func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	return nil, fmt.Errorf("fulltext: get-by-bitset is not supported")
}

func (f *File) Flush(ctx context.Context) error                      { return nil }
func (f *File) Recover(ctx context.Context, pointInTime int64) error { return nil }
func (f *File) Restore(ctx context.Context, pointInTime int64) error { return nil }
func (f *File) Sync(ctx context.Context) (bool, bool, error)          { return false, false, nil }

func (f *File) IsAbleToScan(allTuples bool) bool              { return f.profile.Scan }
func (f *File) IsAbleToFetch() bool                           { return f.profile.Fetch }
func (f *File) IsAbleToSearch(pred *predicate.Predicate) bool { return f.profile.CanSearch(pred) }
func (f *File) IsAbleToGetByBitSet() bool                     { return f.profile.GetByBitSet }
func (f *File) IsAbleToSearchByBitSet() bool                  { return f.profile.SearchByBitSet }
func (f *File) IsAbleToSort() bool                            { return f.profile.Sort }
func (f *File) IsHasFunctionField(fn logfile.FunctionField) bool {
	return f.profile.FunctionFields[fn]
}
func (f *File) GetSkipInsertType() logfile.SkipInsertType          { return f.profile.SkipInsert }
func (f *File) GetFetchKey(ctx context.Context) ([]string, error) { return nil, nil }
func (f *File) IsKeyUnique() bool                                  { return f.profile.KeyUnique }
func (f *File) HasAllTuples() bool                                 { return f.profile.HasAllTuples }
