// Package inverted implements the Inverted logical-file variant: a
// term->posting-list index, answering Equals and NeighborIn-free
// membership lookups by returning the posting list for a term directly
// rather than scanning. It shares internal/logfile.MemStore for the
// underlying rows and keeps its own term index alongside.
package inverted

import (
	"context"
	"fmt"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

func init() {
	logfile.Register(catalog.FileCategoryInverted, New)
}

// File is the Inverted variant.
type File struct {
	logfile.Base

	field   string
	store   *logfile.MemStore
	postings map[any][]logfile.Tuple
	profile logfile.CapabilityProfile
}

// Option configures the field the inverted index is built over.
type Option func(*File)

// WithField names the column whose values are the index's terms.
func WithField(field string) Option {
	return func(f *File) { f.field = field }
}

// New constructs an Inverted driver.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	return NewWithOptions(table, file)
}

// NewWithOptions builds an Inverted driver, optionally bound to a field.
func NewWithOptions(table *catalog.Table, file *catalog.File, opts ...Option) (logfile.ILogicalFile, error) {
	f := &File{store: logfile.NewMemStore(), postings: make(map[any][]logfile.Tuple)}
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
		Scan: true, Fetch: true,
		HasAllTuples: true,
		SearchPredicates: map[predicate.Kind]bool{
			predicate.KindEquals: true,
		},
	}
	return f, nil
}

func (f *File) Insert(ctx context.Context, tuple logfile.Tuple) error {
	if err := f.store.Insert(tuple, []string{f.field}); err != nil {
		return err
	}
	term := tuple[f.field]
	f.postings[term] = append(f.postings[term], tuple)
	return nil
}

func (f *File) Update(ctx context.Context, key logfile.Tuple, tuple logfile.Tuple) error {
	if err := f.Delete(ctx, key); err != nil {
		return err
	}
	return f.Insert(ctx, tuple)
}

func (f *File) Delete(ctx context.Context, key logfile.Tuple) error {
	term := key[f.field]
	if err := f.store.Delete(key, []string{f.field}); err != nil {
		return err
	}
	list := f.postings[term]
	for i, t := range list {
		if t[f.field] == key[f.field] {
			f.postings[term] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

func (f *File) Fetch(ctx context.Context, key logfile.Tuple) (logfile.Tuple, bool, error) {
	t, ok := f.store.Fetch(key, []string{f.field})
	return t, ok, nil
}

func (f *File) Scan(ctx context.Context) (logfile.Cursor, error) { return f.store.Snapshot(), nil }

// Search answers Equals directly off the term's posting list, without
// scanning the rest of the store.
func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	if pred == nil || pred.Kind != predicate.KindEquals {
		return nil, fmt.Errorf("inverted: only Equals predicates are supported")
	}
	list := f.postings[pred.Value]
	tuples := append([]logfile.Tuple(nil), list...)
	return logfile.NewSliceCursor(tuples), nil
}

func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	return nil, fmt.Errorf("inverted: search-by-bitset is not supported")
}

func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	return nil, fmt.Errorf("inverted: get-by-bitset is not supported")
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
func (f *File) GetFetchKey(ctx context.Context) ([]string, error) { return []string{f.field}, nil }
func (f *File) IsKeyUnique() bool                                  { return f.profile.KeyUnique }
func (f *File) HasAllTuples() bool                                 { return f.profile.HasAllTuples }
