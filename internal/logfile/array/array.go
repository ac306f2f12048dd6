// Package array implements the Array logical-file variant: comparison
// predicates are supported but And/Or composition is not, bit-set
// retrieval/search are supported, and hasAllTuples is always true — a
// sublattice example of a file that can answer individual comparisons
// but can't combine them.
package array

import (
	"context"
	"fmt"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

func init() {
	logfile.Register(catalog.FileCategoryArray, New)
}

// File is the Array variant.
type File struct {
	logfile.Base

	field   string
	store   *logfile.MemStore
	profile logfile.CapabilityProfile

	nextRowID int64
	rowIDs    map[string]int64 // tuple key -> row id, for GetByBitSet
}

// Option configures the field the array element type is drawn from.
type Option func(*File)

// WithField names the array-typed column this file backs.
func WithField(field string) Option {
	return func(f *File) { f.field = field }
}

// New constructs an Array driver.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	return NewWithOptions(table, file)
}

// NewWithOptions builds an Array driver, optionally bound to a field.
func NewWithOptions(table *catalog.Table, file *catalog.File, opts ...Option) (logfile.ILogicalFile, error) {
	f := &File{store: logfile.NewMemStore(), rowIDs: make(map[string]int64)}
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
		Scan: true, Fetch: true, GetByBitSet: true, SearchByBitSet: true,
		HasAllTuples: true,
		SearchPredicates: map[predicate.Kind]bool{
			// And/Or deliberately absent: Array can answer any single
			// comparison but cannot compose them.
			predicate.KindEquals: true, predicate.KindNotEquals: true,
			predicate.KindGreaterThan: true, predicate.KindGreaterThanEquals: true,
			predicate.KindLessThan: true, predicate.KindLessThanEquals: true,
			predicate.KindBetween: true, predicate.KindNotNull: true, predicate.KindEqualsToNull: true,
		},
	}
	return f, nil
}

func (f *File) Insert(ctx context.Context, tuple logfile.Tuple) error {
	if err := f.store.Insert(tuple, []string{f.field}); err != nil {
		return err
	}
	f.rowIDs[fmt.Sprintf("%v", tuple[f.field])] = f.nextRowID
	f.nextRowID++
	return nil
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

func (f *File) Fetch(ctx context.Context, key logfile.Tuple) (logfile.Tuple, bool, error) {
	t, ok := f.store.Fetch(key, []string{f.field})
	return t, ok, nil
}

func (f *File) Scan(ctx context.Context) (logfile.Cursor, error) { return f.store.Snapshot(), nil }

func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	if !f.profile.CanSearch(pred) {
		return nil, fmt.Errorf("array: search is not supported for this predicate")
	}
	return f.store.Filter(func(t logfile.Tuple) bool { return logfile.EvalPredicate(t, pred) }), nil
}

func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	out := newSimpleBitSet()
	for _, rowID := range f.rowIDs {
		out.Add(rowID)
	}
	return out, nil
}

func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	var tuples []logfile.Tuple
	cur := f.store.Snapshot()
	ctxBG := context.Background()
	for {
		t, ok, _ := cur.Next(ctxBG)
		if !ok {
			break
		}
		rowID, known := f.rowIDs[fmt.Sprintf("%v", t[f.field])]
		if known && input.Contains(rowID) {
			tuples = append(tuples, t)
		}
	}
	return logfile.NewSliceCursor(tuples), nil
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

// simpleBitSet is a minimal map-backed logfile.BitSet, used for Array
// since its bit-set role is reporting row presence, not the compressed
// storage Bitmap's variant needs (that gets RoaringBitmap in
// internal/logfile/bitmap).
type simpleBitSet struct{ rows map[int64]struct{} }

func newSimpleBitSet() *simpleBitSet { return &simpleBitSet{rows: make(map[int64]struct{})} }

func (b *simpleBitSet) Contains(rowID int64) bool { _, ok := b.rows[rowID]; return ok }
func (b *simpleBitSet) Add(rowID int64)           { b.rows[rowID] = struct{}{} }
func (b *simpleBitSet) Cardinality() int          { return len(b.rows) }
