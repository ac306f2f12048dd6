// Package bitmap implements the Bitmap logical-file variant: full
// And/Or/comparison predicate support, row-id retrieval as a compressed
// bitset, and hasAllTuples always true.
// Backed by github.com/RoaringBitmap/roaring/v2 for real compressed
// bit-set semantics rather than a hand-rolled set, since that is exactly
// the data structure the library exists for.
package bitmap

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

func init() {
	logfile.Register(catalog.FileCategoryBitmap, New)
}

// roaringBitSet adapts *roaring.Bitmap to logfile.BitSet.
type roaringBitSet struct {
	bm *roaring.Bitmap
}

func newRoaringBitSet() *roaringBitSet { return &roaringBitSet{bm: roaring.New()} }

func (b *roaringBitSet) Contains(rowID int64) bool { return b.bm.Contains(uint32(rowID)) }
func (b *roaringBitSet) Add(rowID int64)           { b.bm.Add(uint32(rowID)) }
func (b *roaringBitSet) Cardinality() int          { return int(b.bm.GetCardinality()) }

// File is the Bitmap variant: one bit per row ID per distinct key value,
// keyed by the field the bitmap indexes.
type File struct {
	logfile.Base

	field   string
	profile logfile.CapabilityProfile

	nextRowID int64
	rows      map[int64]logfile.Tuple
	byValue   map[any]*roaring.Bitmap
}

// Option configures the field the bitmap is built over.
type Option func(*File)

// WithField names the column the bitmap indexes.
func WithField(field string) Option {
	return func(f *File) { f.field = field }
}

// New constructs a Bitmap driver.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	return NewWithOptions(table, file)
}

// NewWithOptions builds a Bitmap driver, optionally bound to a field.
func NewWithOptions(table *catalog.Table, file *catalog.File, opts ...Option) (logfile.ILogicalFile, error) {
	f := &File{
		rows:    make(map[int64]logfile.Tuple),
		byValue: make(map[any]*roaring.Bitmap),
	}
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
		id.SetInt(fileid.KeyUniqueness, int(fileid.UniquenessNone))
		if err := logfile.PersistFileID(file, id); err != nil {
			return nil, err
		}
	}
	f.Base = logfile.NewBase(table, file, id)

	f.profile = logfile.CapabilityProfile{
		Scan: true, Fetch: true, GetByBitSet: true, SearchByBitSet: true,
		HasAllTuples: true,
		SearchPredicates: map[predicate.Kind]bool{
			predicate.KindAnd: true, predicate.KindOr: true,
			predicate.KindEquals: true, predicate.KindNotEquals: true,
			predicate.KindGreaterThan: true, predicate.KindGreaterThanEquals: true,
			predicate.KindLessThan: true, predicate.KindLessThanEquals: true,
			predicate.KindBetween: true, predicate.KindNotNull: true, predicate.KindEqualsToNull: true,
			// Like included: f.rows always holds every row (HasAllTuples),
			// so Search's EvalPredicate scan can answer it directly rather
			// than needing a value-bitmap lookup like the comparison kinds.
			predicate.KindLike: true,
		},
	}
	return f, nil
}

func (f *File) Insert(ctx context.Context, tuple logfile.Tuple) error {
	rowID := f.nextRowID
	f.nextRowID++
	f.rows[rowID] = tuple
	v := tuple[f.field]
	bm, ok := f.byValue[v]
	if !ok {
		bm = roaring.New()
		f.byValue[v] = bm
	}
	bm.Add(uint32(rowID))
	return nil
}

func (f *File) Update(ctx context.Context, key logfile.Tuple, tuple logfile.Tuple) error {
	if err := f.Delete(ctx, key); err != nil {
		return err
	}
	return f.Insert(ctx, tuple)
}

func (f *File) Delete(ctx context.Context, key logfile.Tuple) error {
	for rowID, t := range f.rows {
		if t[f.field] == key[f.field] {
			delete(f.rows, rowID)
			if bm, ok := f.byValue[t[f.field]]; ok {
				bm.Remove(uint32(rowID))
			}
		}
	}
	return nil
}

func (f *File) Fetch(ctx context.Context, key logfile.Tuple) (logfile.Tuple, bool, error) {
	for _, t := range f.rows {
		if t[f.field] == key[f.field] {
			return t, true, nil
		}
	}
	return nil, false, nil
}

func (f *File) Scan(ctx context.Context) (logfile.Cursor, error) {
	tuples := make([]logfile.Tuple, 0, len(f.rows))
	for _, t := range f.rows {
		tuples = append(tuples, t)
	}
	return logfile.NewSliceCursor(tuples), nil
}

func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	if !f.profile.CanSearch(pred) {
		return nil, fmt.Errorf("bitmap: search is not supported for this predicate")
	}
	var tuples []logfile.Tuple
	for _, t := range f.rows {
		if logfile.EvalPredicate(t, pred) {
			tuples = append(tuples, t)
		}
	}
	return logfile.NewSliceCursor(tuples), nil
}

// GetByBitSet returns a bitset of every stored row ID.
func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	out := newRoaringBitSet()
	for rowID := range f.rows {
		out.Add(rowID)
	}
	return out, nil
}

// SearchByBitSet intersects input with this bitmap's stored row IDs and
// returns the matching tuples.
func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	var tuples []logfile.Tuple
	for rowID, t := range f.rows {
		if input.Contains(rowID) {
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
