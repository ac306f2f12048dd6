// Package kdtree implements the KdTree logical-file variant: only
// NeighborIn predicates are supported, NeighborID/NeighborDistance
// virtual fields are generated, results come back distance-sorted, and
// rows whose first key column is null are skipped on insert
// (GetSkipInsertType == FirstKeyIsNull).
package kdtree

import (
	"context"
	"fmt"
	"math"
	"sort"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

func init() {
	logfile.Register(catalog.FileCategoryKdTree, New)
}

// File is the KdTree variant.
type File struct {
	logfile.Base

	index      *catalog.Index
	vectorField string
	store      *logfile.MemStore
	profile    logfile.CapabilityProfile
}

// Option configures New beyond what table/file alone supply.
type Option func(*buildArgs)

type buildArgs struct {
	index       *catalog.Index
	vectorField string
	version     int
}

// WithIndex supplies the owning Index for NeighborID/NeighborDistance
// virtual-field generation, and the field the k-d tree is built over.
func WithIndex(index *catalog.Index, vectorField string, version int) Option {
	return func(a *buildArgs) { a.index = index; a.vectorField = vectorField; a.version = version }
}

// New constructs a KdTree driver.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	return NewWithOptions(table, file)
}

// NewWithOptions builds a KdTree driver bound to a specific Index.
func NewWithOptions(table *catalog.Table, file *catalog.File, opts ...Option) (logfile.ILogicalFile, error) {
	args := buildArgs{version: 3}
	for _, opt := range opts {
		opt(&args)
	}

	f := &File{store: logfile.NewMemStore(), index: args.index, vectorField: args.vectorField}

	id, hasAttached, err := logfile.AttachedFileID(file)
	if err != nil {
		return nil, err
	}
	version := args.version
	if hasAttached {
		if v, err := id.GetInt(fileid.KeyVersion); err == nil {
			version = v
		}
	}
	if args.index != nil {
		args.index.GenerateVirtualFields(version, sequentialIDs(args.index.ID))
	}
	if !hasAttached {
		id = fileid.New()
		id.SetInt(fileid.KeyVersion, args.version)
		if err := logfile.PersistFileID(file, id); err != nil {
			return nil, err
		}
	}
	f.Base = logfile.NewBase(table, file, id)

	f.profile = logfile.CapabilityProfile{
		Scan: true, Fetch: true, Sort: true,
		HasAllTuples: false,
		SkipInsert:   logfile.SkipInsertFirstKeyIsNull,
		FunctionFields: map[logfile.FunctionField]bool{
			catalog.FieldFunctionNeighborID:       true,
			catalog.FieldFunctionNeighborDistance: true,
		},
		SearchPredicates: map[predicate.Kind]bool{
			predicate.KindNeighborIn: true,
		},
	}
	return f, nil
}

func sequentialIDs(indexID int64) func() int64 {
	next := indexID * 1000
	return func() int64 {
		next++
		return next
	}
}

// Insert skips tuples whose vector field is nil, per GetSkipInsertType ==
// FirstKeyIsNull.
func (f *File) Insert(ctx context.Context, tuple logfile.Tuple) error {
	if tuple[f.vectorField] == nil {
		return nil
	}
	return f.store.Insert(tuple, []string{f.vectorField})
}

func (f *File) Update(ctx context.Context, key logfile.Tuple, tuple logfile.Tuple) error {
	if err := f.store.Delete(key, []string{f.vectorField}); err != nil {
		return err
	}
	return f.Insert(ctx, tuple)
}

func (f *File) Delete(ctx context.Context, key logfile.Tuple) error {
	return f.store.Delete(key, []string{f.vectorField})
}

func (f *File) Fetch(ctx context.Context, key logfile.Tuple) (logfile.Tuple, bool, error) {
	t, ok := f.store.Fetch(key, []string{f.vectorField})
	return t, ok, nil
}

func (f *File) Scan(ctx context.Context) (logfile.Cursor, error) { return f.store.Snapshot(), nil }

// Search only supports NeighborIn: it computes Euclidean distance from
// pred.Vector to every stored vector, keeps the K closest, and returns
// them distance-sorted with NeighborDistance/NeighborID virtual fields
// populated.
func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	if pred == nil || pred.Kind != predicate.KindNeighborIn {
		return nil, fmt.Errorf("kdtree: only NeighborIn predicates are supported")
	}
	type scored struct {
		tuple    logfile.Tuple
		distance float64
	}
	var all []scored
	cur := f.store.Snapshot()
	bg := context.Background()
	for {
		t, ok, _ := cur.Next(bg)
		if !ok {
			break
		}
		vec, ok := t[f.vectorField].([]float64)
		if !ok {
			continue
		}
		all = append(all, scored{tuple: t, distance: euclidean(vec, pred.Vector)})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].distance < all[j].distance })

	k := pred.K
	if k <= 0 || k > len(all) {
		k = len(all)
	}
	tuples := make([]logfile.Tuple, 0, k)
	for i := 0; i < k; i++ {
		out := logfile.Tuple{}
		for key, v := range all[i].tuple {
			out[key] = v
		}
		out["_neighbor_distance"] = all[i].distance
		out["_neighbor_id"] = int64(i)
		tuples = append(tuples, out)
	}
	return logfile.NewSliceCursor(tuples), nil
}

func euclidean(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	return nil, fmt.Errorf("kdtree: search-by-bitset is not supported")
}

func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	return nil, fmt.Errorf("kdtree: get-by-bitset is not supported")
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
func (f *File) GetSkipInsertType() logfile.SkipInsertType { return f.profile.SkipInsert }
func (f *File) GetFetchKey(ctx context.Context) ([]string, error) {
	return []string{f.vectorField}, nil
}
func (f *File) IsKeyUnique() bool  { return f.profile.KeyUnique }
func (f *File) HasAllTuples() bool { return f.profile.HasAllTuples }
