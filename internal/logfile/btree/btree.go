// Package btree implements the Btree logical-file variant: an ordered
// index over one or more key columns, unique on the key alone when the
// index is declared unique/primary and on key+value otherwise, with
// min/max virtual fields once the FileID layout version reaches 1.
// Rows live in the shared internal/logfile.MemStore since individual
// access methods' physical page layout is out of scope here.
package btree

import (
	"context"
	"fmt"
	"sort"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

func errNotSupported(op string) error {
	return fmt.Errorf("btree: %s is not supported by this file's capability profile", op)
}

func init() {
	logfile.Register(catalog.FileCategoryBtree, New)
}

// File is the Btree variant.
type File struct {
	logfile.Base

	store     *logfile.MemStore
	index     *catalog.Index
	keyFields []string
	profile   logfile.CapabilityProfile
}

// Option configures New beyond what can be derived from table/file alone.
type Option func(*buildArgs)

type buildArgs struct {
	index         *catalog.Index
	resolveColumn func(columnID int64) *catalog.Column
	version       int
}

// WithIndex supplies the owning Index (key list, uniqueness, virtual
// fields) a Btree driver is built from; New cannot derive this from
// *catalog.File alone since the File meta-row only carries the opaque
// FileIDBlob.
func WithIndex(index *catalog.Index, resolveColumn func(columnID int64) *catalog.Column, version int) Option {
	return func(a *buildArgs) { a.index = index; a.resolveColumn = resolveColumn; a.version = version }
}

// New constructs a Btree driver, recovering its owning Index from
// table.Indexes by matching Index.FileID against file.ID — the only
// link a File meta-row carries back to the Index that created it. This
// is what lets a generic logfile.New(table, file) call (the registry
// path engine.Capabilities and every reattach use) report the real
// Index's uniqueness instead of always building an index-less driver.
// If no Index claims this File (a capabilities probe against a bare
// Btree File with no catalog.Index behind it), New falls back to the
// index-less driver registered so Registered(FileCategoryBtree) reports
// true.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	if idx := ownerIndex(table, file); idx != nil {
		return NewWithOptions(table, file, WithIndex(idx, columnResolver(table), 3))
	}
	return NewWithOptions(table, file)
}

// ownerIndex finds the Index on table whose backing File is file, by
// the FileID link catalog.Index.FileID carries.
func ownerIndex(table *catalog.Table, file *catalog.File) *catalog.Index {
	for _, idx := range table.Indexes {
		if idx.FileID == file.ID {
			return idx
		}
	}
	return nil
}

// columnResolver looks up a table's own columns by ID, the shape
// PopulateKeyFields needs to resolve an Index's Key.ColumnID entries.
func columnResolver(table *catalog.Table) func(columnID int64) *catalog.Column {
	return func(columnID int64) *catalog.Column {
		for _, col := range table.Columns {
			if col.ID == columnID {
				return col
			}
		}
		return nil
	}
}

// NewWithOptions builds a Btree driver bound to a specific Index. If
// file.FileIDBlob already carries a persisted FileID, it is reattached
// (and migrated via CheckFieldType if its layout version is stale)
// instead of being rebuilt from scratch; otherwise a fresh FileID is
// populated and persisted back onto file.FileIDBlob.
func NewWithOptions(table *catalog.Table, file *catalog.File, opts ...Option) (logfile.ILogicalFile, error) {
	args := buildArgs{version: 3}
	for _, opt := range opts {
		opt(&args)
	}

	attached, hasAttached, err := logfile.AttachedFileID(file)
	if err != nil {
		return nil, err
	}

	f := &File{store: logfile.NewMemStore(), index: args.index}

	var id *fileid.FileID
	if args.index != nil {
		version := args.version
		if hasAttached {
			if v, err := attached.GetInt(fileid.KeyVersion); err == nil {
				version = v
			}
		}
		args.index.GenerateVirtualFields(version, sequentialIDs(args.index.ID))
		uniqueness := fileid.UniquenessKeyField
		if args.index.Uniqueness() == catalog.UniquenessOnlyKey {
			uniqueness = fileid.UniquenessOnlyKey
		}
		var sourceColumns []*catalog.Column
		id, sourceColumns = logfile.PopulateKeyFields(args.index, args.resolveColumn, uniqueness)
		if hasAttached {
			id = attached
		}
		logfile.CheckFieldType(id, sourceColumns)
		if !hasAttached {
			if err := logfile.PersistFileID(file, id); err != nil {
				return nil, err
			}
		}
		for _, key := range args.index.Keys {
			if args.resolveColumn != nil {
				if col := args.resolveColumn(key.ColumnID); col != nil {
					f.keyFields = append(f.keyFields, col.Name)
				}
			}
		}
	} else if hasAttached {
		id = attached
	} else {
		id = fileid.New()
		id.SetInt(fileid.KeyVersion, 3)
		if err := logfile.PersistFileID(file, id); err != nil {
			return nil, err
		}
	}

	f.Base = logfile.NewBase(table, file, id)
	f.profile = logfile.CapabilityProfile{
		Scan: true, Fetch: true, Sort: true,
		KeyUnique:    args.index != nil && args.index.Uniqueness() == catalog.UniquenessOnlyKey,
		HasAllTuples: true,
		SearchPredicates: map[predicate.Kind]bool{
			predicate.KindEquals: true, predicate.KindNotEquals: true,
			predicate.KindGreaterThan: true, predicate.KindGreaterThanEquals: true,
			predicate.KindLessThan: true, predicate.KindLessThanEquals: true,
			predicate.KindBetween: true, predicate.KindNotNull: true, predicate.KindEqualsToNull: true,
			predicate.KindAnd: true, predicate.KindOr: true,
		},
	}
	return f, nil
}

// sequentialIDs returns a nextFieldID closure counting up from a value
// derived from the index's own ID, keeping generated virtual field IDs
// stable and collision-free for a single index without needing access to
// the catalog's global sequence.
func sequentialIDs(indexID int64) func() int64 {
	next := indexID * 1000
	return func() int64 {
		next++
		return next
	}
}

func (f *File) Insert(ctx context.Context, tuple logfile.Tuple) error {
	return f.store.Insert(tuple, f.keyFields)
}

func (f *File) Update(ctx context.Context, key logfile.Tuple, tuple logfile.Tuple) error {
	if err := f.store.Delete(key, f.keyFields); err != nil {
		return err
	}
	return f.store.Insert(tuple, f.keyFields)
}

func (f *File) Delete(ctx context.Context, key logfile.Tuple) error {
	return f.store.Delete(key, f.keyFields)
}

func (f *File) Fetch(ctx context.Context, key logfile.Tuple) (logfile.Tuple, bool, error) {
	t, ok := f.store.Fetch(key, f.keyFields)
	return t, ok, nil
}

func (f *File) Scan(ctx context.Context) (logfile.Cursor, error) {
	return f.sortedCursor(nil), nil
}

func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	if !f.profile.CanSearch(pred) {
		return nil, errNotSupported("search")
	}
	return f.sortedCursor(pred), nil
}

// sortedCursor snapshots the store, optionally filters by pred, and
// orders by the index's key fields (ascending), honoring Btree's
// IsAbleToSort capability.
func (f *File) sortedCursor(pred *predicate.Predicate) logfile.Cursor {
	var tuples []logfile.Tuple
	cur := f.store.Snapshot()
	bg := context.Background()
	for {
		t, ok, _ := cur.Next(bg)
		if !ok {
			break
		}
		if pred == nil || logfile.EvalPredicate(t, pred) {
			tuples = append(tuples, t)
		}
	}
	if len(f.keyFields) > 0 {
		sort.SliceStable(tuples, func(i, j int) bool {
			for _, kf := range f.keyFields {
				c := compareAny(tuples[i][kf], tuples[j][kf])
				if c != 0 {
					return c < 0
				}
			}
			return false
		})
	}
	return logfile.NewSliceCursor(tuples)
}

func compareAny(a, b any) int {
	af, aok := a.(int64)
	bf, bok := b.(int64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	return nil, errNotSupported("search-by-bitset")
}

func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	return nil, errNotSupported("get-by-bitset")
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
func (f *File) GetFetchKey(ctx context.Context) ([]string, error) { return f.keyFields, nil }
func (f *File) IsKeyUnique() bool                          { return f.profile.KeyUnique }
func (f *File) HasAllTuples() bool                         { return f.profile.HasAllTuples }
