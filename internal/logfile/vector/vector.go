// Package vector implements the Vector logical-file variant: always
// unique on its key, exposing one virtual count field. Rows live in the
// shared internal/logfile.MemStore.
package vector

import (
	"context"
	"fmt"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

func init() {
	logfile.Register(catalog.FileCategoryVector, New)
}

// File is the Vector variant.
type File struct {
	logfile.Base

	store     *logfile.MemStore
	index     *catalog.Index
	keyFields []string
	profile   logfile.CapabilityProfile
}

// Option configures New beyond what table/file alone supply.
type Option func(*buildArgs)

type buildArgs struct {
	index         *catalog.Index
	resolveColumn func(columnID int64) *catalog.Column
	version       int
	hasAllTuples  bool
}

// WithIndex supplies the owning Index for key/virtual-field population.
func WithIndex(index *catalog.Index, resolveColumn func(columnID int64) *catalog.Column, version int) Option {
	return func(a *buildArgs) { a.index = index; a.resolveColumn = resolveColumn; a.version = version }
}

// WithHasAllTuples overrides the default HasAllTuples answer, left
// configurable per vector instance rather than fixed.
func WithHasAllTuples(v bool) Option {
	return func(a *buildArgs) { a.hasAllTuples = v }
}

// New constructs a Vector driver, recovering its owning Index from
// table.Indexes by matching Index.FileID against file.ID (mirroring
// internal/logfile/btree's reattachment), falling back to an index-less
// driver registered so Registered(FileCategoryVector) reports true.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	if idx := ownerIndex(table, file); idx != nil {
		return NewWithOptions(table, file, WithIndex(idx, columnResolver(table), 3))
	}
	return NewWithOptions(table, file)
}

func ownerIndex(table *catalog.Table, file *catalog.File) *catalog.Index {
	for _, idx := range table.Indexes {
		if idx.FileID == file.ID {
			return idx
		}
	}
	return nil
}

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

// NewWithOptions builds a Vector driver bound to a specific Index. If
// file.FileIDBlob already carries a persisted FileID it is reattached
// (migrated via CheckFieldType when stale) instead of rebuilt; otherwise
// a fresh FileID is populated and persisted back onto file.FileIDBlob.
func NewWithOptions(table *catalog.Table, file *catalog.File, opts ...Option) (logfile.ILogicalFile, error) {
	args := buildArgs{version: 3, hasAllTuples: true}
	for _, opt := range opts {
		opt(&args)
	}

	attached, hasAttached, err := logfile.AttachedFileID(file)
	if err != nil {
		return nil, err
	}

	f := &File{store: logfile.NewMemStore(), index: args.index}

	var id *fileid.FileID
	var sourceColumns []*catalog.Column
	if args.index != nil {
		version := args.version
		if hasAttached {
			if v, err := attached.GetInt(fileid.KeyVersion); err == nil {
				version = v
			}
		}
		args.index.GenerateVirtualFields(version, sequentialIDs(args.index.ID))
		id, sourceColumns = logfile.PopulateKeyFields(args.index, args.resolveColumn, fileid.UniquenessOnlyKey)
		for _, key := range args.index.Keys {
			if args.resolveColumn != nil {
				if col := args.resolveColumn(key.ColumnID); col != nil {
					f.keyFields = append(f.keyFields, col.Name)
				}
			}
		}
	} else {
		id = fileid.New()
		id.SetInt(fileid.KeyVersion, 3)
	}
	if hasAttached {
		id = attached
	} else {
		id.SetInt(fileid.KeyUniqueness, int(fileid.UniquenessOnlyKey))
	}
	logfile.CheckFieldType(id, sourceColumns)
	if !hasAttached {
		if err := logfile.PersistFileID(file, id); err != nil {
			return nil, err
		}
	}

	f.Base = logfile.NewBase(table, file, id)
	f.profile = logfile.CapabilityProfile{
		Scan: true, Fetch: true, Sort: false,
		KeyUnique:    true, // vector is always unique on key
		HasAllTuples: args.hasAllTuples,
		FunctionFields: map[logfile.FunctionField]bool{
			catalog.FieldFunctionCount: true,
		},
		SearchPredicates: map[predicate.Kind]bool{
			predicate.KindEquals: true,
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
	return f.store.Snapshot(), nil
}

func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	if !f.profile.CanSearch(pred) {
		return nil, fmt.Errorf("vector: search is not supported for this predicate")
	}
	return f.store.Filter(func(t logfile.Tuple) bool { return logfile.EvalPredicate(t, pred) }), nil
}

// Count reports the virtual count field value: the number of tuples
// currently stored, the one function field Vector projects.
func (f *File) Count() int64 { return int64(f.store.Len()) }

func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	return nil, fmt.Errorf("vector: search-by-bitset is not supported")
}

func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	return nil, fmt.Errorf("vector: get-by-bitset is not supported")
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
func (f *File) GetFetchKey(ctx context.Context) ([]string, error) { return f.keyFields, nil }
func (f *File) IsKeyUnique() bool                                  { return f.profile.KeyUnique }
func (f *File) HasAllTuples() bool                                 { return f.profile.HasAllTuples }
