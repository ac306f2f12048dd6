// Package logfile defines ILogicalFile: the uniform capability-query and
// access-method contract every storage driver variant (Record, Btree,
// Vector, Bitmap, Array, KdTree, FullText, Inverted) implements, plus the
// registry that lets the catalog open a driver purely from its FileID.
// The capability interface is the one place open polymorphism is kept
// deliberately: new access methods can be added out-of-tree, so this
// stays an interface behind a registry rather than a closed tagged union
// like internal/predicate.
//
// The registry itself is a sync.RWMutex-guarded map from a typed key to
// a constructor function: one driver constructor per access-method
// kind.
package logfile

import (
	"context"
	"fmt"
	"sync"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/predicate"
)

// SkipInsertType names which rows an access method intentionally omits.
type SkipInsertType int

const (
	SkipInsertNone SkipInsertType = iota
	SkipInsertFirstKeyIsNull
	SkipInsertValueIsNull
)

// Capability is the set of undo/self-reported structural capabilities
// isAbleToUndo and friends query.
type Capability int

const (
	CapabilityUndo Capability = iota
)

// FunctionField names a function-field projection a driver may expose,
// matching internal/catalog's FieldFunction set.
type FunctionField = catalog.FieldFunction

// Tuple is an opaque row value; drivers interpret its shape according to
// their own field layout. The catalog never inspects tuple contents
// directly — that is the planner's job, out of scope here.
type Tuple map[string]any

// BitSet is the compressed row-id set drivers exchange for
// isAbleToGetByBitSet/isAbleToSearchByBitSet; internal/logfile/bitmap
// backs it with github.com/RoaringBitmap/roaring/v2.
type BitSet interface {
	Contains(rowID int64) bool
	Add(rowID int64)
	Cardinality() int
}

// ILogicalFile is the driver contract every access method implements.
type ILogicalFile interface {
	Create(ctx context.Context, id *fileid.FileID) error
	Destroy(ctx context.Context) error
	Mount(ctx context.Context) error
	Unmount(ctx context.Context) error
	Flush(ctx context.Context) error
	StartBackup(ctx context.Context, restorable bool) error
	EndBackup(ctx context.Context) error
	Recover(ctx context.Context, pointInTime int64) error
	Restore(ctx context.Context, pointInTime int64) error
	Sync(ctx context.Context) (incomplete bool, modified bool, err error)

	Insert(ctx context.Context, tuple Tuple) error
	Update(ctx context.Context, key Tuple, tuple Tuple) error
	Delete(ctx context.Context, key Tuple) error
	Fetch(ctx context.Context, key Tuple) (Tuple, bool, error)
	Scan(ctx context.Context) (Cursor, error)
	Search(ctx context.Context, pred *predicate.Predicate) (Cursor, error)
	SearchByBitSet(ctx context.Context, input BitSet) (Cursor, error)
	GetByBitSet(ctx context.Context) (BitSet, error)

	IsAbleToScan(allTuples bool) bool
	IsAbleToFetch() bool
	IsAbleToSearch(pred *predicate.Predicate) bool
	IsAbleToGetByBitSet() bool
	IsAbleToSearchByBitSet() bool
	IsAbleToSort() bool
	IsHasFunctionField(fn FunctionField) bool
	GetSkipInsertType() SkipInsertType
	GetFetchKey(ctx context.Context) ([]string, error)
	IsKeyUnique() bool
	HasAllTuples() bool
	IsAbleToUndo() bool
	IsAbleTo(cap Capability) bool

	GetSize(ctx context.Context) (int64, error)
}

// Cursor iterates tuples from Scan/Search/SearchByBitSet.
type Cursor interface {
	Next(ctx context.Context) (Tuple, bool, error)
	Close() error
}

// Constructor builds a fresh driver instance for one File meta-row, given
// its owning table and the variant-specific population logic's inputs.
type Constructor func(table *catalog.Table, file *catalog.File) (ILogicalFile, error)

// registry is the process-wide access-method registry. Variant packages
// (record, btree, vector, ...) call Register from an init() func.
var registry = struct {
	mu    sync.RWMutex
	ctors map[catalog.FileCategory]Constructor
}{ctors: make(map[catalog.FileCategory]Constructor)}

// Register installs a driver constructor for category. Calling Register
// twice for the same category is a programming error and panics.
func Register(category catalog.FileCategory, ctor Constructor) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.ctors[category]; exists {
		panic(fmt.Sprintf("logfile: driver for %s already registered", category))
	}
	registry.ctors[category] = ctor
}

// New constructs a driver instance for file's category, using table as
// the owning table context the variant needs for FileID population.
func New(table *catalog.Table, file *catalog.File) (ILogicalFile, error) {
	registry.mu.RLock()
	ctor, ok := registry.ctors[file.Category]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("logfile: no driver registered for category %s", file.Category)
	}
	return ctor(table, file)
}

// Registered reports whether a driver constructor exists for category,
// primarily for tests and capabilities-listing tooling.
func Registered(category catalog.FileCategory) bool {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	_, ok := registry.ctors[category]
	return ok
}
