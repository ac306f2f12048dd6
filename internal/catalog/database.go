package catalog

import (
	"context"
	"sync"
	"time"

	"catalogkernel/internal/dbconfig"
	"catalogkernel/internal/kernelerr"
	"catalogkernel/internal/lock"
)

// Database is the top-level container: a path triple, a concurrent cache
// of loaded schema objects, an attribute flag word, and the per-database
// lock manager every getLocked-style call routes through.
type Database struct {
	Object

	Path      dbconfig.PathTriple
	Attribute dbconfig.Attribute
	MasterURL string

	mu      sync.RWMutex
	tables  map[int64]*Table
	areas   map[int64]*Area
	locks   *lock.Manager
	cache   map[int64]*cacheEntry
}

// cacheEntry tracks a loaded object plus its freeze bit for the opaque
// freeze/melt cycle.
type cacheEntry struct {
	object any
	frozen bool
	blob   []byte // set only while frozen
}

// NewDatabase constructs an empty database container with its own lock
// manager, ready for tables/areas to be added.
func NewDatabase(id int64, name string, path dbconfig.PathTriple, attr dbconfig.Attribute) *Database {
	return &Database{
		Object:  Object{ID: id, Name: name, Category: CategoryDatabase, Scope: ScopePermanent, Status: StatusCreated, DatabaseID: id},
		Path:    path.Resolved(),
		Attribute: attr,
		tables:  make(map[int64]*Table),
		areas:   make(map[int64]*Area),
		locks:   lock.NewManager(),
		cache:   make(map[int64]*cacheEntry),
	}
}

// NewMetaDatabase constructs the fixed-ID, read-only meta-database: a
// single fixed ID shared by every meta-database instance, always
// read-only.
func NewMetaDatabase(fixedID int64, path dbconfig.PathTriple) *Database {
	db := NewDatabase(fixedID, "SystemTable", path, dbconfig.AttributeOnline|dbconfig.AttributeReadOnly)
	db.Scope = ScopeMeta
	return db
}

// AddTable registers t in the database's table cache, enforcing
// name-uniqueness within the database scope.
func (db *Database) AddTable(t *Table) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.tables {
		if existing.Name == t.Name && existing.Status.Visible() {
			return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
				"table %q already exists in database %q", t.Name, db.Name)
		}
	}
	t.DatabaseID = db.ID
	db.tables[t.ID] = t
	return nil
}

// Table looks up a table by ID from the live cache.
func (db *Database) Table(id int64) (*Table, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	t, ok := db.tables[id]
	return t, ok
}

// TableByName looks up a table by name from the live cache.
func (db *Database) TableByName(name string) (*Table, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, t := range db.tables {
		if t.Name == name && t.Status.Visible() {
			return t, true
		}
	}
	return nil, false
}

// DropTable marks a table Deleted without evicting it from the cache —
// post-commit destruction (file removal, ReallyDeleted transition) is a
// separate step the caller drives once files are actually destroyed.
func (db *Database) DropTable(id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, ok := db.tables[id]
	if !ok {
		return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog, "no table with id %d in database %q", id, db.Name)
	}
	t.MarkDeleted()
	return nil
}

// AddArea registers a named area.
func (db *Database) AddArea(a *Area) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.areas[a.ID] = a
}

// Area looks up an area by ID.
func (db *Database) Area(id int64) (*Area, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	a, ok := db.areas[id]
	return a, ok
}

// ManipulateCategory names which child-object map getLocked needs to
// reach to satisfy a request.
type ManipulateCategory int

const (
	ManipulateTable ManipulateCategory = iota
	ManipulateTuple
)

// GetLocked sequentially acquires the database lock, then (if requesting
// table or tuple level) the named table lock, then (for tuple level) a
// per-tuple lock, returning only after every level succeeds — always in
// the fixed database, then table, then tuple order. The returned
// Unlocker releases the whole chain.
func (db *Database) GetLocked(ctx context.Context, tableName string, category ManipulateCategory, mode lock.Mode, timeout time.Duration) (lock.Unlocker, error) {
	steps := []lock.ChainStep{
		{Level: lock.LevelDatabase, Name: db.Name, Mode: lock.Shared, Timeout: timeout},
	}
	if category == ManipulateTable || category == ManipulateTuple {
		steps = append(steps, lock.ChainStep{Level: lock.LevelTable, Name: tableName, Mode: mode, Timeout: timeout})
	}
	if category == ManipulateTuple {
		steps = append(steps, lock.ChainStep{Level: lock.LevelTuple, Name: tableName, Mode: mode, Timeout: timeout})
	}
	return db.locks.AcquireChain(ctx, steps...)
}

// Freeze marks a loaded object's cache entry frozen, discarding its
// reconstructible live graph in favor of the serialized blob; melt
// (Melt) reverses this. Freezing an object that is not cached creates a
// frozen entry holding blob; freezing an already frozen object replaces
// its blob. Freeze never returns an error.
func (db *Database) Freeze(objectID int64, blob []byte) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, ok := db.cache[objectID]
	if !ok {
		db.cache[objectID] = &cacheEntry{frozen: true, blob: blob}
		return
	}
	e.frozen = true
	e.blob = blob
	e.object = nil
}

// Melt rematerializes a frozen object from its blob using rebuild, and
// reports the rebuilt object. If the entry isn't frozen, the already-live
// object is returned unchanged.
func (db *Database) Melt(objectID int64, rebuild func(blob []byte) any) (any, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, ok := db.cache[objectID]
	if !ok {
		return nil, false
	}
	if !e.frozen {
		return e.object, true
	}
	e.object = rebuild(e.blob)
	e.frozen = false
	e.blob = nil
	return e.object, true
}

// IsFrozen reports whether objectID's cache entry is currently frozen.
func (db *Database) IsFrozen(objectID int64) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	e, ok := db.cache[objectID]
	return ok && e.frozen
}

// PathMove is the staged {prev,post} path change for moving a database's
// data/logical-log/system directories: applied transactionally and
// logged so recovery can replay the move from the pair alone.
type PathMove struct {
	Prev dbconfig.PathTriple
	Post dbconfig.PathTriple
}

// SetPath stages and applies a path change, returning the PathMove log
// record the caller persists via internal/catalog's logrecord machinery.
func (db *Database) SetPath(post dbconfig.PathTriple) PathMove {
	db.mu.Lock()
	defer db.mu.Unlock()
	move := PathMove{Prev: db.Path, Post: post.Resolved()}
	db.Path = move.Post
	return move
}
