// Package engine wires internal/metaboot, internal/ddlintake, and
// internal/catalog together into the operations cmd/catalogd's
// subcommands exercise end to end: bootstrap the meta-database, create a
// user database, materialize a table from a CREATE TABLE statement,
// describe/drop it, and report a File's capability matrix.
//
// This is a thin façade in the same shape as a CLI driving its storage
// and parsing packages directly without an intermediate service layer;
// "engine" just names the façade the CLI's RunE functions call into
// instead of repeating wiring in main.go per command.
package engine

import (
	"fmt"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/dbconfig"
	"catalogkernel/internal/ddlintake"
	"catalogkernel/internal/ident"
	"catalogkernel/internal/logfile"
	_ "catalogkernel/internal/logfile/array"
	_ "catalogkernel/internal/logfile/bitmap"
	_ "catalogkernel/internal/logfile/btree"
	_ "catalogkernel/internal/logfile/fulltext"
	_ "catalogkernel/internal/logfile/inverted"
	_ "catalogkernel/internal/logfile/kdtree"
	_ "catalogkernel/internal/logfile/record"
	_ "catalogkernel/internal/logfile/vector"
	"catalogkernel/internal/metaboot"
)

// Engine holds the bootstrapped meta-database plus every user database
// created in this process, and allocates ascending IDs for user objects
// (disjoint from metaboot's descending sentinel IDs).
type Engine struct {
	Meta      *metaboot.Catalog
	Databases map[string]*catalog.Database

	analyzer *ddlintake.Analyzer
	nextID   int64
}

// New constructs an Engine around an already-bootstrapped meta-database.
func New(meta *metaboot.Catalog) *Engine {
	return &Engine{
		Meta:      meta,
		Databases: make(map[string]*catalog.Database),
		analyzer:  ddlintake.New(),
		nextID:    1,
	}
}

// Bootstrap builds the meta-database and returns a ready Engine. The CLI
// calls it once at startup, before running any subcommand.
func Bootstrap(path dbconfig.PathTriple) (*Engine, error) {
	meta, err := metaboot.Bootstrap(path)
	if err != nil {
		return nil, fmt.Errorf("engine: bootstrap: %w", err)
	}
	return New(meta), nil
}

func (e *Engine) takeID() int64 {
	id := e.nextID
	e.nextID++
	return id
}

// CreateDatabase registers a new user database under name.
func (e *Engine) CreateDatabase(name string, path dbconfig.PathTriple) (*catalog.Database, error) {
	if _, exists := e.Databases[name]; exists {
		return nil, fmt.Errorf("engine: database %q already exists", name)
	}
	db := catalog.NewDatabase(e.takeID(), name, path, dbconfig.AttributeOnline)
	e.Databases[name] = db
	return db, nil
}

// Database looks up a user database by name.
func (e *Engine) Database(name string) (*catalog.Database, error) {
	db, ok := e.Databases[name]
	if !ok {
		return nil, fmt.Errorf("engine: no database %q", name)
	}
	return db, nil
}

// CreateTable parses a CREATE TABLE statement via internal/ddlintake and
// materializes the resulting table into db: columns, a primary-key
// constraint when declared, a Btree index plus File per declared index,
// and one Record File as the table's primary storage.
func (e *Engine) CreateTable(dbName, createTableSQL string) (*catalog.Table, error) {
	db, err := e.Database(dbName)
	if err != nil {
		return nil, err
	}

	intent, err := e.analyzer.AnalyzeCreateTable(createTableSQL)
	if err != nil {
		return nil, err
	}

	table := catalog.NewTable(e.takeID(), db.ID, intent.TableName)
	for _, colIntent := range intent.Columns {
		col := catalog.NewColumn(e.takeID(), table.ID, colIntent.Name, 0, colIntent.Type)
		col.Length = colIntent.Length
		col.Nullable = colIntent.Nullable
		if err := table.AddColumn(col); err != nil {
			return nil, err
		}
	}

	// Foreign-key and check constraints need cross-table resolution and a
	// constraint-expression evaluator respectively, both outside this
	// harness's scope; only PrimaryKey/Unique are materialized here, each
	// backed by a unique Btree index.
	for _, c := range intent.Constraints {
		if c.Type != catalog.ConstraintTypePrimaryKey && c.Type != catalog.ConstraintTypeUnique {
			continue
		}
		columnIDs, err := e.resolveColumnIDs(table, c.Columns)
		if err != nil {
			return nil, err
		}
		var constraint *catalog.Constraint
		if c.Type == catalog.ConstraintTypePrimaryKey {
			constraint = catalog.NewPrimaryKeyConstraint(e.takeID(), table.ID, c.Name, 0, columnIDs)
		} else {
			constraint = &catalog.Constraint{
				Object: catalog.Object{
					ID: e.takeID(), ParentID: table.ID, Name: c.Name,
					Category: catalog.CategoryConstraint, Scope: catalog.ScopePermanent, Status: catalog.StatusCreated,
				},
				Type:      c.Type,
				ColumnIDs: columnIDs,
			}
		}
		if err := table.AddConstraint(constraint); err != nil {
			return nil, err
		}
		if err := e.addBtreeIndex(table, c.Name, columnIDs, true); err != nil {
			return nil, err
		}
	}

	for _, idxIntent := range intent.Indexes {
		columnIDs, err := e.resolveColumnIDs(table, idxIntent.Columns)
		if err != nil {
			return nil, err
		}
		if err := e.addBtreeIndex(table, idxIntent.Name, columnIDs, idxIntent.Unique); err != nil {
			return nil, err
		}
	}

	if err := e.addRecordFile(table); err != nil {
		return nil, err
	}

	if err := db.AddTable(table); err != nil {
		return nil, err
	}
	table.Status = catalog.StatusPersistent
	for _, col := range table.Columns {
		col.Status = catalog.StatusPersistent
	}
	return table, nil
}

func (e *Engine) resolveColumnIDs(table *catalog.Table, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		col, ok := table.Column(name)
		if !ok {
			return nil, fmt.Errorf("engine: column %q not found on table %q", name, table.Name)
		}
		ids = append(ids, col.ID)
	}
	return ids, nil
}

// addBtreeIndex registers a Btree index plus its backing File, naming the
// File the same generated-name scheme (internal/ident.GeneratedName) the
// original catalog used for every auto-synthesized object. The driver is
// built eagerly via logfile.New, same rationale as addRecordFile: idx.FileID
// is set before that call so btree.New's owner-Index lookup (table.Indexes
// matched against file.ID) can bind the driver to idx and report its real
// uniqueness, and the resulting FileID gets persisted onto file.FileIDBlob
// for later reattachment (e.g. a Capabilities() query against the same File).
func (e *Engine) addBtreeIndex(table *catalog.Table, name string, columnIDs []int64, unique bool) error {
	keys := make([]*catalog.Key, len(columnIDs))
	for i, colID := range columnIDs {
		keys[i] = catalog.NewKey(e.takeID(), 0, i, colID, 0, catalog.SortAscending)
	}
	idx := catalog.NewIndex(e.takeID(), table.ID, name, catalog.IndexTypeBtree, keys)
	idx.IsUnique = unique
	for _, k := range keys {
		k.ParentID = idx.ID
	}
	table.AddIndex(idx)

	fileName := ident.GeneratedName("index", name, ident.DiscriminatorBackingFile)
	file := catalog.NewFile(e.takeID(), table.ID, fileName, catalog.FileCategoryBtree)
	idx.FileID = file.ID
	if _, err := logfile.New(table, file); err != nil {
		return err
	}
	table.AddFile(file)
	return nil
}

// addRecordFile registers the table's primary Record storage. Building
// the driver here (rather than lazily) catches any FileID-population
// failure (e.g. the FileID failing to serialize) at create-table time;
// actually opening a database/sql connection is deferred to whichever
// caller wants to read/write tuples, via the record package's own Open.
func (e *Engine) addRecordFile(table *catalog.Table) error {
	file := catalog.NewFile(e.takeID(), table.ID, table.Name+"_record", catalog.FileCategoryRecord)
	if _, err := logfile.New(table, file); err != nil {
		return err
	}
	table.AddFile(file)
	return nil
}

// DropTable marks a table deleted without destroying its backing files —
// mirrors catalog.Database.DropTable's own staged-destruction contract.
func (e *Engine) DropTable(dbName, tableName string) error {
	db, err := e.Database(dbName)
	if err != nil {
		return err
	}
	table, ok := db.TableByName(tableName)
	if !ok {
		return fmt.Errorf("engine: no table %q in database %q", tableName, dbName)
	}
	return db.DropTable(table.ID)
}

// FileCapabilities reports the capability matrix of a table's named File,
// the data the "capabilities" subcommand prints.
type FileCapabilities struct {
	Name            string
	Category        catalog.FileCategory
	Scan            bool
	Fetch           bool
	Search          bool
	GetByBitSet     bool
	SearchByBitSet  bool
	Sort            bool
	KeyUnique       bool
	HasAllTuples    bool
	SkipInsertType  logfile.SkipInsertType
}

// Capabilities looks up fileName on table tableName in database dbName
// and reports its capability matrix.
func (e *Engine) Capabilities(dbName, tableName, fileName string) (*FileCapabilities, error) {
	db, err := e.Database(dbName)
	if err != nil {
		return nil, err
	}
	table, ok := db.TableByName(tableName)
	if !ok {
		return nil, fmt.Errorf("engine: no table %q in database %q", tableName, dbName)
	}
	var row *catalog.File
	for _, f := range table.Files {
		if f.Name == fileName {
			row = f
			break
		}
	}
	if row == nil {
		return nil, fmt.Errorf("engine: no file %q on table %q", fileName, tableName)
	}
	driver, err := logfile.New(table, row)
	if err != nil {
		return nil, err
	}
	return &FileCapabilities{
		Name:           row.Name,
		Category:       row.Category,
		Scan:           driver.IsAbleToScan(true),
		Fetch:          driver.IsAbleToFetch(),
		Search:         driver.IsAbleToSearch(nil),
		GetByBitSet:    driver.IsAbleToGetByBitSet(),
		SearchByBitSet: driver.IsAbleToSearchByBitSet(),
		Sort:           driver.IsAbleToSort(),
		KeyUnique:      driver.IsKeyUnique(),
		HasAllTuples:   driver.HasAllTuples(),
		SkipInsertType: driver.GetSkipInsertType(),
	}, nil
}
