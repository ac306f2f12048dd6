// Package metaboot builds the meta-database: the fixed-ID, read-only
// database holding the 14 System_* tables every other catalog object is
// itself cataloged in. Startup order is create the meta-database, then
// create each meta-table in category order, then mark everything
// Persistent — user databases are loaded lazily on first reference, not
// eagerly at boot.
//
// Meta objects get IDs counting down from -1 so they never collide with
// a user object's ascending ID sequence; the per-table column list is
// declared in schema.go via the same BurntSushi/toml struct-tag decode
// pattern internal/dbconfig uses, rather than a giant Go literal.
package metaboot

import (
	"strings"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/dbconfig"
	"catalogkernel/internal/ident"
	"catalogkernel/internal/kernelerr"
	"catalogkernel/internal/logfile"
	_ "catalogkernel/internal/logfile/btree"
	_ "catalogkernel/internal/logfile/record"
)

// MetaFixedID is the meta-database's single fixed ID, shared by every
// meta-database instance.
const MetaFixedID = 0

// sentinel hands out meta-object IDs counting down from -1, disjoint from
// every user object's ascending sequence.
type sentinel struct{ next int64 }

func newSentinel() *sentinel { return &sentinel{next: -1} }

func (s *sentinel) take() int64 {
	id := s.next
	s.next--
	return id
}

// Catalog is the bootstrapped meta-database plus direct access to each
// System_* table by name, for internal/ddlintake and the DDL layer to
// look up without re-walking Database.Tables.
type Catalog struct {
	Database *catalog.Database
	Tables   map[string]*catalog.Table
}

// Bootstrap builds the meta-database and its 14 system tables in
// category order, marking every object Persistent once construction
// completes.
func Bootstrap(path dbconfig.PathTriple) (*Catalog, error) {
	doc, err := parseSystemSchema()
	if err != nil {
		return nil, err
	}

	db := catalog.NewMetaDatabase(MetaFixedID, path)
	ids := newSentinel()

	tables := make(map[string]*catalog.Table)
	for _, name := range orderedTableNames(doc) {
		spec := doc.Table[name]
		table, err := buildSystemTable(ids, db.ID, name, spec)
		if err != nil {
			return nil, err
		}
		if err := db.AddTable(table); err != nil {
			return nil, err
		}
		tables[name] = table
	}

	markPersistent(db, tables)
	return &Catalog{Database: db, Tables: tables}, nil
}

// primaryKeyColumns names the column(s) each System_* table's primary-key
// Btree index is built over. Every table keys on "id" except AreaContent,
// which is a pure many-to-many link table with no surrogate id column.
var primaryKeyColumns = map[string][]string{
	"AreaContent": {"area_id", "object_id"},
}

// buildSystemTable constructs one System_* table as a real catalog.Table:
// its declared columns, a primary-key Btree index, and that index's backing
// File, plus the table's own Record File — the same "a table is its
// columns plus a Record File plus one File per index" shape engine.CreateTable
// builds for user tables, so a meta-table is queryable through the same
// logfile drivers rather than being a privileged, file-less special case.
func buildSystemTable(ids *sentinel, dbID int64, name string, spec systemTableSchema) (*catalog.Table, error) {
	table := catalog.NewTable(ids.take(), dbID, "System_"+name)
	for _, colSpec := range spec.Columns {
		col := catalog.NewColumn(ids.take(), table.ID, colSpec.Name, 0, columnType(colSpec.Type))
		col.Length = colSpec.Length
		col.Nullable = colSpec.Nullable
		_ = table.AddColumn(col) // system column names are unique by construction
	}

	if err := addPrimaryKeyIndex(ids, table); err != nil {
		return nil, err
	}
	if err := addRecordFile(ids, table); err != nil {
		return nil, err
	}
	return table, nil
}

// addPrimaryKeyIndex builds the unique Btree index (plus backing File)
// a system table's primaryKeyColumns declares, named and constructed the
// same way internal/engine's addBtreeIndex builds a user table's PK index:
// idx.FileID is set before logfile.New so the Btree driver's owner-index
// lookup binds to idx and the File's FileID gets persisted for reattachment.
func addPrimaryKeyIndex(ids *sentinel, table *catalog.Table) error {
	names, ok := primaryKeyColumns[strings.TrimPrefix(table.Name, "System_")]
	if !ok {
		names = []string{"id"}
	}

	keys := make([]*catalog.Key, len(names))
	for i, colName := range names {
		col, ok := table.Column(colName)
		if !ok {
			return kernelerr.New(kernelerr.KindNotSupported, kernelerr.ModuleCatalog,
				"metaboot: table %q has no column %q for its primary key", table.Name, colName)
		}
		keys[i] = catalog.NewKey(ids.take(), 0, i, col.ID, 0, catalog.SortAscending)
	}

	idx := catalog.NewIndex(ids.take(), table.ID, ident.GeneratedName("index", table.Name, ident.DiscriminatorPrimaryKeyIndex), catalog.IndexTypeBtree, keys)
	idx.IsUnique = true
	idx.IsPrimary = true
	for _, k := range keys {
		k.ParentID = idx.ID
	}
	table.AddIndex(idx)

	fileName := ident.GeneratedName("index", idx.Name, ident.DiscriminatorBackingFile)
	file := catalog.NewFile(ids.take(), table.ID, fileName, catalog.FileCategoryBtree)
	idx.FileID = file.ID
	if _, err := logfile.New(table, file); err != nil {
		return err
	}
	table.AddFile(file)
	return nil
}

// addRecordFile builds a system table's primary Record storage, the same
// call shape internal/engine's addRecordFile uses for a user table.
func addRecordFile(ids *sentinel, table *catalog.Table) error {
	file := catalog.NewFile(ids.take(), table.ID, table.Name+"_record", catalog.FileCategoryRecord)
	if _, err := logfile.New(table, file); err != nil {
		return err
	}
	table.AddFile(file)
	return nil
}

// markPersistent transitions every bootstrapped object from its
// construction-time Created status to Persistent, the steady state a
// fully booted meta-database's rows are in.
func markPersistent(db *catalog.Database, tables map[string]*catalog.Table) {
	db.Status = catalog.StatusPersistent
	for _, table := range tables {
		table.Status = catalog.StatusPersistent
		for _, col := range table.Columns {
			col.Status = catalog.StatusPersistent
		}
		for _, idx := range table.Indexes {
			idx.Status = catalog.StatusPersistent
			for _, k := range idx.Keys {
				k.Status = catalog.StatusPersistent
			}
		}
		for _, f := range table.Files {
			f.Status = catalog.StatusPersistent
		}
	}
}
