// Package record implements the Record (heap) logical-file variant: the
// one File every table owns that carries every declared column plus the
// mandatory OID field at position 0. It is the one variant backed by a
// real SQL engine rather than internal/logfile's shared MemStore, since
// a heap file is exactly what database/sql plus a MySQL-compatible
// driver already gives us — using github.com/go-sql-driver/mysql for
// the one variant that needs durable, queryable storage rather than a
// capability-profile-only stub.
package record

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/logfile"
	"catalogkernel/internal/predicate"
)

// fixedSizeMax mirrors Schema_FixedSizeMax: a string field at or under
// this length gets a FIXED storage hint instead of variable-length.
const fixedSizeMax = 255

func init() {
	logfile.Register(catalog.FileCategoryRecord, New)
}

// File is the Record variant: every column of its owning table, addressed
// by an auto-incrementing OID, stored in one backing SQL table.
type File struct {
	logfile.Base

	mu            sync.Mutex
	db            *sql.DB
	tableName     string
	sourceColumns []*catalog.Column
	nextOID       int64
}

// New constructs a Record driver for file's owning table, running the
// variant's setFileID population rule immediately: a File is opened
// purely from its FileID. If file.FileIDBlob already carries a persisted
// FileID (a File attached from an earlier process, or one a migration
// test hand-built at a pre-3 layout version), that FileID is reattached
// and run through CheckFieldType instead of being rebuilt from scratch;
// otherwise a fresh current-version FileID is populated and persisted
// back onto file.FileIDBlob for the next attach.
func New(table *catalog.Table, file *catalog.File) (logfile.ILogicalFile, error) {
	id, sourceColumns := logfile.PopulateRecordFields(table, fixedSizeMax)

	attached, hasAttached, err := logfile.AttachedFileID(file)
	if err != nil {
		return nil, err
	}
	if hasAttached {
		id = attached
	}
	logfile.CheckFieldType(id, sourceColumns)
	if !hasAttached {
		if err := logfile.PersistFileID(file, id); err != nil {
			return nil, err
		}
	}

	f := &File{
		Base:          logfile.NewBase(table, file, id),
		tableName:     backingTableName(table),
		sourceColumns: sourceColumns,
	}
	return f, nil
}

// Open attaches a live *sql.DB to the driver. Record is the only variant
// that needs an actual connection, and the only one with an Open method.
func (f *File) Open(db *sql.DB) { f.mu.Lock(); f.db = db; f.mu.Unlock() }

func backingTableName(table *catalog.Table) string {
	return fmt.Sprintf("record_%d", table.ID)
}

// Create issues the backing CREATE TABLE in addition to Base's FileID
// bookkeeping.
func (f *File) Create(ctx context.Context, id *fileid.FileID) error {
	if err := f.Base.Create(ctx, id); err != nil {
		return err
	}
	if f.db == nil {
		return nil
	}
	var cols []string
	cols = append(cols, "oid BIGINT PRIMARY KEY AUTO_INCREMENT")
	for _, col := range f.sourceColumns {
		if col == nil {
			continue
		}
		cols = append(cols, fmt.Sprintf("`%s` %s", col.Name, sqlType(col)))
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (%s)", f.tableName, strings.Join(cols, ", "))
	_, err := f.db.ExecContext(ctx, stmt)
	return err
}

func sqlType(col *catalog.Column) string {
	switch col.Type {
	case catalog.ColumnTypeInt:
		return "INT"
	case catalog.ColumnTypeBigInt:
		return "BIGINT"
	case catalog.ColumnTypeFloat:
		return "FLOAT"
	case catalog.ColumnTypeDouble:
		return "DOUBLE"
	case catalog.ColumnTypeChar:
		return fmt.Sprintf("CHAR(%d)", col.Length)
	case catalog.ColumnTypeVarChar, catalog.ColumnTypeNVarChar:
		return fmt.Sprintf("VARCHAR(%d)", col.Length)
	case catalog.ColumnTypeUniqueIdentifier:
		return "CHAR(36)"
	case catalog.ColumnTypeBinary:
		return fmt.Sprintf("VARBINARY(%d)", col.Length)
	case catalog.ColumnTypeDateTime:
		return "DATETIME"
	case catalog.ColumnTypeUnlimited:
		return "LONGBLOB"
	default:
		return "VARCHAR(255)"
	}
}

func (f *File) Destroy(ctx context.Context) error {
	if f.db != nil {
		if _, err := f.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS `%s`", f.tableName)); err != nil {
			return err
		}
	}
	return f.Base.Destroy(ctx)
}

func (f *File) Flush(ctx context.Context) error { return nil }
func (f *File) Recover(ctx context.Context, pointInTime int64) error { return nil }
func (f *File) Restore(ctx context.Context, pointInTime int64) error { return nil }
func (f *File) Sync(ctx context.Context) (bool, bool, error) { return false, false, nil }

func (f *File) columnNames() []string {
	names := make([]string, 0, len(f.sourceColumns))
	for _, col := range f.sourceColumns {
		if col != nil {
			names = append(names, col.Name)
		}
	}
	return names
}

// Insert appends tuple, letting the backing store assign the OID.
func (f *File) Insert(ctx context.Context, tuple logfile.Tuple) error {
	if f.db == nil {
		return fmt.Errorf("record: file not opened against a connection")
	}
	names := f.columnNames()
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = "?"
		args[i] = tuple[name]
	}
	stmt := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)", f.tableName,
		quoteAll(names), strings.Join(placeholders, ", "))
	_, err := f.db.ExecContext(ctx, stmt, args...)
	return err
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("`%s`", n)
	}
	return strings.Join(quoted, ", ")
}

// Update rewrites the row identified by key["oid"].
func (f *File) Update(ctx context.Context, key logfile.Tuple, tuple logfile.Tuple) error {
	if f.db == nil {
		return fmt.Errorf("record: file not opened against a connection")
	}
	names := f.columnNames()
	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		sets[i] = fmt.Sprintf("`%s` = ?", name)
		args = append(args, tuple[name])
	}
	args = append(args, key["oid"])
	stmt := fmt.Sprintf("UPDATE `%s` SET %s WHERE oid = ?", f.tableName, strings.Join(sets, ", "))
	_, err := f.db.ExecContext(ctx, stmt, args...)
	return err
}

// Delete removes the row identified by key["oid"].
func (f *File) Delete(ctx context.Context, key logfile.Tuple) error {
	if f.db == nil {
		return fmt.Errorf("record: file not opened against a connection")
	}
	_, err := f.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM `%s` WHERE oid = ?", f.tableName), key["oid"])
	return err
}

// Fetch retrieves the row identified by key["oid"].
func (f *File) Fetch(ctx context.Context, key logfile.Tuple) (logfile.Tuple, bool, error) {
	if f.db == nil {
		return nil, false, fmt.Errorf("record: file not opened against a connection")
	}
	names := f.columnNames()
	row := f.db.QueryRowContext(ctx, fmt.Sprintf("SELECT oid, %s FROM `%s` WHERE oid = ?", quoteAll(names), f.tableName), key["oid"])
	return f.scanRow(row.Scan, names)
}

func (f *File) scanRow(scan func(dest ...any) error, names []string) (logfile.Tuple, bool, error) {
	dest := make([]any, len(names)+1)
	var oid int64
	dest[0] = &oid
	values := make([]sql.NullString, len(names))
	for i := range values {
		dest[i+1] = &values[i]
	}
	if err := scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	t := logfile.Tuple{"oid": oid}
	for i, name := range names {
		if values[i].Valid {
			t[name] = values[i].String
		}
	}
	return t, true, nil
}

// Scan returns a cursor over every row, in storage order.
func (f *File) Scan(ctx context.Context) (logfile.Cursor, error) {
	if f.db == nil {
		return nil, fmt.Errorf("record: file not opened against a connection")
	}
	names := f.columnNames()
	rows, err := f.db.QueryContext(ctx, fmt.Sprintf("SELECT oid, %s FROM `%s`", quoteAll(names), f.tableName))
	if err != nil {
		return nil, err
	}
	return &sqlCursor{rows: rows, names: names, file: f}, nil
}

// Search does not push any predicate down: Record always reports
// IsAbleToSearch == false, so the planner never calls this.
func (f *File) Search(ctx context.Context, pred *predicate.Predicate) (logfile.Cursor, error) {
	return nil, fmt.Errorf("record: search is not supported, use Scan with a planner-side filter")
}

func (f *File) SearchByBitSet(ctx context.Context, input logfile.BitSet) (logfile.Cursor, error) {
	return nil, fmt.Errorf("record: search-by-bitset is not supported")
}

func (f *File) GetByBitSet(ctx context.Context) (logfile.BitSet, error) {
	return nil, fmt.Errorf("record: get-by-bitset is not supported")
}

type sqlCursor struct {
	rows  *sql.Rows
	names []string
	file  *File
}

func (c *sqlCursor) Next(ctx context.Context) (logfile.Tuple, bool, error) {
	if !c.rows.Next() {
		return nil, false, c.rows.Err()
	}
	return c.file.scanRow(c.rows.Scan, c.names)
}

func (c *sqlCursor) Close() error { return c.rows.Close() }

// Capability answers. Record is the workhorse heap: scannable, fetchable
// by OID, not predicate-searchable (no index structure of its own), not
// bitset-capable, not sortable, and it reports every tuple (no skip).
func (f *File) IsAbleToScan(allTuples bool) bool          { return true }
func (f *File) IsAbleToFetch() bool                       { return true }
func (f *File) IsAbleToSearch(pred *predicate.Predicate) bool { return false }
func (f *File) IsAbleToGetByBitSet() bool                 { return false }
func (f *File) IsAbleToSearchByBitSet() bool              { return false }
func (f *File) IsAbleToSort() bool                        { return false }
func (f *File) IsHasFunctionField(fn logfile.FunctionField) bool { return false }
func (f *File) GetSkipInsertType() logfile.SkipInsertType  { return logfile.SkipInsertNone }
func (f *File) GetFetchKey(ctx context.Context) ([]string, error) { return []string{"oid"}, nil }
func (f *File) IsKeyUnique() bool                         { return true }
func (f *File) HasAllTuples() bool                        { return true }
