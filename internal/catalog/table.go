package catalog

import "catalogkernel/internal/kernelerr"

// Table owns Columns, Constraints, Indexes, and Files. Column positions
// are assigned consecutively as columns are added, so that even creating
// thousands of columns one at a time still yields strictly consecutive
// positions. AddColumn does not assign Column.FieldID; a column keeps
// whatever FieldID it was given before being added.
type Table struct {
	Object

	Columns     []*Column
	Constraints []*Constraint
	Indexes     []*Index
	Files       []*File
	AreaIDs     []int64

	nextPosition int
	byName       map[string]int // column name -> index into Columns, for O(1) uniqueness checks
}

// NewTable builds an empty table.
func NewTable(id, parentID int64, name string) *Table {
	return &Table{
		Object: Object{ID: id, ParentID: parentID, Name: name, Category: CategoryTable, Scope: ScopePermanent, Status: StatusCreated},
		byName: make(map[string]int),
	}
}

// AddColumn appends col, assigning it the next consecutive position, and
// enforces name uniqueness within the parent scope, case-sensitive.
func (t *Table) AddColumn(col *Column) error {
	if t.byName == nil {
		t.byName = make(map[string]int)
	}
	if _, exists := t.byName[col.Name]; exists {
		return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
			"column %q already exists on table %q", col.Name, t.Name)
	}
	col.Position = t.nextPosition
	t.nextPosition++
	t.byName[col.Name] = len(t.Columns)
	t.Columns = append(t.Columns, col)
	return nil
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.Columns[i], true
}

// AddConstraint appends c after validating it, assigning it the next
// declaration-order position.
func (t *Table) AddConstraint(c *Constraint) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.Position = len(t.Constraints)
	t.Constraints = append(t.Constraints, c)
	return nil
}

// AddIndex appends idx to the table's index list.
func (t *Table) AddIndex(idx *Index) {
	t.Indexes = append(t.Indexes, idx)
}

// AddFile appends f to the table's backing-file list (a table typically
// owns one Record file plus one File per index).
func (t *Table) AddFile(f *File) {
	t.Files = append(t.Files, f)
}

// RowCounts summarizes the table's child-object counts, mirroring
// System_Column/System_Key/System_Constraint/System_Index/System_File.
type RowCounts struct {
	Columns     int
	Keys        int
	Constraints int
	Indexes     int
	Files       int
}

// Counts returns the table's current child-object row counts.
func (t *Table) Counts() RowCounts {
	keys := 0
	for _, idx := range t.Indexes {
		keys += len(idx.Keys)
	}
	return RowCounts{
		Columns:     len(t.Columns),
		Keys:        keys,
		Constraints: len(t.Constraints),
		Indexes:     len(t.Indexes),
		Files:       len(t.Files),
	}
}
