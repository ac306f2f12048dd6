package catalog

import (
	"catalogkernel/internal/ident"
	"catalogkernel/internal/kernelerr"
)

// Validate checks a table's structural invariants: unique column names
// (enforced incrementally by AddColumn already, rechecked here for
// defense against direct field mutation), valid identifiers, and that
// every constraint's column references exist. A parent Validate walks its
// children and returns the first error encountered.
func (t *Table) Validate() error {
	if err := ident.Validate(t.Name); err != nil {
		return err
	}
	columnIDs := make(map[int64]bool, len(t.Columns))
	columnNames := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if err := ident.Validate(c.Name); err != nil {
			return err
		}
		if columnNames[c.Name] {
			return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
				"column %q already exists on table %q", c.Name, t.Name)
		}
		columnNames[c.Name] = true
		columnIDs[c.ID] = true
	}
	for _, c := range t.Constraints {
		if err := c.Validate(); err != nil {
			return err
		}
		for _, colID := range c.ColumnIDs {
			if !columnIDs[colID] {
				return columnNotFoundError(t.Name, c.Name, colID)
			}
		}
	}
	return nil
}

func columnNotFoundError(tableName, constraintName string, columnID int64) error {
	return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
		"constraint %q on table %q references unknown column id %d", constraintName, tableName, columnID)
}
