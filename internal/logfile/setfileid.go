package logfile

import (
	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
)

// currentFileIDVersion is stamped on every FileID this registry builds;
// CheckFieldType treats anything below 3 as needing the legacy
// string-length migration.
const currentFileIDVersion = 3

// PopulateRecordFields runs the Record variant's setFileID rule: one OID
// field at position 0, then all non-virtual table fields, with any
// field whose length is at most fixedSizeMax given a FIXED hint. It
// returns the populated FileID and the position-indexed source-column
// slice CheckFieldType expects (position 0 is the OID field, so it is
// nil).
func PopulateRecordFields(table *catalog.Table, fixedSizeMax int) (*fileid.FileID, []*catalog.Column) {
	id := fileid.New()
	id.SetInt(fileid.KeyVersion, currentFileIDVersion)
	id.SetInt(fileid.KeyFieldCount, len(table.Columns)+1)
	id.SetInt(fileid.KeyKeyFieldCount, 0)

	sourceColumns := make([]*catalog.Column, len(table.Columns)+1)
	for i, col := range table.Columns {
		position := i + 1
		id.SetIndexedInt(fileid.KeyFieldType, position, int(col.Type))
		id.SetIndexedInt(fileid.KeyFieldLength, position, col.Length)
		sourceColumns[position] = col
		if col.Length > 0 && col.Length <= fixedSizeMax {
			id.SetIndexedString(fileid.KeyFieldHint, position, "fixed")
		}
	}
	return id, sourceColumns
}

// PopulateKeyFields runs the shared key-field population rule every
// ordered-key variant (Btree, Vector, KdTree) uses: the key columns first
// at positions 1..len(keys), descending keys get FieldSortOrder set, then
// the index's own virtual fields. uniqueness is the fileid.Uniqueness to
// record at KeyUniqueness: OnlyKey when the declared key alone is
// unique, KeyField when the composite of key+value is the storage key.
func PopulateKeyFields(idx *catalog.Index, resolveColumn func(columnID int64) *catalog.Column, uniqueness fileid.Uniqueness) (*fileid.FileID, []*catalog.Column) {
	id := fileid.New()
	id.SetInt(fileid.KeyVersion, currentFileIDVersion)
	id.SetInt(fileid.KeyKeyFieldCount, len(idx.Keys))
	id.SetInt(fileid.KeyUniqueness, int(uniqueness))

	total := 1 + len(idx.Keys) + len(idx.VirtualFields)
	id.SetInt(fileid.KeyFieldCount, total)

	sourceColumns := make([]*catalog.Column, total)
	for i, key := range idx.Keys {
		position := i + 1
		col := resolveColumn(key.ColumnID)
		if col != nil {
			id.SetIndexedInt(fileid.KeyFieldType, position, int(col.Type))
			id.SetIndexedInt(fileid.KeyFieldLength, position, col.Length)
			sourceColumns[position] = col
		}
		if key.Order == catalog.SortDescending {
			id.SetIndexedBool(fileid.KeyFieldSortOrder, position, true)
		}
	}
	for i, vf := range idx.VirtualFields {
		position := 1 + len(idx.Keys) + i
		id.SetIndexedInt(fileid.KeyFieldType, position, int(vf.Type))
	}
	return id, sourceColumns
}
