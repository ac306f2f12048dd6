package logfile

import (
	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
)

// wideCharSize mirrors the per-character storage width of a wide
// character, used to recompute a string field's byte length from a
// column's declared character count.
const wideCharSize = 2

// CheckFieldType applies the field-type migration: when a persisted
// FileID has version < 3, string-field length and encoding may be
// inconsistent. For each string field, if the owning column is
// UniqueIdentifier, length is rewritten from the column's canonical
// length; otherwise, if no encoding form is recorded (or it is Unknown),
// length is rewritten to wideCharSize * column.Length. Unlimited columns
// are never rewritten. The FileID is mutated in place; the caller is
// responsible for persisting it on next write.
//
// sourceColumns maps field position to the Column it projects (position
// 0, the OID field, maps to nil); callers get this from the Fields list
// they built at setFileID time, not by re-deriving it from the type
// alone, since two string columns can share a ColumnType.
func CheckFieldType(id *fileid.FileID, sourceColumns []*catalog.Column) {
	version, err := id.GetInt(fileid.KeyVersion)
	if err != nil {
		return
	}
	if version >= 3 {
		return
	}

	for i, col := range sourceColumns {
		if col == nil {
			continue
		}
		typ, err := id.GetIndexedInt(fileid.KeyFieldType, i)
		if err != nil {
			continue
		}
		colType := catalog.ColumnType(typ)
		if !colType.IsString() || col.Type == catalog.ColumnTypeUnlimited {
			continue
		}

		if colType == catalog.ColumnTypeUniqueIdentifier {
			id.SetIndexedInt(fileid.KeyFieldLength, i, col.Length)
			continue
		}

		encoding, err := id.GetIndexedInt(fileid.KeyEncodingForm, i)
		if err != nil || fileid.EncodingForm(encoding) == fileid.EncodingUnknown {
			id.SetIndexedInt(fileid.KeyFieldLength, i, wideCharSize*col.Length)
		}
	}
}
