package catalog

// FieldCategory distinguishes an ordinary column-backed field from a
// virtual (function-projection) field such as min/max, count, score, or
// neighbor-id, which exist only inside a File and have no Column.
type FieldCategory int

const (
	FieldCategoryColumn FieldCategory = iota
	FieldCategoryKey
	FieldCategoryVirtual
)

// FieldFunction names the function a virtual field projects: min, max,
// count, neighbor-id, or neighbor-distance.
type FieldFunction int

const (
	FieldFunctionNone FieldFunction = iota
	FieldFunctionMin
	FieldFunctionMax
	FieldFunctionCount
	FieldFunctionScore
	FieldFunctionTermFrequency
	FieldFunctionNeighborID
	FieldFunctionNeighborDistance
	FieldFunctionClusterID
	FieldFunctionClusterKeyword
)

// Permission gates whether a field is visible/writable through the
// planner-facing interface versus internal-only (e.g. an OID field is
// readable but never directly writable by DML).
type Permission int

const (
	PermissionReadWrite Permission = iota
	PermissionReadOnly
	PermissionHidden
)

// Field is a File's storage-level projection of either a Column
// (FieldCategoryColumn), a Key (FieldCategoryKey), or a synthesized
// function projection (FieldCategoryVirtual). Each Field optionally
// references a source Column or else declares itself a virtual field.
type Field struct {
	Object

	Position   int
	Category   FieldCategory
	Function   FieldFunction
	Permission Permission

	SourceColumnID int64 // 0 when Category == FieldCategoryVirtual
	KeyID          int64 // 0 unless Category == FieldCategoryKey

	Type   ColumnType
	Length int
}

// IsObjectID reports whether this is field position 0, the mandatory OID
// field every File must have.
func (f *Field) IsObjectID() bool { return f.Position == 0 }

// NewColumnField builds a field projecting a table column into a file at
// the given position.
func NewColumnField(id, parentID int64, position int, col *Column) *Field {
	return &Field{
		Object: Object{ID: id, ParentID: parentID, Category: CategoryField, Scope: ScopePermanent, Status: StatusCreated},
		Position: position, Category: FieldCategoryColumn, Permission: PermissionReadWrite,
		SourceColumnID: col.ID, Type: col.Type, Length: col.Length,
	}
}

// NewVirtualField builds a function-projection field with no backing
// column, e.g. min/max/count/score/neighbor-id.
func NewVirtualField(id, parentID int64, position int, fn FieldFunction, typ ColumnType) *Field {
	return &Field{
		Object: Object{ID: id, ParentID: parentID, Category: CategoryField, Scope: ScopePermanent, Status: StatusCreated},
		Position: position, Category: FieldCategoryVirtual, Function: fn,
		Permission: PermissionReadOnly, Type: typ,
	}
}

// NewObjectIDField builds the mandatory OID field at position 0.
func NewObjectIDField(id, parentID int64) *Field {
	return &Field{
		Object: Object{ID: id, ParentID: parentID, Category: CategoryField, Scope: ScopePermanent, Status: StatusCreated},
		Position: 0, Category: FieldCategoryVirtual, Permission: PermissionHidden, Type: ColumnTypeBigInt,
	}
}
