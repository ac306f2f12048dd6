package catalog

import (
	"github.com/google/uuid"

	"catalogkernel/internal/coldefault"
	"catalogkernel/internal/kernelerr"
)

// ColumnType is the SQL-level declared type. UniqueIdentifier and
// Unlimited are called out specifically because checkFieldType (see
// internal/logfile's field-type migration) special-cases them.
type ColumnType int

const (
	ColumnTypeInt ColumnType = iota
	ColumnTypeBigInt
	ColumnTypeFloat
	ColumnTypeDouble
	ColumnTypeChar
	ColumnTypeVarChar
	ColumnTypeNVarChar
	ColumnTypeUniqueIdentifier
	ColumnTypeBinary
	ColumnTypeDateTime
	ColumnTypeUnlimited // CLOB/BLOB-equivalent: no fixed length ever
	ColumnTypeArray
)

func (t ColumnType) String() string {
	names := [...]string{
		"Int", "BigInt", "Float", "Double", "Char", "VarChar", "NVarChar",
		"UniqueIdentifier", "Binary", "DateTime", "Unlimited", "Array",
	}
	if int(t) < 0 || int(t) >= len(names) {
		return "Unknown"
	}
	return names[t]
}

// IsString reports whether t is backed by character data, the set
// checkFieldType inspects for length/encoding fixups.
func (t ColumnType) IsString() bool {
	return t == ColumnTypeChar || t == ColumnTypeVarChar || t == ColumnTypeNVarChar || t == ColumnTypeUniqueIdentifier
}

// Column is a table's declared attribute: a name, a type, an optional
// default, and flags (nullable, array element type for ColumnTypeArray).
type Column struct {
	Object

	Position     int
	Type         ColumnType
	ElementType  ColumnType // meaningful only when Type == ColumnTypeArray
	Length       int        // declared length/precision; 0 for Unlimited
	Nullable     bool
	Default      *coldefault.Default
	FieldID      int64 // the Field projecting this column into its owning file
	Metadata     map[string]string
}

// NewColumn constructs a Column with the given position within its
// owning table. Position assignment (and the "10,000 columns get
// consecutive positions" invariant) is the caller's responsibility —
// Table.AddColumn enforces it.
func NewColumn(id, parentID int64, name string, position int, typ ColumnType) *Column {
	return &Column{
		Object: Object{
			ID: id, ParentID: parentID, Name: name,
			Category: CategoryColumn, Scope: ScopePermanent, Status: StatusCreated,
		},
		Position: position,
		Type:     typ,
	}
}

// SetDefault validates type-assign-compatibility before attaching d,
// raising InvalidDefault on a mismatch.
func (c *Column) SetDefault(d *coldefault.Default) error {
	if d == nil {
		c.Default = nil
		return nil
	}
	if arr, ok := d.ConstantArray(); ok {
		if c.Type != ColumnTypeArray {
			return kernelerr.New(kernelerr.KindInvalidDefault, kernelerr.ModuleCatalog,
				"constant-array default is only valid for array-typed columns, column %q is %s", c.Name, c.Type)
		}
		for _, v := range arr {
			if !assignCompatible(c.ElementType, v) {
				return kernelerr.New(kernelerr.KindInvalidDefault, kernelerr.ModuleCatalog,
					"array element %v is not assignable to column %q element type %s", v, c.Name, c.ElementType)
			}
		}
	}
	if v, ok := d.Constant(); ok {
		if !assignCompatible(c.Type, v) {
			return kernelerr.New(kernelerr.KindInvalidDefault, kernelerr.ModuleCatalog,
				"default literal %v is not assignable to column %q of type %s", v, c.Name, c.Type)
		}
	}
	if fn, ok := d.FunctionID(); ok && fn == coldefault.FunctionNewID && c.Type != ColumnTypeUniqueIdentifier {
		return kernelerr.New(kernelerr.KindInvalidDefault, kernelerr.ModuleCatalog,
			"NEWID() default is only valid on a UniqueIdentifier column, column %q is %s", c.Name, c.Type)
	}
	c.Default = d
	return nil
}

// NewUniqueIdentifier generates a fresh, random UUID for a
// ColumnTypeUniqueIdentifier column — the value a NEWID() default
// resolves to, and the helper callers use to seed such a column
// themselves rather than fabricating an opaque string.
func NewUniqueIdentifier() string {
	return uuid.New().String()
}

// assignCompatible is a conservative literal/type compatibility check:
// numeric literals assign to numeric columns, strings to string columns.
// A UniqueIdentifier column additionally requires the string to parse as
// a real UUID, so a malformed literal is rejected here rather than
// stored as an opaque string that later fails at read time.
// It never claims compatibility it cannot justify — callers see
// InvalidDefault rather than a silently wrong assignment.
func assignCompatible(t ColumnType, v any) bool {
	switch val := v.(type) {
	case int, int32, int64:
		return t == ColumnTypeInt || t == ColumnTypeBigInt || t == ColumnTypeFloat || t == ColumnTypeDouble
	case float32, float64:
		return t == ColumnTypeFloat || t == ColumnTypeDouble
	case string:
		if t == ColumnTypeUniqueIdentifier {
			_, err := uuid.Parse(val)
			return err == nil
		}
		return t == ColumnTypeChar || t == ColumnTypeVarChar || t == ColumnTypeNVarChar
	case bool:
		return t == ColumnTypeInt
	default:
		return false
	}
}
