package catalog

import "catalogkernel/internal/kernelerr"

// ConstraintType enumerates the constraint kinds a Table can declare.
type ConstraintType int

const (
	ConstraintTypePrimaryKey ConstraintType = iota
	ConstraintTypeUnique
	ConstraintTypeForeignKey
	ConstraintTypeCheck
	ConstraintTypeNotNull
)

func (c ConstraintType) String() string {
	switch c {
	case ConstraintTypePrimaryKey:
		return "PrimaryKey"
	case ConstraintTypeUnique:
		return "Unique"
	case ConstraintTypeForeignKey:
		return "ForeignKey"
	case ConstraintTypeCheck:
		return "Check"
	case ConstraintTypeNotNull:
		return "NotNull"
	default:
		return "Unknown"
	}
}

// ReferenceAction is the ON DELETE/ON UPDATE behavior of a foreign key.
type ReferenceAction int

const (
	ReferenceActionNoAction ReferenceAction = iota
	ReferenceActionCascade
	ReferenceActionSetNull
	ReferenceActionRestrict
)

// Constraint is a table-level rule over one or more columns. Position
// numbers constraints within their owning table in declaration order,
// matching System_Constraint's (id, parent_id, name, category, position,
// column_id[]) row shape.
type Constraint struct {
	Object

	Position  int
	Type      ConstraintType
	ColumnIDs []int64

	// ForeignKey-only fields.
	ReferencedTableID  int64
	ReferencedColumnIDs []int64
	OnDelete           ReferenceAction
	OnUpdate           ReferenceAction

	// Check-only field.
	CheckExpression string
}

// NewPrimaryKeyConstraint builds a PRIMARY KEY constraint over columnIDs.
func NewPrimaryKeyConstraint(id, parentID int64, name string, position int, columnIDs []int64) *Constraint {
	return &Constraint{
		Object:    Object{ID: id, ParentID: parentID, Name: name, Category: CategoryConstraint, Scope: ScopePermanent, Status: StatusCreated},
		Position:  position,
		Type:      ConstraintTypePrimaryKey,
		ColumnIDs: append([]int64(nil), columnIDs...),
	}
}

// NewForeignKeyConstraint builds a FOREIGN KEY constraint.
func NewForeignKeyConstraint(id, parentID int64, name string, position int, columnIDs []int64, refTableID int64, refColumnIDs []int64, onDelete, onUpdate ReferenceAction) *Constraint {
	return &Constraint{
		Object:              Object{ID: id, ParentID: parentID, Name: name, Category: CategoryConstraint, Scope: ScopePermanent, Status: StatusCreated},
		Position:            position,
		Type:                ConstraintTypeForeignKey,
		ColumnIDs:           append([]int64(nil), columnIDs...),
		ReferencedTableID:   refTableID,
		ReferencedColumnIDs: append([]int64(nil), refColumnIDs...),
		OnDelete:            onDelete,
		OnUpdate:            onUpdate,
	}
}

// Validate applies the structural rules every constraint kind shares:
// at least one column, and kind-specific requirements.
func (c *Constraint) Validate() error {
	if len(c.ColumnIDs) == 0 {
		return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
			"constraint %q declares no columns", c.Name)
	}
	if c.Type == ConstraintTypeForeignKey {
		if c.ReferencedTableID == 0 {
			return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
				"foreign key %q has no referenced table", c.Name)
		}
		if len(c.ReferencedColumnIDs) != len(c.ColumnIDs) {
			return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
				"foreign key %q column count (%d) does not match referenced column count (%d)",
				c.Name, len(c.ColumnIDs), len(c.ReferencedColumnIDs))
		}
	}
	if c.Type == ConstraintTypeCheck && c.CheckExpression == "" {
		return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
			"check constraint %q has no expression", c.Name)
	}
	return nil
}
