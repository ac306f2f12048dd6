// Package catalog is the schema catalog: every persistent database
// object (Database, Table, Column, Key, Constraint, Index, File, Field,
// Area, AreaContent, Privilege, Cascade, Partition, Function) modeled as
// a versioned, reference-counted schema object, plus the container
// (Database) that caches, locks, freezes, and melts them.
//
// Each concept is one struct, adapted from a declarative
// dialect-generation model to a live, mutable, lockable catalog. Table
// and Constraint have Validate methods returning kernelerr or ident
// errors; the other concepts have no Validate method.
package catalog

import "fmt"

// Scope classifies how long an object's identity is meaningful for.
type Scope int

const (
	ScopePermanent Scope = iota
	ScopeSessionTemporary
	ScopeMeta
)

func (s Scope) String() string {
	switch s {
	case ScopePermanent:
		return "Permanent"
	case ScopeSessionTemporary:
		return "SessionTemporary"
	case ScopeMeta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// Category tags which schema-object kind an Object is, so heterogeneous
// objects can share one cache map keyed by ID without reflection.
type Category int

const (
	CategoryDatabase Category = iota
	CategoryTable
	CategoryColumn
	CategoryKey
	CategoryConstraint
	CategoryIndex
	CategoryFile
	CategoryField
	CategoryArea
	CategoryAreaContent
	CategoryPrivilege
	CategoryCascade
	CategoryPartition
	CategoryFunction
)

func (c Category) String() string {
	names := [...]string{
		"Database", "Table", "Column", "Key", "Constraint", "Index",
		"File", "Field", "Area", "AreaContent", "Privilege", "Cascade",
		"Partition", "Function",
	}
	if int(c) < 0 || int(c) >= len(names) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return names[c]
}

// Object is the common identity and lifecycle state every catalog entity
// shares: a unique 64-bit ID, a parent back-pointer, a name, a category
// tag, a scope, a status, a mutation timestamp, and an owning database.
// Concrete types embed Object and add their own fields.
type Object struct {
	ID         int64
	ParentID   int64
	Name       string
	Category   Category
	Scope      Scope
	Status     Status
	Timestamp  int64 // logical mutation counter, not wall-clock time
	DatabaseID int64 // back-pointer to the owning database's ID
	Frozen     bool
}

// Touch bumps the object's mutation timestamp. The catalog calls this on
// every field-level mutation so freeze/melt and replication can detect
// staleness without wall-clock time (which would break deterministic
// recovery replay).
func (o *Object) Touch(now int64) {
	o.Timestamp = now
	o.Status = StatusCreated
}

// MarkDeleted transitions the object to Deleted (soft-delete, still
// visible to in-flight readers) without reclaiming its ID.
func (o *Object) MarkDeleted() {
	o.Status = StatusDeleted
}

// MarkReallyDeleted transitions a previously Deleted object to
// ReallyDeleted. It only changes Status; the object's ID is not handed
// out again by any ID sequence in this module.
func (o *Object) MarkReallyDeleted() {
	o.Status = StatusReallyDeleted
}

// Equal reports structural equality of the shared identity fields, the
// baseline every concrete type's Equal method starts from so that
// serializing an object and deserializing it again yields an object
// equal to the original.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.ID == other.ID &&
		o.ParentID == other.ParentID &&
		o.Name == other.Name &&
		o.Category == other.Category &&
		o.Scope == other.Scope &&
		o.Status == other.Status &&
		o.DatabaseID == other.DatabaseID
}
