package catalog

// Area is a named set of filesystem directories that Tables, Indexes,
// and Files can be assigned to.
type Area struct {
	Object

	Paths []string
}

// NewArea builds an area with the given candidate paths.
func NewArea(id, parentID int64, name string, paths []string) *Area {
	return &Area{
		Object: Object{ID: id, ParentID: parentID, Name: name, Category: CategoryArea, Scope: ScopePermanent, Status: StatusCreated},
		Paths:  append([]string(nil), paths...),
	}
}
