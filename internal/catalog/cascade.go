package catalog

// Cascade names a replication/propagation target set, per
// System_Cascade's (id, name, target[]) row shape. Out-of-scope
// collaborators (the replication transport itself) consume this purely
// as configuration data; the catalog only stores and serves it.
type Cascade struct {
	Object

	Targets []string
}

// NewCascade builds a cascade record.
func NewCascade(id int64, name string, targets []string) *Cascade {
	return &Cascade{
		Object:  Object{ID: id, Name: name, Category: CategoryCascade, Scope: ScopePermanent, Status: StatusCreated},
		Targets: append([]string(nil), targets...),
	}
}
