package catalog

import "catalogkernel/internal/kernelerr"

// AreaContent is the many-to-many (AreaID, ObjectID) link table.
// AreaContentIndex answers setAreaPath's lookups and enforces
// checkRelatedPath: no two non-sibling objects may share a path that
// would create an ambiguity.
type AreaContent struct {
	Object

	AreaID   int64
	ObjectID int64
}

// NewAreaContent links an object to an area.
func NewAreaContent(id int64, areaID, objectID int64) *AreaContent {
	return &AreaContent{
		Object:   Object{ID: id, Category: CategoryAreaContent, Scope: ScopePermanent, Status: StatusCreated},
		AreaID:   areaID,
		ObjectID: objectID,
	}
}

// AreaContentIndex is the in-memory (AreaID -> ObjectIDs, ObjectID ->
// AreaIDs) index over a database's AreaContent rows, giving setAreaPath
// an O(1) lookup instead of a table scan.
type AreaContentIndex struct {
	byArea   map[int64][]int64
	byObject map[int64][]int64
	parents  map[int64]int64 // objectID -> its owning parent objectID, for checkRelatedPath
}

// NewAreaContentIndex builds an empty index.
func NewAreaContentIndex() *AreaContentIndex {
	return &AreaContentIndex{
		byArea:   make(map[int64][]int64),
		byObject: make(map[int64][]int64),
		parents:  make(map[int64]int64),
	}
}

// Add records one AreaContent link and its object's parent, for later
// sibling checks.
func (idx *AreaContentIndex) Add(link *AreaContent, parentObjectID int64) {
	idx.byArea[link.AreaID] = append(idx.byArea[link.AreaID], link.ObjectID)
	idx.byObject[link.ObjectID] = append(idx.byObject[link.ObjectID], link.AreaID)
	idx.parents[link.ObjectID] = parentObjectID
}

// EffectivePaths resolves the area paths to use for objectID, consulting
// its own area links the way setAreaPath(fileID, tx) consults
// AreaContent to emit the effective path(s).
func (idx *AreaContentIndex) EffectivePaths(objectID int64, areas map[int64]*Area) []string {
	var out []string
	for _, areaID := range idx.byObject[objectID] {
		if a, ok := areas[areaID]; ok {
			out = append(out, a.Paths...)
		}
	}
	return out
}

// CheckRelatedPath enforces that no two non-sibling objects resolve to
// the same path, the ambiguity checkRelatedPath exists to prevent.
func (idx *AreaContentIndex) CheckRelatedPath(objectID int64, areas map[int64]*Area) error {
	candidatePaths := make(map[string]bool)
	for _, p := range idx.EffectivePaths(objectID, areas) {
		candidatePaths[p] = true
	}
	if len(candidatePaths) == 0 {
		return nil
	}
	myParent := idx.parents[objectID]
	for otherID, otherParent := range idx.parents {
		if otherID == objectID || otherParent == myParent {
			continue
		}
		for _, p := range idx.EffectivePaths(otherID, areas) {
			if candidatePaths[p] {
				return kernelerr.New(kernelerr.KindBadArgument, kernelerr.ModuleCatalog,
					"path %q is shared by non-sibling objects %d and %d", p, objectID, otherID)
			}
		}
	}
	return nil
}
