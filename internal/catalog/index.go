package catalog

import (
	"catalogkernel/internal/hint"
	"catalogkernel/internal/ident"
)

// IndexType mirrors the access method backing the index's File, used to
// pick the right virtual-field generation rule.
type IndexType int

const (
	IndexTypeBtree IndexType = iota
	IndexTypeVector
	IndexTypeBitmap
	IndexTypeArray
	IndexTypeKdTree
	IndexTypeFullText
	IndexTypeInverted
)

func (t IndexType) String() string {
	names := [...]string{"Btree", "Vector", "Bitmap", "Array", "KdTree", "FullText", "Inverted"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Unknown"
	}
	return names[t]
}

// Index groups a Key list with the one File backing it. IsUnique and
// IsPrimary drive Uniqueness::OnlyKey vs KeyField at setFileID time.
type Index struct {
	Object

	Type      IndexType
	Keys      []*Key
	FileID    int64
	AreaIDs   []int64
	Hint      *hint.Hint
	IsUnique  bool
	IsPrimary bool

	// VirtualFields is populated by GenerateVirtualFields once the
	// index's backing file kind is known.
	VirtualFields []*Field
}

// NewIndex builds an index with the given key list; the backing File is
// attached separately once the logical-file driver assigns its FileID.
func NewIndex(id, parentID int64, name string, typ IndexType, keys []*Key) *Index {
	return &Index{
		Object:   Object{ID: id, ParentID: parentID, Name: name, Category: CategoryIndex, Scope: ScopePermanent, Status: StatusCreated},
		Type:     typ,
		Keys:     keys,
	}
}

// GenerateVirtualFields builds the function-projection fields each index
// type needs: Btree gets min/max per first key (version >= 1), Vector
// gets a count field, KdTree gets NeighborID and NeighborDistance. Field
// IDs are allocated by the caller-supplied nextFieldID so the index
// doesn't need to know about the catalog's global ID sequence.
func (idx *Index) GenerateVirtualFields(version int, nextFieldID func() int64) {
	idx.VirtualFields = nil
	if len(idx.Keys) == 0 {
		return
	}
	firstKeyColumnID := idx.Keys[0].ColumnID
	position := len(idx.Keys) + 1 // position 0 is OID; positions 1..len(Keys) are the key fields

	switch idx.Type {
	case IndexTypeBtree:
		if version < 1 {
			return
		}
		minName, _ := firstKeyFieldName(idx, ident.DiscriminatorMinField)
		maxName, _ := firstKeyFieldName(idx, ident.DiscriminatorMaxField)
		minField := NewVirtualField(nextFieldID(), idx.ID, position, FieldFunctionMin, ColumnTypeInt)
		minField.Name = minName
		maxField := NewVirtualField(nextFieldID(), idx.ID, position+1, FieldFunctionMax, ColumnTypeInt)
		maxField.Name = maxName
		_ = firstKeyColumnID
		idx.VirtualFields = append(idx.VirtualFields, minField, maxField)

	case IndexTypeVector:
		countField := NewVirtualField(nextFieldID(), idx.ID, position, FieldFunctionCount, ColumnTypeBigInt)
		countField.Name = ident.VirtualFieldName(ident.DiscriminatorClusterID, "")
		idx.VirtualFields = append(idx.VirtualFields, countField)

	case IndexTypeKdTree:
		neighborID := NewVirtualField(nextFieldID(), idx.ID, position, FieldFunctionNeighborID, ColumnTypeBigInt)
		neighborID.Name = ident.VirtualFieldName(ident.DiscriminatorNeighborID, "")
		neighborDistance := NewVirtualField(nextFieldID(), idx.ID, position+1, FieldFunctionNeighborDistance, ColumnTypeDouble)
		neighborDistance.Name = ident.VirtualFieldName(ident.DiscriminatorScore, "")
		idx.VirtualFields = append(idx.VirtualFields, neighborID, neighborDistance)
	}
}

func firstKeyFieldName(idx *Index, d ident.Discriminator) (string, int64) {
	key := idx.Keys[0]
	return ident.VirtualFieldName(d, key.Object.Name), key.ColumnID
}

// Uniqueness reports the btree-style uniqueness mode this index's
// backing file should declare: unique or primary indexes force key-only
// uniqueness, everything else is key-plus-value.
func (idx *Index) Uniqueness() UniquenessMode {
	if idx.IsUnique || idx.IsPrimary {
		return UniquenessOnlyKey
	}
	return UniquenessKeyField
}

// UniquenessMode mirrors internal/fileid.Uniqueness at the catalog layer
// so internal/catalog does not need to import the fileid package just
// for this one enum; internal/logfile translates between the two at the
// driver boundary.
type UniquenessMode int

const (
	UniquenessKeyField UniquenessMode = iota
	UniquenessOnlyKey
)
