package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBtreeVirtualFieldsAtVersionOne(t *testing.T) {
	key := NewKey(1, 2, 0, 100, 200, SortAscending)
	key.Name = "id"
	idx := NewIndex(2, 10, "idx_id", IndexTypeBtree, []*Key{key})

	nextID := int64(300)
	idx.GenerateVirtualFields(1, func() int64 { nextID++; return nextID })

	if assert.Len(t, idx.VirtualFields, 2) {
		assert.Equal(t, FieldFunctionMin, idx.VirtualFields[0].Function)
		assert.Equal(t, FieldFunctionMax, idx.VirtualFields[1].Function)
	}
}

func TestBtreeVirtualFieldsSkippedBelowVersionOne(t *testing.T) {
	key := NewKey(1, 2, 0, 100, 200, SortAscending)
	idx := NewIndex(2, 10, "idx_id", IndexTypeBtree, []*Key{key})
	idx.GenerateVirtualFields(0, func() int64 { return 1 })
	assert.Empty(t, idx.VirtualFields)
}

func TestVectorVirtualFieldIsCount(t *testing.T) {
	key := NewKey(1, 2, 0, 100, 200, SortAscending)
	idx := NewIndex(2, 10, "idx_vec", IndexTypeVector, []*Key{key})
	idx.GenerateVirtualFields(1, func() int64 { return 1 })

	if assert.Len(t, idx.VirtualFields, 1) {
		assert.Equal(t, FieldFunctionCount, idx.VirtualFields[0].Function)
	}
}

func TestKdTreeVirtualFields(t *testing.T) {
	key := NewKey(1, 2, 0, 100, 200, SortAscending)
	idx := NewIndex(2, 10, "idx_vec", IndexTypeKdTree, []*Key{key})
	idx.GenerateVirtualFields(1, func() int64 { return 1 })

	if assert.Len(t, idx.VirtualFields, 2) {
		assert.Equal(t, FieldFunctionNeighborID, idx.VirtualFields[0].Function)
		assert.Equal(t, FieldFunctionNeighborDistance, idx.VirtualFields[1].Function)
	}
}

func TestUniquenessMode(t *testing.T) {
	idx := &Index{IsUnique: true}
	assert.Equal(t, UniquenessOnlyKey, idx.Uniqueness())

	idx2 := &Index{IsUnique: false}
	assert.Equal(t, UniquenessKeyField, idx2.Uniqueness())
}
