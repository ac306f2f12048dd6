package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKnownElements(t *testing.T) {
	h, warnings := Parse("heap, unique")
	assert.Empty(t, warnings)
	assert.True(t, h.Has(CategoryHeap))
	assert.True(t, h.Has(CategoryUnique))
	assert.False(t, h.Has(CategoryNonTruncate))
	assert.Len(t, h.Elements, 2)
}

func TestParseUnknownElementWarns(t *testing.T) {
	h, warnings := Parse("heap, pagesize(4096)")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "pagesize(4096)")
	assert.True(t, h.Has(CategoryHeap))
	assert.Len(t, h.Elements, 2)
}

func TestRoundTripPreservesOrder(t *testing.T) {
	body := "notruncate, heap, pagesize(4096)"
	h, _ := Parse(body)
	rendered := h.ToSQLStatement()

	h2, _ := Parse(rendered)
	require.Equal(t, len(h.Elements), len(h2.Elements))
	for i := range h.Elements {
		assert.Equal(t, h.Elements[i].Raw, h2.Elements[i].Raw)
	}
	assert.Equal(t, h.Category, h2.Category)
}

func TestEmptyHint(t *testing.T) {
	var h *Hint
	assert.True(t, h.Empty())
	assert.Equal(t, "", h.ToSQLStatement())

	h2, warnings := Parse("")
	assert.Empty(t, warnings)
	assert.True(t, h2.Empty())
}

func TestCategoryNames(t *testing.T) {
	h, _ := Parse("heap, unique")
	names := h.CategoryNames()
	assert.Contains(t, names, "heap")
	assert.Contains(t, names, "unique")
}
