package array

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/predicate"
)

func TestArraySupportsComparisonsNotAnd(t *testing.T) {
	table := catalog.NewTable(1, 0, "tags")
	row := catalog.NewFile(2, 1, "tags_array", catalog.FileCategoryArray)

	driver, err := NewWithOptions(table, row, WithField("tag"))
	require.NoError(t, err)

	assert.True(t, driver.IsAbleToSearch(predicate.Equals("tag", "x")))
	assert.False(t, driver.IsAbleToSearch(predicate.And(predicate.Equals("tag", "x"), predicate.Equals("tag", "y"))))
	assert.True(t, driver.HasAllTuples())
}

func TestArrayGetByBitSetAndSearchByBitSet(t *testing.T) {
	table := catalog.NewTable(1, 0, "tags")
	row := catalog.NewFile(2, 1, "tags_array", catalog.FileCategoryArray)

	driver, err := NewWithOptions(table, row, WithField("tag"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, driver.Insert(ctx, map[string]any{"tag": "a"}))
	require.NoError(t, driver.Insert(ctx, map[string]any{"tag": "b"}))

	bs, err := driver.GetByBitSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, bs.Cardinality())

	cur, err := driver.SearchByBitSet(ctx, bs)
	require.NoError(t, err)
	count := 0
	for {
		_, ok, err := cur.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 2, count)
}
