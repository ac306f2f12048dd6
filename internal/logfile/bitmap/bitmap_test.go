package bitmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/predicate"
)

func TestBitmapSupportsAndOrAndComparisons(t *testing.T) {
	table := catalog.NewTable(1, 0, "flags")
	row := catalog.NewFile(2, 1, "flags_bitmap", catalog.FileCategoryBitmap)

	driver, err := NewWithOptions(table, row, WithField("status"))
	require.NoError(t, err)

	pred := predicate.And(predicate.Equals("status", "active"), predicate.GreaterThan("status", "a"))
	assert.True(t, driver.IsAbleToSearch(pred))
	assert.True(t, driver.HasAllTuples())
	assert.True(t, driver.IsAbleToGetByBitSet())
	assert.True(t, driver.IsAbleToSearchByBitSet())
}

func TestBitmapSupportsConjunctionWithLike(t *testing.T) {
	table := catalog.NewTable(1, 0, "things")
	row := catalog.NewFile(2, 1, "things_bitmap", catalog.FileCategoryBitmap)

	driver, err := NewWithOptions(table, row, WithField("id"))
	require.NoError(t, err)

	pred := predicate.And(predicate.Equals("id", 5), predicate.Like("name", "%a%"))
	assert.True(t, driver.IsAbleToSearch(pred))
}

func TestBitmapGetByBitSetCoversAllRows(t *testing.T) {
	table := catalog.NewTable(1, 0, "flags")
	row := catalog.NewFile(2, 1, "flags_bitmap", catalog.FileCategoryBitmap)

	driver, err := NewWithOptions(table, row, WithField("status"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, driver.Insert(ctx, map[string]any{"status": "active"}))
	require.NoError(t, driver.Insert(ctx, map[string]any{"status": "closed"}))

	bs, err := driver.GetByBitSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, bs.Cardinality())
}

func TestBitmapSearchFiltersByPredicate(t *testing.T) {
	table := catalog.NewTable(1, 0, "flags")
	row := catalog.NewFile(2, 1, "flags_bitmap", catalog.FileCategoryBitmap)

	driver, err := NewWithOptions(table, row, WithField("status"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, driver.Insert(ctx, map[string]any{"status": "active"}))
	require.NoError(t, driver.Insert(ctx, map[string]any{"status": "closed"}))

	cur, err := driver.Search(ctx, predicate.Equals("status", "active"))
	require.NoError(t, err)

	count := 0
	for {
		tuple, ok, err := cur.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		assert.Equal(t, "active", tuple["status"])
		count++
	}
	assert.Equal(t, 1, count)
}
