package btree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/predicate"
)

func newOrderIndex() (*catalog.Table, *catalog.Index, func(int64) *catalog.Column) {
	table := catalog.NewTable(1, 0, "orders")
	amount := catalog.NewColumn(10, 1, "amount", 0, catalog.ColumnTypeBigInt)
	_ = table.AddColumn(amount)

	key := catalog.NewKey(30, 40, 0, amount.ID, 0, catalog.SortAscending)
	idx := catalog.NewIndex(40, 1, "ix_amount", catalog.IndexTypeBtree, []*catalog.Key{key})
	idx.IsUnique = true

	resolve := func(columnID int64) *catalog.Column {
		if columnID == amount.ID {
			return amount
		}
		return nil
	}
	return table, idx, resolve
}

func TestBtreeUniqueKeyUniquenessMode(t *testing.T) {
	table, idx, resolve := newOrderIndex()
	row := catalog.NewFile(50, 40, "ix_amount_file", catalog.FileCategoryBtree)

	driver, err := NewWithOptions(table, row, WithIndex(idx, resolve, 1))
	require.NoError(t, err)

	assert.True(t, driver.IsKeyUnique())
	assert.True(t, driver.IsAbleToSort())
	assert.Len(t, idx.VirtualFields, 2) // min/max, version >= 1
}

func TestBtreeRejectsConjunctionWithLike(t *testing.T) {
	table, idx, resolve := newOrderIndex()
	row := catalog.NewFile(50, 40, "ix_amount_file", catalog.FileCategoryBtree)

	driver, err := NewWithOptions(table, row, WithIndex(idx, resolve, 1))
	require.NoError(t, err)

	equalsOnly := predicate.Equals("amount", int64(5))
	assert.True(t, driver.IsAbleToSearch(equalsOnly))

	withLike := predicate.And(equalsOnly, predicate.Like("name", "%a%"))
	assert.False(t, driver.IsAbleToSearch(withLike))
}

func TestBtreeScanOrdersByKeyAscending(t *testing.T) {
	table, idx, resolve := newOrderIndex()
	row := catalog.NewFile(50, 40, "ix_amount_file", catalog.FileCategoryBtree)

	driver, err := NewWithOptions(table, row, WithIndex(idx, resolve, 1))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, driver.Insert(ctx, map[string]any{"amount": int64(30)}))
	require.NoError(t, driver.Insert(ctx, map[string]any{"amount": int64(10)}))
	require.NoError(t, driver.Insert(ctx, map[string]any{"amount": int64(20)}))

	cur, err := driver.Scan(ctx)
	require.NoError(t, err)
	var seen []int64
	for {
		tuple, ok, err := cur.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		seen = append(seen, tuple["amount"].(int64))
	}
	assert.Equal(t, []int64{10, 20, 30}, seen)
}

func TestBtreeSearchPushesComparison(t *testing.T) {
	table, idx, resolve := newOrderIndex()
	row := catalog.NewFile(50, 40, "ix_amount_file", catalog.FileCategoryBtree)

	driver, err := NewWithOptions(table, row, WithIndex(idx, resolve, 1))
	require.NoError(t, err)

	pred := predicate.GreaterThan("amount", int64(15))
	assert.True(t, driver.IsAbleToSearch(pred))

	ctx := context.Background()
	require.NoError(t, driver.Insert(ctx, map[string]any{"amount": int64(10)}))
	require.NoError(t, driver.Insert(ctx, map[string]any{"amount": int64(20)}))

	cur, err := driver.Search(ctx, pred)
	require.NoError(t, err)
	tuple, ok, err := cur.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(20), tuple["amount"])

	_, ok, _ = cur.Next(ctx)
	assert.False(t, ok)
}
