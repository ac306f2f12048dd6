package fulltext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/predicate"
)

func TestFullTextSupportsLikeNotFetch(t *testing.T) {
	table := catalog.NewTable(1, 0, "articles")
	row := catalog.NewFile(2, 1, "articles_fulltext", catalog.FileCategoryFullText)

	driver, err := NewWithOptions(table, row, WithField("body"))
	require.NoError(t, err)

	assert.True(t, driver.IsAbleToSearch(predicate.Like("body", "%catalog%")))
	assert.False(t, driver.IsAbleToFetch())
}

func TestFullTextSearchRanksByFrequency(t *testing.T) {
	table := catalog.NewTable(1, 0, "articles")
	row := catalog.NewFile(2, 1, "articles_fulltext", catalog.FileCategoryFullText)

	driver, err := NewWithOptions(table, row, WithField("body"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, driver.Insert(ctx, map[string]any{"body": "catalog catalog systems"}))
	require.NoError(t, driver.Insert(ctx, map[string]any{"body": "a single catalog mention"}))

	cur, err := driver.Search(ctx, predicate.Like("body", "%catalog%"))
	require.NoError(t, err)

	first, ok, err := cur.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "catalog catalog systems", first["body"])
}
