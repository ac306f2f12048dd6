package record

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"

	"catalogkernel/internal/catalog"
)

func TestRecordFileIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupMySQL(t)
	ctx := context.Background()

	table := catalog.NewTable(1, 0, "widgets")
	sku := catalog.NewColumn(10, 1, "sku", 0, catalog.ColumnTypeVarChar)
	sku.Length = 32
	price := catalog.NewColumn(11, 1, "price", 1, catalog.ColumnTypeDouble)
	require.NoError(t, table.AddColumn(sku))
	require.NoError(t, table.AddColumn(price))

	fileRow := catalog.NewFile(20, 1, "widgets_record", catalog.FileCategoryRecord)
	driver, err := New(table, fileRow)
	require.NoError(t, err)

	f := driver.(*File)
	f.Open(db)

	require.NoError(t, f.Create(ctx, nil))
	t.Cleanup(func() { _ = f.Destroy(ctx) })

	require.NoError(t, f.Insert(ctx, map[string]any{"sku": "widget-1", "price": "9.99"}))
	require.NoError(t, f.Insert(ctx, map[string]any{"sku": "widget-2", "price": "19.99"}))

	cur, err := f.Scan(ctx)
	require.NoError(t, err)
	defer cur.Close()

	var skus []string
	for {
		tuple, ok, err := cur.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		skus = append(skus, tuple["sku"].(string))
	}
	assert.ElementsMatch(t, []string{"widget-1", "widget-2"}, skus)

	tuple, ok, err := f.Fetch(ctx, map[string]any{"oid": int64(1)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "widget-1", tuple["sku"])
}

func setupMySQL(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := mysql.Run(ctx, "mysql:8.0",
		mysql.WithDatabase("testdb"),
		mysql.WithUsername("root"),
		mysql.WithPassword("testpass"),
	)
	require.NoError(t, err, "failed to start MySQL container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true")
	require.NoError(t, err)

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))
	t.Cleanup(func() { _ = db.Close() })

	return db
}
