package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/dbconfig"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := Bootstrap(dbconfig.PathTriple{Data: "/tmp/catalogkernel-test"})
	require.NoError(t, err)
	_, err = eng.CreateDatabase("shop", dbconfig.PathTriple{Data: "/tmp/catalogkernel-test/shop"})
	require.NoError(t, err)
	return eng
}

func TestBootstrapSeedsAllSystemTables(t *testing.T) {
	eng := newTestEngine(t)
	assert.Len(t, eng.Meta.Tables, 14)
}

func TestCreateTableFromSQLBuildsColumnsKeysAndFiles(t *testing.T) {
	eng := newTestEngine(t)
	table, err := eng.CreateTable("shop", `CREATE TABLE orders (
		id BIGINT PRIMARY KEY,
		customer VARCHAR(64) NOT NULL,
		amount DOUBLE,
		UNIQUE KEY uq_customer (customer)
	)`)
	require.NoError(t, err)

	counts := table.Counts()
	assert.Equal(t, 3, counts.Columns)
	assert.Equal(t, 2, counts.Keys) // one PK key + one unique key
	assert.Equal(t, 2, counts.Constraints)
	assert.Equal(t, 2, counts.Indexes)
	assert.Equal(t, 3, counts.Files) // 2 btree indexes + 1 record file
	assert.Equal(t, catalog.StatusPersistent, table.Status)
}

func TestDropTableMarksDeletedButStillCached(t *testing.T) {
	eng := newTestEngine(t)
	created, err := eng.CreateTable("shop", `CREATE TABLE widgets (sku VARCHAR(32) PRIMARY KEY)`)
	require.NoError(t, err)

	require.NoError(t, eng.DropTable("shop", "widgets"))

	db, err := eng.Database("shop")
	require.NoError(t, err)
	table, ok := db.Table(created.ID)
	require.True(t, ok, "soft-deleted table stays visible to in-flight readers")
	assert.Equal(t, catalog.StatusDeleted, table.Status)
}

func TestCapabilitiesReportsRecordFileProfile(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.CreateTable("shop", `CREATE TABLE widgets (sku VARCHAR(32) PRIMARY KEY)`)
	require.NoError(t, err)

	caps, err := eng.Capabilities("shop", "widgets", "widgets_record")
	require.NoError(t, err)
	assert.Equal(t, catalog.FileCategoryRecord, caps.Category)
	assert.True(t, caps.Scan)
	assert.True(t, caps.Fetch)
	assert.False(t, caps.Search)
}

func TestCapabilitiesReportsBtreeFileProfile(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.CreateTable("shop", `CREATE TABLE widgets (sku VARCHAR(32) PRIMARY KEY)`)
	require.NoError(t, err)

	caps, err := eng.Capabilities("shop", "widgets", "index_primary_file")
	require.NoError(t, err)
	assert.Equal(t, catalog.FileCategoryBtree, caps.Category)
	assert.True(t, caps.Sort)
	assert.True(t, caps.Search)
	assert.True(t, caps.KeyUnique, "a unique PK Btree index should report KeyUnique on reattach")
}

// TestCapabilitiesPersistsFileIDBlobAcrossQueries asserts that the File
// built for a PK index leaves a non-empty FileIDBlob behind, and that a
// second, independent Capabilities() call (which reattaches rather than
// reusing the driver built at CreateTable time) still reports the same
// KeyUnique answer instead of losing the Index binding.
func TestCapabilitiesPersistsFileIDBlobAcrossQueries(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.CreateTable("shop", `CREATE TABLE widgets (sku VARCHAR(32) PRIMARY KEY)`)
	require.NoError(t, err)

	table, err := eng.Database("shop")
	require.NoError(t, err)
	tbl, ok := table.TableByName("widgets")
	require.True(t, ok)
	var file *catalog.File
	for _, f := range tbl.Files {
		if f.Category == catalog.FileCategoryBtree {
			file = f
		}
	}
	require.NotNil(t, file)
	assert.NotEmpty(t, file.FileIDBlob)

	first, err := eng.Capabilities("shop", "widgets", file.Name)
	require.NoError(t, err)
	second, err := eng.Capabilities("shop", "widgets", file.Name)
	require.NoError(t, err)
	assert.True(t, first.KeyUnique)
	assert.Equal(t, first.KeyUnique, second.KeyUnique)
}
