package metaboot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/dbconfig"
)

func testPath() dbconfig.PathTriple {
	return dbconfig.PathTriple{Data: "/var/lib/catalogkernel/system"}.Resolved()
}

func TestBootstrapCreatesAllFourteenTablesInOrder(t *testing.T) {
	cat, err := Bootstrap(testPath())
	require.NoError(t, err)

	wantOrder := []string{
		"Database", "Table", "Column", "Key", "Constraint", "Index", "File",
		"Field", "Area", "AreaContent", "Privilege", "Cascade", "Partition", "Function",
	}
	require.Len(t, cat.Tables, len(wantOrder))
	for _, name := range wantOrder {
		table, ok := cat.Tables[name]
		require.Truef(t, ok, "missing System_%s", name)
		assert.Equal(t, "System_"+name, table.Name)
	}
}

func TestBootstrapMarksEverythingPersistent(t *testing.T) {
	cat, err := Bootstrap(testPath())
	require.NoError(t, err)

	assert.Equal(t, catalog.StatusPersistent, cat.Database.Status)
	for _, table := range cat.Tables {
		assert.Equal(t, catalog.StatusPersistent, table.Status)
		for _, col := range table.Columns {
			assert.Equal(t, catalog.StatusPersistent, col.Status)
		}
	}
}

func TestBootstrapAssignsDisjointSentinelIDs(t *testing.T) {
	cat, err := Bootstrap(testPath())
	require.NoError(t, err)

	seen := make(map[int64]bool)
	seen[cat.Database.ID] = true
	for _, table := range cat.Tables {
		assert.Lessf(t, table.ID, int64(0), "table %s should have a negative sentinel ID", table.Name)
		assert.False(t, seen[table.ID], "table ID %d reused", table.ID)
		seen[table.ID] = true
		for _, col := range table.Columns {
			assert.Lessf(t, col.ID, int64(0), "column %s.%s should have a negative sentinel ID", table.Name, col.Name)
			assert.False(t, seen[col.ID], "column ID %d reused", col.ID)
			seen[col.ID] = true
		}
	}
}

func TestBootstrapDatabaseIsMetaScopedAndReadOnly(t *testing.T) {
	cat, err := Bootstrap(testPath())
	require.NoError(t, err)

	assert.Equal(t, catalog.ScopeMeta, cat.Database.Scope)
	assert.True(t, cat.Database.Attribute.Has(dbconfig.AttributeReadOnly))
	assert.True(t, cat.Database.Attribute.Has(dbconfig.AttributeOnline))
}

func TestBootstrapBuildsRecordAndPrimaryKeyFilesForEveryTable(t *testing.T) {
	cat, err := Bootstrap(testPath())
	require.NoError(t, err)

	for name, table := range cat.Tables {
		require.Lenf(t, table.Indexes, 1, "System_%s should have exactly one primary-key index", name)
		idx := table.Indexes[0]
		assert.True(t, idx.IsPrimary)
		assert.True(t, idx.IsUnique)

		var hasRecordFile, hasIndexFile bool
		for _, f := range table.Files {
			switch f.Category {
			case catalog.FileCategoryRecord:
				hasRecordFile = true
			case catalog.FileCategoryBtree:
				hasIndexFile = true
				assert.Equal(t, idx.FileID, f.ID, "System_%s's index File should be the one idx.FileID points at", name)
			}
			assert.NotEmpty(t, f.FileIDBlob, "System_%s file %s should have a persisted FileID", name, f.Name)
		}
		assert.Truef(t, hasRecordFile, "System_%s is missing its Record File", name)
		assert.Truef(t, hasIndexFile, "System_%s is missing its primary-key index File", name)
	}
}

func TestBootstrapAreaContentKeysOnAreaAndObjectID(t *testing.T) {
	cat, err := Bootstrap(testPath())
	require.NoError(t, err)

	table := cat.Tables["AreaContent"]
	idx := table.Indexes[0]
	require.Len(t, idx.Keys, 2)

	areaCol, _ := table.Column("area_id")
	objectCol, _ := table.Column("object_id")
	assert.Equal(t, areaCol.ID, idx.Keys[0].ColumnID)
	assert.Equal(t, objectCol.ID, idx.Keys[1].ColumnID)
}

func TestBootstrapColumnTableHasExpectedColumns(t *testing.T) {
	cat, err := Bootstrap(testPath())
	require.NoError(t, err)

	columnTable := cat.Tables["Column"]
	names := make([]string, len(columnTable.Columns))
	for i, c := range columnTable.Columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"id", "parent_id", "name", "position", "type", "length", "nullable"}, names)
}
