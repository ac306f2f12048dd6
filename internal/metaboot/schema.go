package metaboot

import (
	"strings"

	"github.com/BurntSushi/toml"

	"catalogkernel/internal/catalog"
)

// systemTableSchema is one System_* table's column declarations, kept as
// data rather than a Go literal so the mapping is both readable and
// testable on its own, since each of the 14 system tables has a fixed
// column list — reusing the same BurntSushi/toml struct-tag decode
// pattern internal/dbconfig uses, for a different document shape than
// the server bootstrap file.
type systemTableSchema struct {
	Order   int                `toml:"order"`
	Columns []systemColumnSpec `toml:"column"`
}

type systemColumnSpec struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Length   int    `toml:"length"`
	Nullable bool   `toml:"nullable"`
}

// systemSchemaDoc is the embedded schema document every Bootstrap call
// parses once, describing every System_* table in category order.
type systemSchemaDoc struct {
	Table map[string]systemTableSchema `toml:"table"`
}

// systemSchemaTOML enumerates the 14 system tables, in bootstrap order:
// Database, Table, Column, Key, Constraint, Index, File, Field, Area,
// AreaContent, Privilege, Cascade, Partition, Function.
const systemSchemaTOML = `
[table.Database]
order = 0
[[table.Database.column]]
name = "id"
type = "BigInt"
[[table.Database.column]]
name = "name"
type = "NVarChar"
length = 128
[[table.Database.column]]
name = "flag"
type = "Int"
[[table.Database.column]]
name = "master_url"
type = "NVarChar"
length = 256
nullable = true

[table.Table]
order = 1
[[table.Table.column]]
name = "id"
type = "BigInt"
[[table.Table.column]]
name = "parent_id"
type = "BigInt"
[[table.Table.column]]
name = "name"
type = "NVarChar"
length = 128

[table.Column]
order = 2
[[table.Column.column]]
name = "id"
type = "BigInt"
[[table.Column.column]]
name = "parent_id"
type = "BigInt"
[[table.Column.column]]
name = "name"
type = "NVarChar"
length = 128
[[table.Column.column]]
name = "position"
type = "Int"
[[table.Column.column]]
name = "type"
type = "Int"
[[table.Column.column]]
name = "length"
type = "Int"
[[table.Column.column]]
name = "nullable"
type = "Int"

[table.Key]
order = 3
[[table.Key.column]]
name = "id"
type = "BigInt"
[[table.Key.column]]
name = "parent_id"
type = "BigInt"
[[table.Key.column]]
name = "position"
type = "Int"
[[table.Key.column]]
name = "column_id"
type = "BigInt"

[table.Constraint]
order = 4
[[table.Constraint.column]]
name = "id"
type = "BigInt"
[[table.Constraint.column]]
name = "parent_id"
type = "BigInt"
[[table.Constraint.column]]
name = "type"
type = "Int"
[[table.Constraint.column]]
name = "position"
type = "Int"

[table.Index]
order = 5
[[table.Index.column]]
name = "id"
type = "BigInt"
[[table.Index.column]]
name = "parent_id"
type = "BigInt"
[[table.Index.column]]
name = "name"
type = "NVarChar"
length = 128
[[table.Index.column]]
name = "type"
type = "Int"
[[table.Index.column]]
name = "is_unique"
type = "Int"
[[table.Index.column]]
name = "is_primary"
type = "Int"

[table.File]
order = 6
[[table.File.column]]
name = "id"
type = "BigInt"
[[table.File.column]]
name = "parent_id"
type = "BigInt"
[[table.File.column]]
name = "name"
type = "NVarChar"
length = 128
[[table.File.column]]
name = "category"
type = "Int"
[[table.File.column]]
name = "file_id_blob"
type = "Binary"
length = 0
nullable = true
[[table.File.column]]
name = "size"
type = "BigInt"

[table.Field]
order = 7
[[table.Field.column]]
name = "id"
type = "BigInt"
[[table.Field.column]]
name = "parent_id"
type = "BigInt"
[[table.Field.column]]
name = "position"
type = "Int"
[[table.Field.column]]
name = "category"
type = "Int"
[[table.Field.column]]
name = "function"
type = "Int"
[[table.Field.column]]
name = "source_column_id"
type = "BigInt"
nullable = true

[table.Area]
order = 8
[[table.Area.column]]
name = "id"
type = "BigInt"
[[table.Area.column]]
name = "parent_id"
type = "BigInt"
[[table.Area.column]]
name = "name"
type = "NVarChar"
length = 128

[table.AreaContent]
order = 9
[[table.AreaContent.column]]
name = "area_id"
type = "BigInt"
[[table.AreaContent.column]]
name = "object_id"
type = "BigInt"

[table.Privilege]
order = 10
[[table.Privilege.column]]
name = "id"
type = "BigInt"
[[table.Privilege.column]]
name = "parent_id"
type = "BigInt"
[[table.Privilege.column]]
name = "kind"
type = "Int"
[[table.Privilege.column]]
name = "object_type"
type = "Int"

[table.Cascade]
order = 11
[[table.Cascade.column]]
name = "id"
type = "BigInt"
[[table.Cascade.column]]
name = "parent_id"
type = "BigInt"
[[table.Cascade.column]]
name = "name"
type = "NVarChar"
length = 128

[table.Partition]
order = 12
[[table.Partition.column]]
name = "id"
type = "BigInt"
[[table.Partition.column]]
name = "parent_id"
type = "BigInt"
[[table.Partition.column]]
name = "category"
type = "Int"

[table.Function]
order = 13
[[table.Function.column]]
name = "id"
type = "BigInt"
[[table.Function.column]]
name = "parent_id"
type = "BigInt"
[[table.Function.column]]
name = "routine"
type = "NVarChar"
length = 256
`

// columnType maps a schema document's type name to the catalog enum.
func columnType(name string) catalog.ColumnType {
	switch strings.ToLower(name) {
	case "int":
		return catalog.ColumnTypeInt
	case "bigint":
		return catalog.ColumnTypeBigInt
	case "float":
		return catalog.ColumnTypeFloat
	case "double":
		return catalog.ColumnTypeDouble
	case "char":
		return catalog.ColumnTypeChar
	case "varchar":
		return catalog.ColumnTypeVarChar
	case "nvarchar":
		return catalog.ColumnTypeNVarChar
	case "binary":
		return catalog.ColumnTypeBinary
	case "datetime":
		return catalog.ColumnTypeDateTime
	default:
		return catalog.ColumnTypeUnlimited
	}
}

// parseSystemSchema decodes the embedded schema document.
func parseSystemSchema() (systemSchemaDoc, error) {
	var doc systemSchemaDoc
	_, err := toml.Decode(systemSchemaTOML, &doc)
	return doc, err
}

// orderedTableNames returns the 14 system-table names in bootstrap order.
func orderedTableNames(doc systemSchemaDoc) []string {
	names := make([]string, len(doc.Table))
	for name, spec := range doc.Table {
		if spec.Order >= 0 && spec.Order < len(names) {
			names[spec.Order] = name
		}
	}
	return names
}
