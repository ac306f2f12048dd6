// Package ddlintake turns incoming CREATE TABLE/ALTER TABLE/CREATE INDEX
// SQL text into the catalog's DDL intent: column, constraint, and index
// descriptors the catalog package materializes into schema objects. It
// is the one place SQL text is parsed at all; the broader SQL surface
// stays out of scope. Everything downstream of Analyze treats the
// resulting intent as an opaque value — a statement's shape matters,
// not its text.
//
// Built as an AST walk over *ast.CreateTableStmt/*ast.AlterTableStmt,
// with column and constraint extraction structured the way a
// parseColumns/parseConstraints pass would, reused here to build catalog
// intent structs instead of migration-safety warnings.
package ddlintake

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"catalogkernel/internal/catalog"
)

// ColumnIntent describes one column a CREATE/ALTER TABLE statement
// declares, before it has a catalog-assigned ID.
type ColumnIntent struct {
	Name       string
	Type       catalog.ColumnType
	Length     int
	Nullable   bool
	PrimaryKey bool
}

// IndexIntent describes a key-ordered or capability-specific index
// before its backing File is chosen.
type IndexIntent struct {
	Name    string
	Type    catalog.IndexType
	Columns []string
	Unique  bool
}

// ConstraintIntent describes a table-level constraint other than a
// plain column-level NOT NULL.
type ConstraintIntent struct {
	Name              string
	Type              catalog.ConstraintType
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
	CheckExpression   string
}

// CreateTableIntent is the full intent extracted from a CREATE TABLE
// statement.
type CreateTableIntent struct {
	TableName   string
	Columns     []ColumnIntent
	Constraints []ConstraintIntent
	Indexes     []IndexIntent
}

// AlterKind enumerates the ALTER TABLE operations Analyze recognizes.
type AlterKind int

const (
	AlterAddColumn AlterKind = iota
	AlterDropColumn
	AlterModifyColumn
	AlterAddConstraint
	AlterDropIndex
	AlterRenameTable
)

// AlterTableIntent is one operation out of a (possibly multi-spec)
// ALTER TABLE statement.
type AlterTableIntent struct {
	TableName string
	Kind      AlterKind
	Column    *ColumnIntent     // AlterAddColumn, AlterModifyColumn
	DropName  string            // AlterDropColumn, AlterDropIndex
	Constraint *ConstraintIntent // AlterAddConstraint
	Index      *IndexIntent      // AlterAddConstraint when it's an index, not a named constraint
	NewName    string            // AlterRenameTable
}

// CreateIndexIntent is extracted from a standalone CREATE INDEX
// statement.
type CreateIndexIntent struct {
	TableName string
	Index     IndexIntent
}

// Analyzer parses SQL text with TiDB's AST parser.
type Analyzer struct {
	parser *parser.Parser
}

// New constructs an Analyzer.
func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// AnalyzeCreateTable parses a single CREATE TABLE statement into intent.
func (a *Analyzer) AnalyzeCreateTable(sql string) (*CreateTableIntent, error) {
	node, err := a.parseOne(sql)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(*ast.CreateTableStmt)
	if !ok {
		return nil, fmt.Errorf("ddlintake: not a CREATE TABLE statement")
	}
	return intentFromCreateTable(stmt), nil
}

// AnalyzeAlterTable parses a single ALTER TABLE statement into one
// intent per spec (MySQL allows several comma-separated specs in one
// statement).
func (a *Analyzer) AnalyzeAlterTable(sql string) ([]AlterTableIntent, error) {
	node, err := a.parseOne(sql)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(*ast.AlterTableStmt)
	if !ok {
		return nil, fmt.Errorf("ddlintake: not an ALTER TABLE statement")
	}
	return intentFromAlterTable(stmt), nil
}

// AnalyzeCreateIndex parses a standalone CREATE INDEX statement.
func (a *Analyzer) AnalyzeCreateIndex(sql string) (*CreateIndexIntent, error) {
	node, err := a.parseOne(sql)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(*ast.CreateIndexStmt)
	if !ok {
		return nil, fmt.Errorf("ddlintake: not a CREATE INDEX statement")
	}
	return intentFromCreateIndex(stmt), nil
}

func (a *Analyzer) parseOne(sql string) (ast.StmtNode, error) {
	nodes, _, err := a.parser.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("ddlintake: parse: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("ddlintake: empty statement")
	}
	return nodes[0], nil
}

func intentFromCreateTable(stmt *ast.CreateTableStmt) *CreateTableIntent {
	intent := &CreateTableIntent{TableName: stmt.Table.Name.O}

	for _, colDef := range stmt.Cols {
		col := ColumnIntent{
			Name:     colDef.Name.Name.O,
			Type:     columnTypeFromAST(colDef.Tp),
			Length:   lengthFromTypeString(colDef.Tp.String()),
			Nullable: true,
		}
		for _, opt := range colDef.Options {
			switch opt.Tp {
			case ast.ColumnOptionNotNull:
				col.Nullable = false
			case ast.ColumnOptionNull:
				col.Nullable = true
			case ast.ColumnOptionPrimaryKey:
				col.PrimaryKey = true
				col.Nullable = false
			case ast.ColumnOptionUniqKey:
				intent.Constraints = append(intent.Constraints, ConstraintIntent{
					Type: catalog.ConstraintTypeUnique, Columns: []string{col.Name},
				})
			}
		}
		intent.Columns = append(intent.Columns, col)
		if col.PrimaryKey {
			addPrimaryKeyColumn(intent, col.Name)
		}
	}

	for _, c := range stmt.Constraints {
		columns := columnNames(c.Keys)
		switch c.Tp {
		case ast.ConstraintPrimaryKey:
			for _, name := range columns {
				addPrimaryKeyColumn(intent, name)
			}
		case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
			intent.Constraints = append(intent.Constraints, ConstraintIntent{
				Name: c.Name, Type: catalog.ConstraintTypeUnique, Columns: columns,
			})
		case ast.ConstraintForeignKey:
			fk := ConstraintIntent{Name: c.Name, Type: catalog.ConstraintTypeForeignKey, Columns: columns}
			if c.Refer != nil {
				fk.ReferencedTable = c.Refer.Table.Name.O
				for _, spec := range c.Refer.IndexPartSpecifications {
					if spec.Column != nil {
						fk.ReferencedColumns = append(fk.ReferencedColumns, spec.Column.Name.O)
					}
				}
			}
			intent.Constraints = append(intent.Constraints, fk)
		case ast.ConstraintCheck:
			intent.Constraints = append(intent.Constraints, ConstraintIntent{
				Name: c.Name, Type: catalog.ConstraintTypeCheck, Columns: columns,
			})
		case ast.ConstraintIndex, ast.ConstraintKey:
			intent.Indexes = append(intent.Indexes, IndexIntent{
				Name: c.Name, Type: catalog.IndexTypeBtree, Columns: columns,
			})
		case ast.ConstraintFulltext:
			intent.Indexes = append(intent.Indexes, IndexIntent{
				Name: c.Name, Type: catalog.IndexTypeFullText, Columns: columns,
			})
		}
	}

	return intent
}

func addPrimaryKeyColumn(intent *CreateTableIntent, name string) {
	var pk *ConstraintIntent
	for i := range intent.Constraints {
		if intent.Constraints[i].Type == catalog.ConstraintTypePrimaryKey {
			pk = &intent.Constraints[i]
			break
		}
	}
	if pk == nil {
		intent.Constraints = append(intent.Constraints, ConstraintIntent{Name: "PRIMARY", Type: catalog.ConstraintTypePrimaryKey})
		pk = &intent.Constraints[len(intent.Constraints)-1]
	}
	for _, existing := range pk.Columns {
		if strings.EqualFold(existing, name) {
			return
		}
	}
	pk.Columns = append(pk.Columns, name)
}

func intentFromAlterTable(stmt *ast.AlterTableStmt) []AlterTableIntent {
	tableName := stmt.Table.Name.O
	var intents []AlterTableIntent

	for _, spec := range stmt.Specs {
		switch spec.Tp {
		case ast.AlterTableAddColumns:
			for _, colDef := range spec.NewColumns {
				col := ColumnIntent{
					Name:     colDef.Name.Name.O,
					Type:     columnTypeFromAST(colDef.Tp),
					Length:   lengthFromTypeString(colDef.Tp.String()),
					Nullable: true,
				}
				for _, opt := range colDef.Options {
					if opt.Tp == ast.ColumnOptionNotNull {
						col.Nullable = false
					}
				}
				intents = append(intents, AlterTableIntent{TableName: tableName, Kind: AlterAddColumn, Column: &col})
			}

		case ast.AlterTableDropColumn:
			intents = append(intents, AlterTableIntent{
				TableName: tableName, Kind: AlterDropColumn, DropName: spec.OldColumnName.Name.O,
			})

		case ast.AlterTableModifyColumn, ast.AlterTableChangeColumn:
			for _, colDef := range spec.NewColumns {
				col := ColumnIntent{
					Name:   colDef.Name.Name.O,
					Type:   columnTypeFromAST(colDef.Tp),
					Length: lengthFromTypeString(colDef.Tp.String()),
				}
				intents = append(intents, AlterTableIntent{TableName: tableName, Kind: AlterModifyColumn, Column: &col})
			}

		case ast.AlterTableAddConstraint:
			if spec.Constraint == nil {
				continue
			}
			columns := columnNames(spec.Constraint.Keys)
			switch spec.Constraint.Tp {
			case ast.ConstraintIndex, ast.ConstraintKey:
				idx := IndexIntent{Name: spec.Constraint.Name, Type: catalog.IndexTypeBtree, Columns: columns}
				intents = append(intents, AlterTableIntent{TableName: tableName, Kind: AlterAddConstraint, Index: &idx})
			case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
				idx := IndexIntent{Name: spec.Constraint.Name, Type: catalog.IndexTypeBtree, Columns: columns, Unique: true}
				intents = append(intents, AlterTableIntent{TableName: tableName, Kind: AlterAddConstraint, Index: &idx})
			default:
				c := ConstraintIntent{Name: spec.Constraint.Name, Columns: columns}
				switch spec.Constraint.Tp {
				case ast.ConstraintForeignKey:
					c.Type = catalog.ConstraintTypeForeignKey
					if spec.Constraint.Refer != nil {
						c.ReferencedTable = spec.Constraint.Refer.Table.Name.O
					}
				case ast.ConstraintCheck:
					c.Type = catalog.ConstraintTypeCheck
				default:
					c.Type = catalog.ConstraintTypeUnique
				}
				intents = append(intents, AlterTableIntent{TableName: tableName, Kind: AlterAddConstraint, Constraint: &c})
			}

		case ast.AlterTableDropIndex:
			intents = append(intents, AlterTableIntent{TableName: tableName, Kind: AlterDropIndex, DropName: spec.Name})

		case ast.AlterTableRenameTable:
			intents = append(intents, AlterTableIntent{TableName: tableName, Kind: AlterRenameTable, NewName: spec.NewTable.Name.O})
		}
	}

	return intents
}

func intentFromCreateIndex(stmt *ast.CreateIndexStmt) *CreateIndexIntent {
	columns := make([]string, 0, len(stmt.IndexPartSpecifications))
	for _, spec := range stmt.IndexPartSpecifications {
		if spec.Column != nil {
			columns = append(columns, spec.Column.Name.O)
		}
	}
	return &CreateIndexIntent{
		TableName: stmt.Table.Name.O,
		Index: IndexIntent{
			Name:    stmt.IndexName,
			Type:    catalog.IndexTypeBtree,
			Columns: columns,
			Unique:  stmt.KeyType == ast.IndexKeyTypeUnique,
		},
	}
}

func columnNames(keys []*ast.IndexPartSpecification) []string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.Column != nil {
			names = append(names, k.Column.Name.O)
		}
	}
	return names
}

// columnTypeFromAST maps a TiDB field type's string form (e.g.
// "varchar(255)") to the catalog's portable ColumnType using the same
// substring-driven approach a data-type normalizer would, targeting
// catalog.ColumnType instead of a database-specific type enum.
func columnTypeFromAST(tp interface{ String() string }) catalog.ColumnType {
	lower := strings.ToLower(tp.String())
	switch {
	case strings.Contains(lower, "bigint"):
		return catalog.ColumnTypeBigInt
	case strings.Contains(lower, "int"):
		return catalog.ColumnTypeInt
	case strings.Contains(lower, "double"):
		return catalog.ColumnTypeDouble
	case strings.Contains(lower, "float"), strings.Contains(lower, "decimal"):
		return catalog.ColumnTypeFloat
	case strings.Contains(lower, "datetime"), strings.Contains(lower, "timestamp"):
		return catalog.ColumnTypeDateTime
	case strings.Contains(lower, "binary"), strings.Contains(lower, "blob"):
		return catalog.ColumnTypeBinary
	case strings.Contains(lower, "nvarchar"):
		return catalog.ColumnTypeNVarChar
	case strings.Contains(lower, "varchar"):
		return catalog.ColumnTypeVarChar
	case strings.Contains(lower, "char"):
		return catalog.ColumnTypeChar
	case strings.Contains(lower, "text"), strings.Contains(lower, "json"):
		return catalog.ColumnTypeUnlimited
	default:
		return catalog.ColumnTypeUnlimited
	}
}

// lengthFromTypeString extracts the declared length/precision out of a
// field type's string form, e.g. "varchar(255)" -> 255, "int" -> 0.
func lengthFromTypeString(s string) int {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return 0
	}
	shut := strings.IndexByte(s[open:], ')')
	if shut < 0 {
		return 0
	}
	inner := s[open+1 : open+shut]
	if comma := strings.IndexByte(inner, ','); comma >= 0 {
		inner = inner[:comma]
	}
	n := 0
	for _, r := range strings.TrimSpace(inner) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
