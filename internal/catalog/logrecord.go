// Logging records: an accumulate-then-dedupe operation list where the
// "operations" are catalog mutation log records rather than SQL
// statements. Append as work happens, Dedupe before the log is flushed,
// replay in order during recovery.
package catalog

import (
	"reflect"

	"catalogkernel/internal/dbconfig"
)

// LogRecordKind discriminates what kind of catalog mutation a LogRecord
// describes, so a reader of the log can decide how to reapply a record.
// internal/metaboot builds the meta-database from its schema alone and
// does not replay log records.
type LogRecordKind int

const (
	LogRecordCreateTable LogRecordKind = iota
	LogRecordDropTable
	LogRecordMoveDatabase
	LogRecordAlterDatabaseAttribute
	LogRecordCreateIndex
	LogRecordDropIndex
)

func (k LogRecordKind) String() string {
	names := [...]string{
		"CreateTable", "DropTable", "MoveDatabase", "AlterDatabaseAttribute", "CreateIndex", "DropIndex",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// LogRecord is one entry in a database's recovery log. Version is an
// explicit field so that newer record shapes can add fields without
// breaking replay of older logs, rather than relying on inherited
// Object.serialize behavior.
type LogRecord struct {
	Version    uint32
	Kind       LogRecordKind
	ObjectID   int64
	ObjectName string

	// MoveDatabase-only: both path vectors are always present together,
	// atomically, under the database's exclusive lock, emitting the
	// {prev,post} pair as one record rather than splitting the move
	// into a logged-then-applied two-step that a crash could observe
	// half-done.
	PrevPaths []string
	PostPaths []string

	// AlterDatabaseAttribute-only.
	PrevAttribute uint32
	PostAttribute uint32
}

const currentLogRecordVersion uint32 = 1

// NewMoveDatabaseRecord builds the atomic move-log record for a path
// change.
func NewMoveDatabaseRecord(dbID int64, move PathMove) LogRecord {
	return LogRecord{
		Version:   currentLogRecordVersion,
		Kind:      LogRecordMoveDatabase,
		ObjectID:  dbID,
		PrevPaths: pathVector(move.Prev),
		PostPaths: pathVector(move.Post),
	}
}

func pathVector(p dbconfig.PathTriple) []string {
	return []string{p.Data, p.LogicalLog, p.System}
}

// ReplayPath reconstructs the post-move PathTriple from a
// LogRecordMoveDatabase record alone, the operation recovery performs
// when replaying the log without any other state about the database.
func (r LogRecord) ReplayPath() dbconfig.PathTriple {
	return dbconfig.PathTriple{Data: r.PostPaths[0], LogicalLog: r.PostPaths[1], System: r.PostPaths[2]}
}

// Log is an append-then-dedupe sequence of LogRecords.
type Log struct {
	Records []LogRecord
}

// Append adds a record to the log.
func (l *Log) Append(r LogRecord) {
	l.Records = append(l.Records, r)
}

// Dedupe removes exact-duplicate consecutive records: applying the same
// statement twice is a no-op, so a repeated record only needs logging once.
func (l *Log) Dedupe() {
	if len(l.Records) < 2 {
		return
	}
	out := l.Records[:1]
	for _, r := range l.Records[1:] {
		if reflect.DeepEqual(r, out[len(out)-1]) {
			continue
		}
		out = append(out, r)
	}
	l.Records = out
}
