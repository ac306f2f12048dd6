package logfile

import (
	"context"
	"sync"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/predicate"
)

// Base is the abstract File every variant embeds: it owns the FileID,
// tracks mount/backup state, and supplies the structural capability
// answers common across variants so each driver only needs to override
// what makes it different.
type Base struct {
	mu       sync.Mutex
	id       *fileid.FileID
	mounted  bool
	backingUp bool
	size     int64

	Table *catalog.Table
	Row   *catalog.File
}

// NewBase wraps a FileID and its owning table/file meta-row.
func NewBase(table *catalog.Table, row *catalog.File, id *fileid.FileID) Base {
	return Base{Table: table, Row: row, id: id}
}

// FileID returns the driver's current FileID.
func (b *Base) FileID() *fileid.FileID { return b.id }

// Create installs a fresh FileID, the moment a variant's setFileID
// routine has already populated it.
func (b *Base) Create(ctx context.Context, id *fileid.FileID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.id = id
	return nil
}

// Destroy clears the driver's FileID. Actual storage reclamation is the
// concern of the variant (e.g. dropping a backing SQL table), so Base
// only resets bookkeeping state; variants call this after their own
// teardown completes.
func (b *Base) Destroy(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.id = nil
	b.mounted = false
	return nil
}

// Mount marks the file mounted.
func (b *Base) Mount(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mounted = true
	return nil
}

// Unmount marks the file unmounted.
func (b *Base) Unmount(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mounted = false
	return nil
}

// StartBackup marks the file as under backup; restorable is recorded by
// variants that need to distinguish an online vs point-in-time backup.
func (b *Base) StartBackup(ctx context.Context, restorable bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.backingUp = true
	return nil
}

// EndBackup clears backup state.
func (b *Base) EndBackup(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.backingUp = false
	return nil
}

// GetSize reports the tracked storage size. Variants update Base.size as
// they mutate their backing store; this default simply reports the last
// recorded value.
func (b *Base) GetSize(ctx context.Context) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size, nil
}

// SetSize updates the tracked storage size, called by variants after a
// mutation that changes it.
func (b *Base) SetSize(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = n
}

// IsAbleToUndo defaults to true: every variant here is crash-recoverable
// through the catalog's own recovery log unless it overrides this.
func (b *Base) IsAbleToUndo() bool { return true }

// IsAbleTo answers the generic capability query by delegating to
// IsAbleToUndo, the one capability this covers generically.
func (b *Base) IsAbleTo(c Capability) bool {
	switch c {
	case CapabilityUndo:
		return b.IsAbleToUndo()
	default:
		return false
	}
}

// CapabilityProfile is a declarative summary of a variant's fixed
// capability answers, letting each variant's IsAbleTo* methods be a thin
// lookup rather than repeated boilerplate — a table-driven defaulting
// style applied to capability flags instead of SQL generation options.
type CapabilityProfile struct {
	Scan              bool
	Fetch             bool
	GetByBitSet       bool
	SearchByBitSet    bool
	Sort              bool
	KeyUnique         bool
	HasAllTuples      bool
	SkipInsert        SkipInsertType
	FunctionFields    map[FunctionField]bool
	SearchPredicates  map[predicate.Kind]bool
}

// CanSearch answers IsAbleToSearch conservatively: unknown predicate
// kinds, and And/Or nodes whose operands aren't all individually
// supported, are unsupported. It may only return false when the file
// provably cannot evaluate the predicate.
func (p CapabilityProfile) CanSearch(pred *predicate.Predicate) bool {
	if pred == nil {
		return true
	}
	switch pred.Kind {
	case predicate.KindAnd, predicate.KindOr:
		if !p.SearchPredicates[pred.Kind] {
			return false
		}
		for _, operand := range pred.Operands {
			if !p.CanSearch(operand) {
				return false
			}
		}
		return true
	default:
		return p.SearchPredicates[pred.Kind]
	}
}
