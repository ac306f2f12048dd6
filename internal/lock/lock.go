// Package lock implements a hierarchical database→table→tuple lock
// order: all DDL/DML against the same object serializes through this
// order, two sessions touching disjoint tables never contend, and
// timeouts are always recoverable with no partial state. There is no
// deadlock detector; correctness instead comes from callers always
// acquiring in the fixed database→table→tuple order, generalizing a
// single per-database mutex into a three-level named lock table.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalogkernel/internal/kernelerr"
)

// Mode is the acquisition mode. Shared (S) lockers may read concurrently;
// Exclusive (X) lockers require no other lockers at that name.
type Mode int

const (
	Shared Mode = iota
	Exclusive
)

// Level names the position in the hierarchy, used only for diagnostics.
type Level int

const (
	LevelDatabase Level = iota
	LevelTable
	LevelTuple
)

func (l Level) String() string {
	switch l {
	case LevelDatabase:
		return "database"
	case LevelTable:
		return "table"
	case LevelTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Unlimited requests a wait with no timeout, bypassing the deadline
// entirely rather than waiting forever on a very large duration.
const Unlimited time.Duration = -1

// entry is the state for one named lock: one writer xor N readers, plus a
// channel woken on release so waiters don't need to poll.
type entry struct {
	mu      sync.Mutex
	readers int
	writer  bool
	waiters chan struct{}
}

func newEntry() *entry {
	return &entry{waiters: make(chan struct{}, 1)}
}

func (e *entry) notify() {
	select {
	case e.waiters <- struct{}{}:
	default:
	}
}

// Manager is a named-lock table keyed by (Level, Name). Each
// catalog.Database owns its own Manager; callers acquire database, then
// table, then tuple locks in that order and release with the Unlocker
// returned by Acquire.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewManager returns an empty lock manager.
func NewManager() *Manager {
	return &Manager{entries: make(map[string]*entry)}
}

func key(level Level, name string) string {
	return fmt.Sprintf("%d/%s", level, name)
}

func (m *Manager) entryFor(level Level, name string) *entry {
	k := key(level, name)
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[k]
	if !ok {
		e = newEntry()
		m.entries[k] = e
	}
	return e
}

// Unlocker releases a single acquisition. Callers invoke it via defer
// immediately after a successful Acquire, the idiomatic Go substitute for
// scoped-acquisition/RAII style lock release.
type Unlocker func()

// Acquire blocks until the (level, name) lock is held in the requested
// mode, or ctx is done, or timeout elapses — whichever comes first. A
// zero timeout means try-once; Unlimited disables the timeout entirely.
// On timeout it returns a kernelerr LockTimeout error and leaves no
// partial state (the entry's counters are untouched on the failing
// path).
func (m *Manager) Acquire(ctx context.Context, level Level, name string, mode Mode, timeout time.Duration) (Unlocker, error) {
	e := m.entryFor(level, name)

	var deadline <-chan time.Time
	if timeout >= 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		e.mu.Lock()
		if mode == Shared {
			if !e.writer {
				e.readers++
				e.mu.Unlock()
				return func() { m.releaseShared(e) }, nil
			}
		} else {
			if !e.writer && e.readers == 0 {
				e.writer = true
				e.mu.Unlock()
				return func() { m.releaseExclusive(e) }, nil
			}
		}
		e.mu.Unlock()

		select {
		case <-e.waiters:
			continue
		case <-deadline:
			return nil, kernelerr.New(kernelerr.KindLockTimeout, kernelerr.ModuleLock,
				"timed out acquiring %s lock %q on %s", modeName(mode), name, level)
		case <-ctx.Done():
			return nil, kernelerr.New(kernelerr.KindLockTimeout, kernelerr.ModuleLock,
				"context canceled acquiring %s lock %q on %s: %v", modeName(mode), name, level, ctx.Err())
		}
	}
}

func modeName(m Mode) string {
	if m == Exclusive {
		return "exclusive"
	}
	return "shared"
}

func (m *Manager) releaseShared(e *entry) {
	e.mu.Lock()
	e.readers--
	e.mu.Unlock()
	e.notify()
}

func (m *Manager) releaseExclusive(e *entry) {
	e.mu.Lock()
	e.writer = false
	e.mu.Unlock()
	e.notify()
}

// AcquireChain acquires a sequence of locks in the order given, releasing
// everything already held if any step in the chain fails — the
// database→table→tuple order is the caller's responsibility to supply in
// order. The returned Unlocker releases the whole chain in reverse order.
func (m *Manager) AcquireChain(ctx context.Context, steps ...ChainStep) (Unlocker, error) {
	var held []Unlocker
	for _, s := range steps {
		u, err := m.Acquire(ctx, s.Level, s.Name, s.Mode, s.Timeout)
		if err != nil {
			for i := len(held) - 1; i >= 0; i-- {
				held[i]()
			}
			return nil, err
		}
		held = append(held, u)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}, nil
}

// ChainStep is one level of a database→table→tuple acquisition request.
type ChainStep struct {
	Level   Level
	Name    string
	Mode    Mode
	Timeout time.Duration
}
