package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/kernelerr"
)

func TestSharedLocksDoNotContend(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	u1, err := m.Acquire(ctx, LevelTable, "orders", Shared, time.Second)
	require.NoError(t, err)
	defer u1()

	u2, err := m.Acquire(ctx, LevelTable, "orders", Shared, time.Second)
	require.NoError(t, err)
	defer u2()
}

func TestExclusiveExcludesShared(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	ux, err := m.Acquire(ctx, LevelTable, "orders", Exclusive, time.Second)
	require.NoError(t, err)
	defer ux()

	_, err = m.Acquire(ctx, LevelTable, "orders", Shared, 20*time.Millisecond)
	require.Error(t, err)
	var kerr *kernelerr.Error
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, kernelerr.KindLockTimeout, kerr.Kind)
}

func TestDisjointTablesNeverContend(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	u1, err := m.Acquire(ctx, LevelTable, "orders", Exclusive, time.Second)
	require.NoError(t, err)
	defer u1()

	u2, err := m.Acquire(ctx, LevelTable, "customers", Exclusive, time.Second)
	require.NoError(t, err)
	defer u2()
}

func TestReleaseWakesWaiter(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	u1, err := m.Acquire(ctx, LevelTable, "orders", Exclusive, time.Second)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	acquired := false
	go func() {
		defer wg.Done()
		u2, err := m.Acquire(ctx, LevelTable, "orders", Exclusive, time.Second)
		if err == nil {
			acquired = true
			u2()
		}
	}()

	time.Sleep(20 * time.Millisecond)
	u1()
	wg.Wait()
	assert.True(t, acquired)
}

func TestAcquireChainReleasesOnFailure(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	blocker, err := m.Acquire(ctx, LevelTable, "orders", Exclusive, time.Second)
	require.NoError(t, err)
	defer blocker()

	_, err = m.AcquireChain(ctx,
		ChainStep{Level: LevelDatabase, Name: "db1", Mode: Shared, Timeout: time.Second},
		ChainStep{Level: LevelTable, Name: "orders", Mode: Exclusive, Timeout: 20 * time.Millisecond},
	)
	require.Error(t, err)

	u, err := m.Acquire(ctx, LevelDatabase, "db1", Exclusive, 20*time.Millisecond)
	require.NoError(t, err, "database lock must have been released when the chain failed")
	u()
}

func TestUnlimitedTimeout(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	u, err := m.Acquire(ctx, LevelTuple, "row-1", Exclusive, Unlimited)
	require.NoError(t, err)
	u()
}
