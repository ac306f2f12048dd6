package kernelerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsSentinel(t *testing.T) {
	err := New(KindLockTimeout, ModuleLock, "timed out acquiring table lock on %q", "orders")
	assert.True(t, errors.Is(err, LockTimeout))
	assert.False(t, errors.Is(err, BadArgument))
}

func TestWrappedErrorIsSentinel(t *testing.T) {
	inner := New(KindInvalidDefault, ModuleCatalog, "cannot assign literal to column type")
	wrapped := fmt.Errorf("creating column %q: %w", "price", inner)
	assert.True(t, errors.Is(wrapped, InvalidDefault))

	var kerr *Error
	require.True(t, errors.As(wrapped, &kerr))
	assert.Equal(t, ModuleCatalog, kerr.Module)
}

func TestAtLineMessage(t *testing.T) {
	err := AtLine(ModuleParser, 12, "unexpected token %q", ";;")
	assert.Contains(t, err.Error(), "at line 12")
	assert.True(t, errors.Is(err, SQLSyntaxError))
}

func TestRecoverable(t *testing.T) {
	assert.True(t, New(KindLockTimeout, ModuleLock, "x").Recoverable())
	assert.False(t, New(KindMetaDatabaseCorrupted, ModuleCatalog, "x").Recoverable())
}
