package coordinator

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftLockRejectsWhileLeaseLive(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lock := NewDraftLock(clock, 30*time.Second)

	token, err := lock.Acquire("alice")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, token)

	clock.Advance(10 * time.Second)
	_, err = lock.Acquire("bob")
	require.Error(t, err)

	var held *LockHeldError
	require.True(t, errors.As(err, &held))
	assert.Equal(t, "alice", held.Holder)
	assert.Equal(t, 20*time.Second, held.RetryAfter)
}

func TestDraftLockForceTakesExpiredLease(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lock := NewDraftLock(clock, 30*time.Second)

	staleToken, err := lock.Acquire("alice")
	require.NoError(t, err)

	clock.Advance(31 * time.Second)
	freshToken, err := lock.Acquire("bob")
	require.NoError(t, err)
	assert.NotEqual(t, staleToken, freshToken)
	assert.True(t, lock.Held())
}

func TestDraftLockReleaseIsTokenFenced(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lock := NewDraftLock(clock, 30*time.Second)

	staleToken, err := lock.Acquire("alice")
	require.NoError(t, err)

	clock.Advance(31 * time.Second)
	freshToken, err := lock.Acquire("bob")
	require.NoError(t, err)

	// A late release from the overridden holder must not clear bob's lease.
	assert.False(t, lock.Release(staleToken))
	assert.True(t, lock.Held())

	assert.True(t, lock.Release(freshToken))
	assert.False(t, lock.Held())
}

func TestDraftLockReleaseThenReacquire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lock := NewDraftLock(clock, 30*time.Second)

	token, err := lock.Acquire("alice")
	require.NoError(t, err)
	require.True(t, lock.Release(token))

	_, err = lock.Acquire("bob")
	assert.NoError(t, err)
}
