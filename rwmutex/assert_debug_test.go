//go:build segwire_debug

package rwmutex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRWMutex_AssertLockedExclusive covers spec.md §8 mutex scenario 4:
// assertLockedExclusive succeeds when the holder owns exclusive; fails (in
// debug) when the holder owns shared or nothing.
func TestRWMutex_AssertLockedExclusive(t *testing.T) {
	var m RWMutex

	assert.Panics(t, m.AssertLockedExclusive, "no holder at all")

	m.LockShared()
	assert.Panics(t, m.AssertLockedExclusive, "shared holder is not an exclusive holder")
	m.UnlockShared()

	m.LockExclusive()
	assert.NotPanics(t, m.AssertLockedExclusive)
	m.UnlockExclusive()
}

// TestRWMutex_AssertLockedShared mirrors scenario 4 for the shared-lock
// assertion: succeeds with a shared holder, panics with an exclusive
// holder or no holder.
func TestRWMutex_AssertLockedShared(t *testing.T) {
	var m RWMutex

	assert.Panics(t, m.AssertLockedShared, "no holder at all")

	m.LockExclusive()
	assert.Panics(t, m.AssertLockedShared, "exclusive holder is not a shared holder")
	m.UnlockExclusive()

	m.LockShared()
	assert.NotPanics(t, m.AssertLockedShared)
	m.UnlockShared()
}
