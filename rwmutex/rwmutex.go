// Package rwmutex implements a reader/writer mutex whose entire state
// lives in one 32-bit word, with futex-based parking on Linux and a
// condition-variable fallback everywhere else (see internal/futex). The
// bit-packed algorithm below is identical on every platform; only the
// underlying wait primitive changes.
package rwmutex

import "github.com/larkspur-io/segwire/internal/futex"

const (
	exclusiveHeld      uint32 = 1 << 31
	exclusiveRequested uint32 = 1 << 30
	sharedCountMask    uint32 = exclusiveRequested - 1
)

// RWMutex is a non-reentrant reader/writer mutex. It is reader-friendly: a
// shared acquirer that arrives after EXCLUSIVE_REQUESTED is set can still
// join as long as no exclusive holder is active, which avoids deadlocking
// a thread that re-enters a shared lock it already holds via a different
// call site. The zero value is an unlocked mutex, ready to use.
type RWMutex struct {
	state futex.Word
}

// LockExclusive blocks until the mutex is held exclusively by the caller.
func (m *RWMutex) LockExclusive() {
	if m.state.CompareAndSwap(0, exclusiveHeld) {
		return
	}
	m.lockExclusiveSlow()
}

func (m *RWMutex) lockExclusiveSlow() {
	for {
		if m.state.CompareAndSwap(0, exclusiveHeld) {
			return
		}

		state := m.state.Load()
		if state&exclusiveRequested == 0 {
			if !m.state.CompareAndSwap(state, state|exclusiveRequested) {
				// Lost the race to set the request bit; the state changed
				// under us. Go back to the top and retry the fast path.
				continue
			}
			state |= exclusiveRequested
		}

		m.state.Wait(state)
	}
}

// LockShared blocks until the caller holds a shared lock on the mutex.
func (m *RWMutex) LockShared() {
	state := m.state.Add(1)
	for state&exclusiveHeld != 0 {
		m.state.Wait(state)
		state = m.state.Load()
	}
}

// UnlockExclusive releases the caller's exclusive hold.
func (m *RWMutex) UnlockExclusive() {
	old := m.state.And(^(exclusiveHeld | exclusiveRequested))
	if old&^exclusiveHeld != 0 {
		// Other goroutines are waiting: shared waiters now collectively
		// hold the lock, or an exclusive waiter needs to re-establish the
		// request bit we just cleared. Either way, wake everyone.
		m.state.WakeAll()
	}
}

// UnlockShared releases one of the caller's shared holds.
func (m *RWMutex) UnlockShared() {
	state := m.state.Add(-1)
	if state != exclusiveRequested {
		return
	}
	if m.state.CompareAndSwap(exclusiveRequested, 0) {
		// Wake every exclusive waiter: one of them will grab the lock,
		// the rest must re-establish the request bit.
		m.state.WakeAll()
	}
}

// HeldExclusive reports whether the mutex is currently held exclusively by
// some goroutine, without regard to which one.
func (m *RWMutex) HeldExclusive() bool {
	return m.state.Load()&exclusiveHeld != 0
}

// HeldShared reports whether the mutex currently has at least one shared
// holder.
func (m *RWMutex) HeldShared() bool {
	return m.state.Load()&sharedCountMask != 0
}
