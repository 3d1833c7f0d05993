//go:build segwire_debug

package rwmutex

// AssertLockedExclusive panics if m is not currently held exclusively.
// Built only with the segwire_debug tag; compiled out of release builds.
func (m *RWMutex) AssertLockedExclusive() {
	if !m.HeldExclusive() {
		panic("rwmutex: expected exclusive lock to be held")
	}
}

// AssertLockedShared panics if m has no current shared holder.
// Built only with the segwire_debug tag; compiled out of release builds.
func (m *RWMutex) AssertLockedShared() {
	if !m.HeldShared() {
		panic("rwmutex: expected a shared lock to be held")
	}
}
