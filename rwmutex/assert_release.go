//go:build !segwire_debug

package rwmutex

// AssertLockedExclusive is a no-op outside segwire_debug builds.
func (m *RWMutex) AssertLockedExclusive() {}

// AssertLockedShared is a no-op outside segwire_debug builds.
func (m *RWMutex) AssertLockedShared() {}
