//go:build linux

package futex

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	futexWait = 0
	futexWake = 1
)

// wordImpl on Linux is a real futex: waits and wakes go through the
// FUTEX_WAIT/FUTEX_WAKE syscalls against this struct's own address, so no
// separate parking bookkeeping (mutex, condvar, waiter count) is needed at
// all.
type wordImpl struct {
	v uint32
}

func (w *wordImpl) Load() uint32 {
	return atomic.LoadUint32(&w.v)
}

func (w *wordImpl) CompareAndSwap(old, new uint32) bool {
	return atomic.CompareAndSwapUint32(&w.v, old, new)
}

func (w *wordImpl) Add(delta int32) uint32 {
	return atomic.AddUint32(&w.v, uint32(delta))
}

func (w *wordImpl) Swap(new uint32) uint32 {
	return atomic.SwapUint32(&w.v, new)
}

func (w *wordImpl) Wait(expect uint32) {
	// FUTEX_WAIT atomically checks that *addr == expect before blocking, so
	// there is no lost-wakeup race against a concurrent store between our
	// Load and the syscall: if the value already changed, the syscall
	// returns EAGAIN immediately instead of blocking.
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.v)),
		uintptr(futexWait),
		uintptr(expect),
		0, 0, 0,
	)
}

func (w *wordImpl) WakeAll() {
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.v)),
		uintptr(futexWake),
		uintptr(1<<30),
		0, 0, 0,
	)
}
