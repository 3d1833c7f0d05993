// Package once implements a one-shot initialization latch on top of
// internal/futex.Word, the same wait/wake primitive rwmutex.RWMutex is
// built on. Unlike sync.Once, a failed initializer — whether it returns an
// error or panics — rolls the latch back to uninitialized instead of
// poisoning it, so a later call can retry.
package once

import (
	"errors"

	"github.com/larkspur-io/segwire/internal/futex"
)

const (
	uninitialized uint32 = iota
	initializing
	initializingWithWaiters
	initialized
	disabled
)

// Latch is a one-shot initialization gate. The zero value is an
// uninitialized, enabled latch, ready to use.
type Latch struct {
	state futex.Word
}

var (
	// ErrDisabled is returned by RunOnce when the latch was permanently
	// disabled by a call to Disable.
	ErrDisabled = errors.New("once: latch is disabled")

	// ErrOnceNotInitialized is returned by Reset when the latch is neither
	// initialized nor disabled.
	ErrOnceNotInitialized = errors.New("once: latch is not initialized")
)

// RunOnce runs init exactly once across all callers racing on this latch,
// and blocks every other caller until that run completes. If init returns
// an error, the latch rolls back to uninitialized and that error is
// returned only to the caller who ran it; callers that were waiting on
// this attempt wake and race to run their own init, as does the next
// caller. If
// init panics, the latch likewise rolls back before the panic is
// re-raised, so the failure never poisons the latch the way sync.Once's
// does.
func (l *Latch) RunOnce(init func() error) error {
startOver:
	for {
		state := l.state.Load()
		switch state {
		case initialized:
			return nil

		case disabled:
			return ErrDisabled

		case uninitialized:
			if !l.state.CompareAndSwap(uninitialized, initializing) {
				continue
			}
			return l.runAndPublish(init)

		case initializing:
			if !l.state.CompareAndSwap(initializing, initializingWithWaiters) {
				continue
			}
			l.state.Wait(initializingWithWaiters)
			goto startOver

		case initializingWithWaiters:
			l.state.Wait(initializingWithWaiters)
			goto startOver

		default:
			continue
		}
	}
}

func (l *Latch) runAndPublish(init func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.rollback()
			panic(r)
		}
	}()

	if err = init(); err != nil {
		l.rollback()
		return err
	}

	l.publish(initialized)
	return nil
}

func (l *Latch) rollback() {
	l.publish(uninitialized)
}

// publish sets the final state after a run and wakes any waiters that
// piled up behind initializingWithWaiters while it ran. Uses an
// unconditional swap, not a compare-and-swap, because the caller is the
// sole owner of the initializing/initializingWithWaiters transition at
// this point: a conditional CAS here could lose a race against a
// waiter's own CAS (initializing -> initializingWithWaiters) and leave
// the latch stuck with no one left to wake it.
func (l *Latch) publish(final uint32) {
	old := l.state.Swap(final)
	if old == initializingWithWaiters {
		l.state.WakeAll()
	}
}

// Reset returns an initialized latch to uninitialized so the next RunOnce
// call will run init again. It returns ErrOnceNotInitialized if the latch
// is not currently initialized, and succeeds silently (a no-op) if the
// latch has been disabled.
func (l *Latch) Reset() error {
	if l.state.CompareAndSwap(disabled, disabled) {
		return nil
	}
	if l.state.CompareAndSwap(initialized, uninitialized) {
		return nil
	}
	return ErrOnceNotInitialized
}

// Disable permanently moves the latch to the disabled state. Every future
// RunOnce call returns ErrDisabled without running init. If an
// initialization is in flight, Disable waits for it to finish before
// taking effect, so it never races a concurrent first-time init.
func (l *Latch) Disable() {
	for {
		state := l.state.Load()
		switch state {
		case disabled:
			return
		case initializing:
			if l.state.CompareAndSwap(initializing, initializingWithWaiters) {
				state = initializingWithWaiters
			} else {
				continue
			}
			fallthrough
		case initializingWithWaiters:
			l.state.Wait(initializingWithWaiters)
			continue
		default:
			if l.state.CompareAndSwap(state, disabled) {
				return
			}
		}
	}
}

// IsInitialized reports whether the latch has completed a successful
// RunOnce and has not since been Reset or Disabled.
func (l *Latch) IsInitialized() bool {
	return l.state.Load() == initialized
}
