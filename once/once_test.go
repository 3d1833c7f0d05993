package once

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatch_RunOnceRunsExactlyOnce(t *testing.T) {
	var l Latch
	var runs int32

	var wg sync.WaitGroup
	const goroutines = 50
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.RunOnce(func() error {
				atomic.AddInt32(&runs, 1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, runs)
	assert.True(t, l.IsInitialized())
}

func TestLatch_FailingInitializerDoesNotPoison(t *testing.T) {
	var l Latch
	boom := errors.New("boom")
	attempt := 0

	err := l.RunOnce(func() error {
		attempt++
		if attempt == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, l.IsInitialized())

	err = l.RunOnce(func() error {
		attempt++
		return nil
	})
	require.NoError(t, err)
	assert.True(t, l.IsInitialized())
	assert.Equal(t, 2, attempt)
}

func TestLatch_PanickingInitializerRollsBackAndRepanics(t *testing.T) {
	var l Latch

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			assert.Equal(t, "boom", r)
		}()
		_ = l.RunOnce(func() error {
			panic("boom")
		})
	}()

	assert.False(t, l.IsInitialized())

	err := l.RunOnce(func() error { return nil })
	require.NoError(t, err)
	assert.True(t, l.IsInitialized())
}

func TestLatch_WaitersBlockUntilFirstRunCompletes(t *testing.T) {
	var l Latch
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		err := l.RunOnce(func() error {
			close(started)
			<-release
			return nil
		})
		assert.NoError(t, err)
	}()

	<-started

	var wg sync.WaitGroup
	results := make([]error, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.RunOnce(func() error {
				t.Error("waiter ran init itself")
				return nil
			})
		}(i)
	}

	close(release)
	wg.Wait()

	for _, err := range results {
		assert.NoError(t, err)
	}
	assert.True(t, l.IsInitialized())
}

func TestLatch_Reset(t *testing.T) {
	var l Latch
	require.NoError(t, l.RunOnce(func() error { return nil }))
	require.NoError(t, l.Reset())
	assert.False(t, l.IsInitialized())

	runs := 0
	require.NoError(t, l.RunOnce(func() error { runs++; return nil }))
	assert.Equal(t, 1, runs)
}

func TestLatch_ResetWithoutInitializationFails(t *testing.T) {
	var l Latch
	err := l.Reset()
	assert.ErrorIs(t, err, ErrOnceNotInitialized)
}

func TestLatch_Disable(t *testing.T) {
	var l Latch
	l.Disable()

	err := l.RunOnce(func() error {
		t.Error("init ran on a disabled latch")
		return nil
	})
	assert.ErrorIs(t, err, ErrDisabled)

	// Disable is idempotent.
	l.Disable()
	assert.False(t, l.IsInitialized())
}

func TestLatch_ResetOnDisabledLatchIsNoOp(t *testing.T) {
	var l Latch
	l.Disable()
	assert.NoError(t, l.Reset())

	err := l.RunOnce(func() error { return nil })
	assert.ErrorIs(t, err, ErrDisabled)
}
