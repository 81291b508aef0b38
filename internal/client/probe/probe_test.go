package probe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	calls atomic.Int32
	mu    sync.Mutex
	err   error
	delay time.Duration
}

func (f *fakeChecker) set(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeChecker) Health(ctx context.Context) error {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func TestProbe_InitialState(t *testing.T) {
	p := New(&fakeChecker{}, 0, logging.Discard())
	assert.Equal(t, StateUnknown, p.State())
	assert.Equal(t, models.ModeRemote, p.Mode())
	assert.Equal(t, DefaultTimeout, p.timeout)
}

func TestProbe_CachesRemote(t *testing.T) {
	fc := &fakeChecker{}
	p := New(fc, time.Second, logging.Discard())
	ctx := context.Background()

	require.True(t, p.Check(ctx))
	fc.set(errors.New("down"))
	require.True(t, p.Check(ctx), "cached answer must survive a connectivity change")

	assert.Equal(t, int32(1), fc.calls.Load())
	assert.Equal(t, StateRemote, p.State())
}

func TestProbe_CachesLocal(t *testing.T) {
	fc := &fakeChecker{err: errors.New("dns")}
	p := New(fc, time.Second, logging.Discard())
	ctx := context.Background()

	require.False(t, p.Check(ctx))
	fc.set(nil)
	require.False(t, p.Check(ctx))

	assert.Equal(t, int32(1), fc.calls.Load())
	assert.Equal(t, models.ModeLocal, p.Mode())
}

func TestProbe_RecheckRederives(t *testing.T) {
	fc := &fakeChecker{err: errors.New("down")}
	p := New(fc, time.Second, logging.Discard())
	ctx := context.Background()

	require.False(t, p.Check(ctx))

	fc.set(nil)
	require.True(t, p.Recheck(ctx))
	assert.Equal(t, StateRemote, p.State())

	fc.set(errors.New("down again"))
	require.False(t, p.Recheck(ctx))
	assert.Equal(t, int32(3), fc.calls.Load())
}

func TestProbe_Invalidate(t *testing.T) {
	fc := &fakeChecker{}
	p := New(fc, time.Second, logging.Discard())
	ctx := context.Background()

	p.Check(ctx)
	p.Invalidate()
	assert.Equal(t, StateUnknown, p.State())

	p.Check(ctx)
	assert.Equal(t, int32(2), fc.calls.Load())
}

func TestProbe_TimeoutMeansLocal(t *testing.T) {
	fc := &fakeChecker{delay: time.Second}
	p := New(fc, 20*time.Millisecond, logging.Discard())

	start := time.Now()
	require.False(t, p.Check(context.Background()))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestProbe_ConcurrentChecksCollapse(t *testing.T) {
	fc := &fakeChecker{delay: 20 * time.Millisecond}
	p := New(fc, time.Second, logging.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, p.Check(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fc.calls.Load())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "remote", StateRemote.String())
	assert.Equal(t, "local", StateLocal.String())
}
