package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SerializesSameKey(t *testing.T) {
	l := NewLocal()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "s1")
			if err != nil {
				t.Error(err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxInside)
	}
	if l.held() != 0 {
		t.Errorf("expected no tracked keys after release, got %d", l.held())
	}
}

func TestLocal_IndependentKeys(t *testing.T) {
	l := NewLocal()
	u1, err := l.Lock(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	defer u1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	u2, err := l.Lock(ctx, "b")
	if err != nil {
		t.Fatalf("different key should not block: %v", err)
	}
	u2()
}

func TestLocal_ContextCancel(t *testing.T) {
	l := NewLocal()
	unlock, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "k"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	unlock()
	unlock() // second call is a no-op
	if l.held() != 0 {
		t.Errorf("expected no tracked keys, got %d", l.held())
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedis_LockUnlock(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, time.Minute, nil)
	require.NoError(t, l.Ping(context.Background()))

	unlock, err := l.Lock(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"s1"))

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.False(t, mr.Exists(keyPrefix+"s1"))

	unlock2, err := l.Lock(context.Background(), "s1")
	require.NoError(t, err)
	unlock2()
}

func TestRedis_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, time.Second, nil)

	stale, err := l.Lock(context.Background(), "s1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(keyPrefix+"s1"))

	fresh, err := l.Lock(context.Background(), "s1")
	require.NoError(t, err)

	stale()
	assert.True(t, mr.Exists(keyPrefix+"s1"), "stale holder must not release the new lock")

	fresh()
	assert.False(t, mr.Exists(keyPrefix+"s1"))
}

func TestRedis_ConnectionError(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, time.Second, nil)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := l.Lock(ctx, "s1")
	assert.Error(t, err)
}
