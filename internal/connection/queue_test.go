package connection

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := newQueue[int](4)

	for i := 0; i < 5; i++ {
		require.True(t, q.Send(i))
	}
	assert.Equal(t, 5, q.Len())

	for i := 0; i < 5; i++ {
		v, ok := q.Receive()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_GrowAfterWrap(t *testing.T) {
	q := newQueue[int](4)

	// Move head forward so the ring wraps before it grows
	for i := 0; i < 3; i++ {
		q.Send(i)
	}
	for i := 0; i < 3; i++ {
		q.Receive()
	}

	for i := 0; i < 100; i++ {
		require.True(t, q.Send(i))
	}
	for i := 0; i < 100; i++ {
		v, ok := q.Receive()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestQueue_CloseDrainsRemaining(t *testing.T) {
	q := newQueue[string](2)
	q.Send("a")
	q.Send("b")
	q.Close()

	assert.False(t, q.Send("c"), "send after close should fail")

	v, ok := q.Receive()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	v, ok = q.Receive()
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = q.Receive()
	assert.False(t, ok)
}

func TestQueue_CloseWakesReceiver(t *testing.T) {
	q := newQueue[int](1)

	done := make(chan bool)
	go func() {
		_, ok := q.Receive()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("receiver not woken by Close")
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := newQueue[int](1)
	const producers, perProducer = 8, 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Send(p*perProducer + i)
			}
		}(p)
	}

	seen := make(map[int]bool)
	for len(seen) < producers*perProducer {
		v, ok := q.Receive()
		require.True(t, ok)
		seen[v] = true
	}
	wg.Wait()

	assert.Equal(t, 0, q.Len())
}
