package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PushPop(t *testing.T) {
	q := New[int]()
	assert.True(t, q.Empty())

	q.Push(1, 2, 3)
	assert.Equal(t, 3, q.Len())

	item, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, item)

	item, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, item)

	q.Push(4)

	item, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 3, item)

	item, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 4, item)

	_, ok = q.Pop()
	assert.False(t, ok)
	assert.True(t, q.Empty())
}

func TestQueue_GetAndEmpty(t *testing.T) {
	q := New[string]()
	q.Push("a", "b", "c")

	items := q.GetAndEmpty()
	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.True(t, q.Empty())
	assert.Empty(t, q.GetAndEmpty())
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := New[int]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, q.Len())
}
