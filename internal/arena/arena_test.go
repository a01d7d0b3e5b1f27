package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutExhaustion(t *testing.T) {
	a := New(2)
	assert.Equal(t, 2, a.Capacity())
	assert.Equal(t, 2, a.FreeCount())

	h1, ok := a.Checkout()
	require.True(t, ok)
	h2, ok := a.Checkout()
	require.True(t, ok)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 0, a.FreeCount())

	_, ok = a.Checkout()
	assert.False(t, ok)

	a.Recycle(h1)
	assert.Equal(t, 1, a.FreeCount())
	_, ok = a.Checkout()
	assert.True(t, ok)
}

func TestQueueFIFO(t *testing.T) {
	a := New(4)

	var handles []Handle
	for i := 0; i < 4; i++ {
		h, ok := a.Checkout()
		require.True(t, ok)
		a.Slot(h).Command = string(rune('a' + i))
		a.PushTail(h)
		handles = append(handles, h)
	}
	assert.Equal(t, 4, a.QueueLen())

	for i := 0; i < 4; i++ {
		h, ok := a.PopHead()
		require.True(t, ok)
		assert.Equal(t, handles[i], h)
		assert.Equal(t, string(rune('a'+i)), a.Slot(h).Command)
		a.Recycle(h)
	}

	_, ok := a.PopHead()
	assert.False(t, ok)
	assert.Equal(t, 0, a.QueueLen())
	assert.Equal(t, 4, a.FreeCount())
}

func TestRecycleClearsSlot(t *testing.T) {
	a := New(1)

	h, ok := a.Checkout()
	require.True(t, ok)
	slot := a.Slot(h)
	slot.Version = V2
	slot.Command = "cmd"
	slot.Args[0] = "arg"
	slot.ChannelName = "chan"
	a.Recycle(h)

	h2, ok := a.Checkout()
	require.True(t, ok)
	require.Equal(t, h, h2)
	slot = a.Slot(h2)
	assert.Equal(t, VersionUnknown, slot.Version)
	assert.Empty(t, slot.Command)
	assert.Empty(t, slot.Args[0])
	assert.Empty(t, slot.ChannelName)
}

func TestOccupancyInvariant(t *testing.T) {
	a := New(4)

	check := func(checkedOut int) {
		t.Helper()
		assert.Equal(t, a.Capacity(), a.FreeCount()+a.QueueLen()+checkedOut)
	}

	check(0)
	h1, _ := a.Checkout()
	check(1)
	a.PushTail(h1)
	check(0)
	h2, _ := a.Checkout()
	check(1)
	a.PushTail(h2)
	check(0)

	popped, ok := a.PopHead()
	require.True(t, ok)
	check(1)
	a.Recycle(popped)
	check(0)
}

func TestInterleavedQueueAndFreeList(t *testing.T) {
	a := New(3)

	// Drain and refill several times to exercise link reuse.
	for round := 0; round < 5; round++ {
		var hs []Handle
		for {
			h, ok := a.Checkout()
			if !ok {
				break
			}
			a.PushTail(h)
			hs = append(hs, h)
		}
		require.Len(t, hs, 3)

		for i := range hs {
			h, ok := a.PopHead()
			require.True(t, ok)
			assert.Equal(t, hs[i], h)
			a.Recycle(h)
		}
	}
	assert.Equal(t, 3, a.FreeCount())
}
