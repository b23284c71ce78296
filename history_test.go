package vgnav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryHistory(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory("/")
	var seen []string
	unsub := h.OnChange(func(p string) { seen = append(seen, p) })

	assert.NoError(h.Push("/poc/jobs"))
	assert.NoError(h.Push("/poc/jobs/1"))
	assert.Equal("/poc/jobs/1", h.CurrentPath())
	assert.Equal(3, h.Len())
	assert.Empty(seen, "push must not notify")

	assert.True(h.Back())
	assert.Equal("/poc/jobs", h.CurrentPath())
	assert.True(h.Forward())
	assert.False(h.Forward())
	assert.True(h.Go(-2))
	assert.False(h.Back())
	assert.Equal([]string{"/poc/jobs", "/poc/jobs/1", "/"}, seen)

	// pushing from the middle drops the forward entries
	assert.NoError(h.Push("/love-story"))
	assert.Equal([]string{"/", "/love-story"}, h.Entries())
	assert.Equal(1, h.Index())

	assert.NoError(h.Replace("/love-story?x=1"))
	assert.Equal([]string{"/", "/love-story?x=1"}, h.Entries())
	assert.Equal(3, h.Pushes())
	assert.Equal(1, h.Replaces())

	unsub()
	unsub()
	assert.True(h.Back())
	assert.Len(seen, 3)
}

func TestMemoryHistoryZeroValue(t *testing.T) {
	var h MemoryHistory
	assert.Equal(t, "/", h.CurrentPath())
	assert.NoError(t, h.Push("/a"))
	assert.Equal(t, []string{"/", "/a"}, h.Entries())
}

func TestSubscriptionsRemoveDuringSnapshot(t *testing.T) {

	var s subscriptions[func()]
	calls := 0
	var remove2 func()
	s.add(func() { calls++; remove2() })
	remove2 = s.add(func() { calls++ })

	for _, f := range s.snapshot() {
		f()
	}
	assert.Equal(t, 2, calls, "snapshot taken before removal still runs")
	assert.Equal(t, 1, s.len())
}
