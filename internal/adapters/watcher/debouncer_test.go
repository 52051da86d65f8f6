package watcher_test

import (
	"sync"
	"testing"
	"time"

	"github.com/partforge/partforge/internal/adapters/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *collector) add(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, paths)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func (c *collector) first() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.batches) == 0 {
		return nil
	}
	return c.batches[0]
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	c := &collector{}
	d := watcher.NewDebouncer(20*time.Millisecond, c.add)

	d.Add("a.go")
	d.Add("b.go")
	d.Add("a.go")

	require.Eventually(t, func() bool { return c.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"a.go", "b.go"}, c.first())
}

func TestDebouncer_SeparateWindowsFireSeparately(t *testing.T) {
	c := &collector{}
	d := watcher.NewDebouncer(10*time.Millisecond, c.add)

	d.Add("a.go")
	require.Eventually(t, func() bool { return c.count() == 1 }, time.Second, 5*time.Millisecond)

	d.Add("b.go")
	require.Eventually(t, func() bool { return c.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Flush(t *testing.T) {
	c := &collector{}
	d := watcher.NewDebouncer(time.Hour, c.add)

	d.Add("a.go")
	d.Flush()

	assert.Equal(t, 1, c.count())
	assert.Equal(t, []string{"a.go"}, c.first())
}

func TestDebouncer_FlushWithoutPending(t *testing.T) {
	c := &collector{}
	d := watcher.NewDebouncer(time.Hour, c.add)

	d.Flush()
	assert.Equal(t, 0, c.count())
}
