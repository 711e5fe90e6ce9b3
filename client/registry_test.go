package client

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinue(t *testing.T) {
	r := Registry{}
	r.Initialize()

	// first contact counts as a visit
	assert.True(t, r.Continue("10.0.0.1", "note_1"))

	// page refresh does not
	assert.False(t, r.Continue("10.0.0.1", "note_1"))

	// another profile does again
	assert.True(t, r.Continue("10.0.0.1", "note_2"))

	// and so does another client on the same profile
	assert.True(t, r.Continue("10.0.0.2", "note_2"))
}

func TestCountAndFlush(t *testing.T) {
	r := Registry{}
	r.Initialize()

	r.Continue("10.0.0.1", "note_1")
	r.Continue("10.0.0.2", "note_1")
	assert.Equal(t, 2, r.Count())

	// entries are recent, a flush keeps them
	r.Flush()
	assert.Equal(t, 2, r.Count())
}

func TestDump(t *testing.T) {
	r := Registry{}
	r.Initialize()

	for i := 0; i < 10; i++ {
		r.Continue(fmt.Sprintf("10.0.0.%d", i), "note_1")
	}

	assert.Len(t, r.Dump(5), 5)
	assert.Len(t, r.Dump(50), 10)
}

func TestConcurrentAccess(t *testing.T) {
	r := Registry{}
	r.Initialize()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Continue(fmt.Sprintf("10.0.%d.1", n), "note_1")
			r.Count()
			r.Dump(10)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Count())
}
