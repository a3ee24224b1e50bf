package objconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicatePrioritiesBreaksTies(t *testing.T) {
	a := newObject("a")
	a.StartPriority = 3
	b := newObject("b")
	b.StartPriority = 3
	c := newObject("c")
	c.StartPriority = 4

	objects := []*Object{a, b, c}
	deduplicatePriorities(objects)

	assert.Equal(t, 3, a.StartPriority)
	assert.Equal(t, 4, b.StartPriority)
	assert.Equal(t, 5, c.StartPriority)
}

func TestDeduplicatePrioritiesExemptsZero(t *testing.T) {
	a := newObject("a")
	b := newObject("b")
	// both left at zero (disabled for this phase)

	objects := []*Object{a, b}
	deduplicatePriorities(objects)

	assert.Equal(t, 0, a.StartPriority)
	assert.Equal(t, 0, b.StartPriority)
}

func TestDeduplicatePrioritiesStartStopIndependent(t *testing.T) {
	a := newObject("a")
	a.StartPriority = 1
	a.StopPriority = 5
	b := newObject("b")
	b.StartPriority = 1
	b.StopPriority = 9

	deduplicatePriorities([]*Object{a, b})

	assert.Equal(t, 1, a.StartPriority)
	assert.Equal(t, 2, b.StartPriority)
	assert.Equal(t, 5, a.StopPriority)
	assert.Equal(t, 9, b.StopPriority)
}
