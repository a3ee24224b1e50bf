package objconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectByPriorityExcludesHaltOnlyFromStartPhase(t *testing.T) {
	tbl := NewTable()
	halt := tbl.AddObject("halter")
	halt.Options.HaltOnly = true
	halt.AddRunlevel("default")
	halt.StartPriority = 1
	halt.StopPriority = 1

	assert.Nil(t, tbl.GetObjectByPriority("default", 1, true))
	assert.Equal(t, halt, tbl.GetObjectByPriority("default", 1, false))
}

func TestGetObjectByPriorityIncludesRegularObjectInBothPhases(t *testing.T) {
	tbl := NewTable()
	o := tbl.AddObject("svc")
	o.AddRunlevel("default")
	o.StartPriority = 1
	o.StopPriority = 1

	assert.Equal(t, o, tbl.GetObjectByPriority("default", 1, true))
	assert.Equal(t, o, tbl.GetObjectByPriority("default", 1, false))
}
