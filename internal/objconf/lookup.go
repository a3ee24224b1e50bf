package objconf

// CheckRunlevel reports whether o belongs to rl, directly or through one
// level of RunlevelInherits (ObjRL_CheckRunlevel, config.c:1700-1730). The
// relation is deliberately not closed transitively (spec.md §9): an object
// in "multi" is only visible from "default" if "default" itself directly
// inherits "multi", not through a longer chain.
func (t *Table) CheckRunlevel(rl string, o *Object) bool {
	if o.HasRunlevel(rl) {
		return true
	}
	for _, have := range o.RunlevelsOrder {
		if t.InheritsRunlevel(rl, have) {
			return true
		}
	}
	return false
}

// AddRunlevel adds rl to o's runlevel set, de-duplicating silently
// (ObjRL_AddRunlevel, config.c:1644-1665).
func (t *Table) AddRunlevel(o *Object, rl string) {
	o.AddRunlevel(rl)
}

// RemoveRunlevel removes rl from o's runlevel set if present
// (ObjRL_DelRunlevel, config.c:1667-1690). Removing a runlevel the object
// never had is a silent no-op.
func (t *Table) RemoveRunlevel(o *Object, rl string) {
	o.RemoveRunlevel(rl)
}

// GetHighestPriority returns the highest start or stop priority currently
// assigned to any object, or 0 if none is set, mirroring
// GetHighestPriority (config.c:1782-1793). cmd/epochd's boot and shutdown
// sequencers use it as the upper bound of their priority walk.
func (t *Table) GetHighestPriority(start bool) int {
	highest := 0
	for _, o := range t.objects {
		v := o.StopPriority
		if start {
			v = o.StartPriority
		}
		if v > highest {
			highest = v
		}
	}
	return highest
}

// GetObjectByPriority returns the object scheduled at priority p for the
// given phase within rl, or nil if no object occupies that slot
// (GetObjectByPriority, config.c:1760-1780). A halt_only object is only
// ever a candidate in the stop phase — it has no business starting up —
// matching the original's `(WantStartPriority || !Worker->Opts.HaltCmdOnly)`
// gate (config.c:1955). cmd/epochd's boot and shutdown sequencers drive
// their phase loop by walking priorities upward from 1 and calling this at
// each step.
func (t *Table) GetObjectByPriority(rl string, p int, start bool) *Object {
	if p == 0 {
		return nil
	}
	for _, o := range t.objects {
		if start && o.Options.HaltOnly {
			continue
		}
		if !t.CheckRunlevel(rl, o) {
			continue
		}
		v := o.StopPriority
		if start {
			v = o.StartPriority
		}
		if v == p {
			return o
		}
	}
	return nil
}

// ShutdownConfig releases a table's in-memory state. Go's garbage collector
// makes the original's explicit ShutdownConfig (config.c:1968-1985) a
// no-op in spirit; it is kept as an API boundary so callers don't need to
// know that, and so a future caller with real external resources (open
// file handles, etc.) has a place to release them.
func (t *Table) ShutdownConfig() {
	t.objects = nil
	t.byID = nil
	t.inheritance = nil
}
