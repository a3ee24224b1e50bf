package objconf

// deduplicatePriorities renumbers start/stop priorities so no two objects
// share a non-zero value, per spec.md §4.4. This is a literal translation
// of the nested loop at config.c:1092-1131 (the comment there calls the
// rest of the object-handling subsystem "too stupid to know how to handle"
// ties) — traversal order is object insertion order, 0 is always exempt,
// and the transformation is deliberately O(n²) to preserve the original's
// exact, deterministic renumbering (same relative rank, same tie-break by
// insertion order).
func deduplicatePriorities(objects []*Object) {
	for _, outer := range objects {
		for _, inner := range objects {
			if outer == inner {
				continue
			}
			if outer.StartPriority != 0 && inner.StartPriority == outer.StartPriority {
				bumpPriority(objects, inner, outer, true)
			}
			if outer.StopPriority != 0 && inner.StopPriority == outer.StopPriority {
				bumpPriority(objects, inner, outer, false)
			}
		}
	}
}

// bumpPriority increments target's priority by one, then increments every
// other object (except pinned, the object that triggered the bump) whose
// priority is now >= target's new value, so ties never reappear further
// down the table.
func bumpPriority(objects []*Object, target, pinned *Object, start bool) {
	if start {
		target.StartPriority++
		for _, o := range objects {
			if o == target || o == pinned {
				continue
			}
			if o.StartPriority >= target.StartPriority {
				o.StartPriority++
			}
		}
		return
	}

	target.StopPriority++
	for _, o := range objects {
		if o == target || o == pinned {
			continue
		}
		if o.StopPriority >= target.StopPriority {
			o.StopPriority++
		}
	}
}
