package objconf

// Table is the primary in-memory result of parsing epoch.conf: an ordered
// collection of objects plus the global configuration they share. Order is
// insertion order, matching config.c's ObjectTable linked list and the
// traversal the de-duplication and integrity passes depend on.
type Table struct {
	Config  Configuration
	objects []*Object
	byID    map[string]*Object

	inheritance *runlevelInheritance
}

// NewTable returns an empty table ready to receive AddObject calls.
func NewTable() *Table {
	return &Table{
		byID:        make(map[string]*Object),
		inheritance: &runlevelInheritance{},
	}
}

// AddObject unconditionally appends a new object with the given ID, even
// if the ID was already present, matching AddObjectToTable's unconditional
// node append (config.c:1450-1500). A repeated ObjectID therefore produces
// two distinct objects sharing one ID; the integrity checker is
// responsible for flagging that as a fatal duplicate (spec.md §3,
// ScanConfigIntegrity, config.c:1627). LookupObjectByID keeps resolving to
// whichever object first claimed the ID, same as a linear list search
// stopping at the first match.
func (t *Table) AddObject(id string) *Object {
	obj := newObject(id)
	t.objects = append(t.objects, obj)
	if _, exists := t.byID[id]; !exists {
		t.byID[id] = obj
	}
	return obj
}

// Objects returns the table's objects in insertion order. Callers must not
// mutate the returned slice's backing array.
func (t *Table) Objects() []*Object {
	return t.objects
}

// LookupObjectByID implements the supervisor-facing lookup spec.md §6
// names.
func (t *Table) LookupObjectByID(id string) *Object {
	return t.byID[id]
}

// duplicateIDs returns every ID that names more than one object, for the
// integrity checker's "Two objects in configuration with ObjectID" check
// (config.c:1627-1636). A repeated ObjectID line during parsing produces
// exactly this situation, since AddObject always appends a fresh object.
func (t *Table) duplicateIDs() []string {
	seen := make(map[string]int, len(t.objects))
	var dups []string
	for _, o := range t.objects {
		seen[o.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	return dups
}

// AddRunlevelInheritance registers that inheriter inherits inherited,
// backing the RunlevelInherits directive.
func (t *Table) AddRunlevelInheritance(inheriter, inherited string) {
	t.inheritance.add(inheriter, inherited)
}

// InheritsRunlevel reports whether inheriter directly inherits inherited.
func (t *Table) InheritsRunlevel(inheriter, inherited string) bool {
	return t.inheritance.check(inheriter, inherited)
}

// clone returns a deep copy of the table, its object set, runlevel sets,
// and the runlevel-inheritance relation, used by ReloadConfig to snapshot
// state before tearing it down (spec.md §4.7 step 1).
func (t *Table) clone() *Table {
	cp := &Table{
		Config:      t.Config,
		byID:        make(map[string]*Object, len(t.byID)),
		inheritance: t.inheritance.clone(),
	}
	cp.objects = make([]*Object, len(t.objects))
	for i, o := range t.objects {
		c := o.clone()
		cp.objects[i] = c
		cp.byID[c.ID] = c
	}
	return cp
}
