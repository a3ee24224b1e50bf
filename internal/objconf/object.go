package objconf

import "syscall"

// StopMode selects how the supervisor terminates an object.
type StopMode int

const (
	// StopNone means the object is never explicitly stopped.
	StopNone StopMode = iota
	// StopCommand runs a dedicated stop command.
	StopCommand
	// StopPID sends TermSignal to the object's tracked PID.
	StopPID
	// StopPIDFile sends TermSignal to the PID read from PIDFile.
	StopPIDFile
)

func (m StopMode) String() string {
	switch m {
	case StopNone:
		return "NONE"
	case StopCommand:
		return "COMMAND"
	case StopPID:
		return "PID"
	case StopPIDFile:
		return "PIDFILE"
	default:
		return "UNKNOWN"
	}
}

// TriState models ObjectEnabled during parsing, before the integrity
// checker has had a chance to prove Unset cannot survive into the
// supervisor-facing view (spec.md §9 "Tri-state enabled").
type TriState int

const (
	Unset TriState = iota
	True
	False
)

// Bool lowers a resolved (non-Unset) TriState to a plain bool. Callers must
// only invoke this after the integrity checker has rejected Unset objects.
func (t TriState) Bool() bool {
	return t == True
}

// Options holds the per-object boolean flags parsed from ObjectOptions.
type Options struct {
	// HaltOnly marks an object that only ever runs at shutdown.
	HaltOnly bool
	// Persistent marks an object the supervisor must never attempt to
	// stop (CanStop=false in the original).
	Persistent bool
	RawDescription bool
	IsService      bool
	AutoRestart    bool
	ForceShell     bool
	// EmulNoWait records that the deprecated NOWAIT option was used; its
	// effect (appending '&' to the start command) is applied once, after
	// the full file has been parsed (config.c:1134-1156).
	EmulNoWait bool
}

// Object is a single managed unit parsed out of epoch.conf.
type Object struct {
	ID            string
	Description   string
	StartCommand  string
	StopCommand   string
	ReloadCommand string
	PIDFile       string

	StartPriority int
	StopPriority  int

	StopMode   StopMode
	TermSignal syscall.Signal
	Enabled    TriState

	Options Options

	// Runlevels is the membership set; RunlevelsOrder preserves parse
	// order. The parser warns (but does not fail) on a second
	// ObjectRunlevels line for the same object.
	Runlevels      map[string]struct{}
	RunlevelsOrder []string

	// Runtime fields. Never set by parsing; carried across ReloadConfig
	// by ID match (spec.md §4.7).
	Started bool
	PID     int
}

// newObject returns an Object with the same defaults AddObjectToTable gave
// a freshly minted entry in the original (config.c:1450-1500).
func newObject(id string) *Object {
	return &Object{
		ID:         id,
		StopMode:   StopNone,
		TermSignal: syscall.SIGTERM,
		Enabled:    Unset,
		Runlevels:  make(map[string]struct{}),
	}
}

// HasRunlevel reports direct (non-inherited) membership.
func (o *Object) HasRunlevel(rl string) bool {
	_, ok := o.Runlevels[rl]
	return ok
}

// AddRunlevel adds rl to the object's runlevel set, silently de-duplicating
// (spec.md §9 "Open question: ObjectRunlevels duplicate handling").
func (o *Object) AddRunlevel(rl string) {
	if o.Runlevels == nil {
		o.Runlevels = make(map[string]struct{})
	}
	if _, exists := o.Runlevels[rl]; exists {
		return
	}
	o.Runlevels[rl] = struct{}{}
	o.RunlevelsOrder = append(o.RunlevelsOrder, rl)
}

// RemoveRunlevel deletes rl from the object's runlevel set. Reports whether
// it was present.
func (o *Object) RemoveRunlevel(rl string) bool {
	if _, ok := o.Runlevels[rl]; !ok {
		return false
	}
	delete(o.Runlevels, rl)
	for i, v := range o.RunlevelsOrder {
		if v == rl {
			o.RunlevelsOrder = append(o.RunlevelsOrder[:i], o.RunlevelsOrder[i+1:]...)
			break
		}
	}
	return true
}

// clone returns a deep copy of o, used by ReloadConfig to snapshot the
// table before tearing it down. Go maps and slices alias by reference, so
// a plain struct copy would NOT be a deep copy (see DESIGN.md).
func (o *Object) clone() *Object {
	cp := *o
	cp.Runlevels = make(map[string]struct{}, len(o.Runlevels))
	for k := range o.Runlevels {
		cp.Runlevels[k] = struct{}{}
	}
	cp.RunlevelsOrder = append([]string(nil), o.RunlevelsOrder...)
	return &cp
}
