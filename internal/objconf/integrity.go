package objconf

import (
	"context"
	"fmt"
)

// RunlevelPrompt asks the operator for a fallback runlevel when the
// configured DefaultRunlevel is missing or invalid at boot (spec.md §4.5).
// It returns (runlevel, true) if the operator supplied one, or ("", false)
// if they asked for an emergency shell (empty input). The core never reads
// os.Stdin directly — cmd/epochd supplies the real stdin-backed
// implementation, keeping the integrity checker unit-testable (see
// DESIGN.md).
type RunlevelPrompt func(ctx context.Context) (runlevel string, ok bool)

// Boot/Reload select which of the two ScanConfigIntegrity call sites
// spec.md §4.5 describes: the interactive prompt only ever fires on boot.
type IntegrityMode int

const (
	Boot IntegrityMode = iota
	Reload
)

// CheckIntegrity runs the cross-object validation pass spec.md §4.5 and §3
// describe, after parsing and priority de-duplication have completed. It
// mutates t in place (auto-corrections are part of WARNING, not a
// rejection) and returns the overall Result plus every Problem collected
// along the way (for logging).
//
// prompt may be nil; it is only consulted when mode == Boot and the
// configured runlevel is missing or invalid.
func CheckIntegrity(ctx context.Context, t *Table, mode IntegrityMode, prompt RunlevelPrompt, emergencyShell func()) (Result, []Problem) {
	var problems []Problem
	result := Success

	if len(t.objects) == 0 {
		return Failure, []Problem{{Kind: Fatal, Value: "No objects found in configuration or invalid configuration."}}
	}

	if t.Config.CurrentRunlevel == "" || !t.validRunlevel(t.Config.CurrentRunlevel) {
		if mode == Reload {
			msg := fmt.Sprintf("A problem has occured in configuration.\nThe runlevel \"%s\" does not exist.", t.Config.CurrentRunlevel)
			if t.Config.CurrentRunlevel == "" {
				msg = "No default runlevel specified!"
			}
			return Failure, []Problem{{Kind: Fatal, Value: msg}}
		}

		if prompt == nil {
			return Failure, []Problem{{Kind: Fatal, Value: "No default runlevel specified and no prompt available."}}
		}

		rl, ok := prompt(ctx)
		if !ok {
			if emergencyShell != nil {
				emergencyShell()
			}
			return Failure, []Problem{{Kind: Fatal, Value: "Operator requested emergency shell."}}
		}
		if !t.validRunlevel(rl) {
			return Failure, []Problem{{Kind: Fatal, Value: fmt.Sprintf("The runlevel %q was not found.", rl)}}
		}
		t.Config.CurrentRunlevel = rl
	}

	for _, o := range t.objects {
		if o.Description == "" {
			problems = append(problems, Problem{Kind: BadValue, Attribute: "ObjectDescription", Value: o.ID})
			o.Description = "[missing description]"
			result = worseResult(result, Warning)
		}

		if o.StartCommand == "" && o.StopCommand == "" && o.StopMode == StopCommand {
			problems = append(problems, Problem{Kind: Fatal, Value: fmt.Sprintf("Object %s has neither ObjectStopCommand nor ObjectStartCommand attributes.", o.ID)})
			result = Failure
		}

		if !o.Options.HaltOnly && o.StartCommand == "" {
			problems = append(problems, Problem{Kind: BadValue, Attribute: "ObjectStartCommand", Value: o.ID})
			o.Enabled = False
			result = worseResult(result, Warning)
		}

		if len(o.Runlevels) == 0 && !o.Options.HaltOnly {
			problems = append(problems, Problem{Kind: Fatal, Value: fmt.Sprintf("Object %q has no attribute ObjectRunlevels.", o.ID)})
			result = Failure
		}

		if o.Enabled == Unset {
			problems = append(problems, Problem{Kind: Fatal, Value: fmt.Sprintf("Object %q has no attribute ObjectEnabled.", o.ID)})
			result = Failure
		}

		if o.StopMode == StopPID && o.Options.HaltOnly {
			problems = append(problems, Problem{Kind: BadValue, Attribute: "ObjectOptions", Value: o.ID})
			o.Enabled = False
			result = worseResult(result, Warning)
		}
	}

	for _, id := range t.duplicateIDs() {
		problems = append(problems, Problem{Kind: Fatal, Value: fmt.Sprintf("Two objects in configuration with ObjectID %q.", id)})
		result = Failure
	}

	return result, problems
}

func worseResult(a, b Result) Result {
	if b > a {
		return b
	}
	return a
}

// validRunlevel reports whether any non-halt-only object matches rl,
// counting inheritance (ObjRL_ValidRunlevel, config.c:1795-1810).
func (t *Table) validRunlevel(rl string) bool {
	for _, o := range t.objects {
		if o.Options.HaltOnly {
			continue
		}
		if t.CheckRunlevel(rl, o) {
			return true
		}
	}
	return false
}
