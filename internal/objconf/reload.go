package objconf

import "context"

// ReloadResult reports the outcome of a Reload call plus every diagnostic
// collected along the way, for the caller to log.
type ReloadResult struct {
	Result   Result
	Problems []Problem
}

// ReloadConfig re-reads raw (the new contents of epoch.conf) into *t,
// following the original ReloadConfig's backup/reparse/rollback-or-commit sequence
// (config.c:1986-2107, spec.md §4.7). On success, t is replaced in place
// with the freshly parsed table, with Started/PID carried over by ID match
// and the three runtime-mutable globals restored. On failure, t is left
// byte-for-bit identical to how it was before Reload was called.
//
// The interactive runlevel prompt is never consulted here — CheckIntegrity
// is invoked in Reload mode, which fails outright instead of prompting.
func ReloadConfig(ctx context.Context, t *Table, raw string) ReloadResult {
	backup := t.clone()
	preserved := t.Config.snapshotPreserved()

	fresh, problems := ParseConfig(raw)
	parseOutcome := ParseResult(problems)

	integrityOutcome := Success
	var integrityProblems []Problem
	if parseOutcome != Failure {
		// CurRunlevel outlives ShutdownConfig in the original (config.c:548),
		// so a reload's DefaultRunlevel is a no-op whenever a runlevel is
		// already running. Restore it before CheckIntegrity runs, not after,
		// so a new file that simply omits DefaultRunlevel doesn't fail
		// integrity for a runlevel the live system already has.
		if preserved.currentRunlevel != "" {
			fresh.Config.CurrentRunlevel = preserved.currentRunlevel
		}
		integrityOutcome, integrityProblems = CheckIntegrity(ctx, fresh, Reload, nil, nil)
		problems = append(problems, integrityProblems...)
	}

	overall := worseResult(parseOutcome, integrityOutcome)

	if overall == Failure {
		*t = *backup
		return ReloadResult{Result: Failure, Problems: problems}
	}

	carryRuntimeState(fresh, backup)
	fresh.Config.restorePreserved(preserved)

	*t = *fresh
	return ReloadResult{Result: overall, Problems: problems}
}

// carryRuntimeState copies Started/PID from the old table to the new one
// by ObjectID match (config.c:2082-2093): an object that survives a reload
// under the same ID keeps its live run state instead of appearing freshly
// stopped.
func carryRuntimeState(fresh, backup *Table) {
	for _, old := range backup.objects {
		if cur := fresh.byID[old.ID]; cur != nil {
			cur.Started = old.Started
			cur.PID = old.PID
		}
	}
}
