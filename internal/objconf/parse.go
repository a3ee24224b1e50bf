package objconf

import "fmt"

// ParseConfig is the InitConfig equivalent (config.c:138-1157): it turns
// raw epoch.conf text into a *Table plus every Problem collected along the
// way. It does not run the integrity checker — that is a separate pass
// (see CheckIntegrity) because only it needs the interactive prompt
// collaborator, and only on the boot path.
func ParseConfig(raw string) (*Table, []Problem) {
	t := NewTable()
	p := newParseState(t)
	st := &lexState{}

	for _, res := range scanLines(raw, st) {
		if res.warning != "" {
			p.problem(Notice, "", res.warning, 0)
			continue
		}
		dispatch(p, *res.live)
	}

	if st.inBlockComment {
		p.problem(Notice, "", "Unterminated multi-line comment at end of file.", 0)
	}

	applyNoWaitEmulation(t.objects)
	deduplicatePriorities(t.objects)

	return t, p.problems
}

// ParseResult folds a Problem slice into the overall Result spec.md §7
// requires of a parse pass: any Fatal problem makes the whole parse a
// Failure, any lesser problem makes it a Warning, and an empty list is a
// Success.
func ParseResult(problems []Problem) Result {
	result := Success
	for _, pr := range problems {
		result = worseResult(result, pr.Kind.Severity())
	}
	return result
}

// FormatProblems renders a Problem slice the way cmd/epochd and epochctl
// log it, one line per problem via Problem.Error().
func FormatProblems(problems []Problem) []string {
	out := make([]string, len(problems))
	for i, pr := range problems {
		out[i] = fmt.Sprintf("%s", pr.Error())
	}
	return out
}
