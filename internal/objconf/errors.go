package objconf

import "fmt"

// Result is the three-valued outcome spec.md §7 requires of any parse,
// integrity check, edit, or reload.
type Result int

const (
	Success Result = iota
	Warning
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case Warning:
		return "WARNING"
	case Failure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// ProblemKind names the per-line and cross-object error categories from
// spec.md §7. These are categories, not Go error types: ConfigProblem in
// the original dispatches on an int enum purely to pick a message template.
type ProblemKind int

const (
	MissingValue ProblemKind = iota
	BadValue
	Truncated
	OrderAfter
	OrderBefore
	LargeNumber
	UnknownAttribute
	// Notice carries a free-form warning message in Value (the lexer's
	// stray block-comment-terminator and unterminated-block-at-EOF
	// messages, config.c:204, 1159-1163). Severity is Warning, same as the
	// SpitWarning() calls that produce them upstream.
	Notice
	Fatal
)

// Problem is a single diagnostic raised while parsing or validating
// epoch.conf. It carries enough context for the console/log collaborators
// to render config.c's ConfigProblem()-style messages.
type Problem struct {
	Kind      ProblemKind
	Attribute string
	Value     string
	Line      int
}

func (p Problem) Error() string {
	switch p.Kind {
	case MissingValue:
		return fmt.Sprintf("Missing or bad value for attribute %s in epoch.conf line %d.\nIgnoring.", p.Attribute, p.Line)
	case BadValue:
		return fmt.Sprintf("Bad value %s for attribute %s in epoch.conf line %d.", p.Value, p.Attribute, p.Line)
	case Truncated:
		return fmt.Sprintf("Attribute %s in epoch.conf line %d has\nabnormally long value and may have been truncated.", p.Attribute, p.Line)
	case OrderAfter:
		return fmt.Sprintf("Attribute %s cannot be set after an ObjectID attribute; epoch.conf line %d. Ignoring.", p.Attribute, p.Line)
	case OrderBefore:
		return fmt.Sprintf("Attribute %s comes before any ObjectID attribute.\nepoch.conf line %d. Ignoring.", p.Attribute, p.Line)
	case LargeNumber:
		return fmt.Sprintf("Attribute %s in epoch.conf line %d has\nabnormally high numeric value and may cause malfunctions.", p.Attribute, p.Line)
	case UnknownAttribute:
		return fmt.Sprintf("Unidentified attribute in epoch.conf on line %d.", p.Line)
	case Notice:
		return p.Value
	case Fatal:
		return fmt.Sprintf("%s (epoch.conf line %d)", p.Value, p.Line)
	default:
		return fmt.Sprintf("unknown configuration problem at line %d", p.Line)
	}
}

// Severity maps a problem kind to the Result it should contribute to an
// overall parse/integrity outcome.
func (k ProblemKind) Severity() Result {
	if k == Fatal {
		return Failure
	}
	return Warning
}
