package objconf

import (
	"fmt"
	"strings"
)

// line is one logical, already-trimmed line of live configuration text,
// together with its 1-based position in the source file.
type line struct {
	text   string
	number int
}

// lexState tracks the block-comment toggle across lines, exactly as the
// original InitConfig loop did inline (config.c:183-234): >!> opens a
// block, <!< closes it, both recognized only at the start of a line (after
// leading whitespace). Neither is transitive across files or calls.
type lexState struct {
	inBlockComment bool
}

// lexResult is what scanLines reports back about one raw input line: either
// a live line to hand to the attribute dispatcher, or nothing (blank line,
// full-line comment, comment-block content), possibly paired with a
// non-fatal warning.
type lexResult struct {
	live    *line
	warning string
}

// scanLines walks the raw file text and yields one lexResult for each live
// line and each warning (blank, comment and in-block lines yield nothing),
// maintaining block-comment state in st. The caller inspects st afterwards
// to detect "unterminated block comment at EOF" (config.c:1159-1163).
func scanLines(raw string, st *lexState) []lexResult {
	var out []lexResult
	rawLines := strings.Split(raw, "\n")

	// strings.Split on a file ending in \n yields a trailing empty
	// element; the original NextLine() treats a final newline as EOF and
	// never synthesizes a line from it.
	if len(rawLines) > 0 && rawLines[len(rawLines)-1] == "" {
		rawLines = rawLines[:len(rawLines)-1]
	}

	for i, raw := range rawLines {
		lineNum := i + 1
		trimmed := strings.TrimLeft(raw, " \t")

		switch {
		case strings.HasPrefix(trimmed, "<!<"):
			if !st.inBlockComment {
				out = append(out, lexResult{warning: fmt.Sprintf("Stray multi-line comment terminator on line %d", lineNum)})
				continue
			}
			st.inBlockComment = false
			rest := strings.TrimLeft(trimmed[len("<!<"):], " \t")
			if rest == "" {
				continue
			}
			out = append(out, dispatchLine(rest, lineNum)...)

		case st.inBlockComment:
			continue

		case strings.HasPrefix(trimmed, ">!>"):
			st.inBlockComment = true
			continue

		case trimmed == "":
			continue

		case strings.HasPrefix(trimmed, "#"):
			continue

		default:
			out = append(out, dispatchLine(trimmed, lineNum)...)
		}
	}

	return out
}

func dispatchLine(text string, lineNum int) []lexResult {
	return []lexResult{{live: &line{text: text, number: lineNum}}}
}
