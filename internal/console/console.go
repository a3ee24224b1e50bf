// Package console renders epochctl/epochd output: colorized status lines
// and aligned tables, adapted from the teacher's pkg/utils color/table
// helpers.
package console

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/go-errors/errors"
	"github.com/mattn/go-runewidth"
)

var ansiEscape = regexp.MustCompile(`\x1B\[([0-9]{1,2}(;[0-9]{1,2})?)?[mK]`)

// Decolorise strips ANSI escapes, used to measure a string's true display
// width before padding it.
func Decolorise(str string) string {
	return ansiEscape.ReplaceAllString(str, "")
}

// WithPadding right-pads str to padding display columns, ignoring any
// color escapes already present.
func WithPadding(str string, padding int) string {
	uncolored := Decolorise(str)
	if padding < runewidth.StringWidth(uncolored) {
		return str
	}
	return str + strings.Repeat(" ", padding-runewidth.StringWidth(uncolored))
}

// ColoredString wraps str in the given color attribute.
func ColoredString(str string, attr color.Attribute) string {
	if attr == color.FgWhite {
		return str
	}
	return color.New(attr).SprintFunc()(str)
}

// GetColorAttribute resolves a BootBannerColor/status-report color name to
// a fatih/color attribute, grounded on the teacher's GetColorAttribute
// (pkg/utils/utils.go) and generalized to the color names epoch.conf's
// BootBannerColor accepts.
func GetColorAttribute(name string) color.Attribute {
	colors := map[string]color.Attribute{
		"default": color.FgWhite,
		"black":   color.FgBlack,
		"red":     color.FgRed,
		"green":   color.FgGreen,
		"yellow":  color.FgYellow,
		"blue":    color.FgBlue,
		"magenta": color.FgMagenta,
		"cyan":    color.FgCyan,
		"white":   color.FgWhite,
		"bold":    color.Bold,
	}
	if attr, ok := colors[strings.ToLower(name)]; ok {
		return attr
	}
	return color.FgWhite
}

// RenderTable lays rows out as an aligned table, one line per row, columns
// separated by a single space and padded to the widest cell (ignoring
// color codes), grounded on the teacher's RenderTable/getPadWidths.
func RenderTable(rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	width := len(rows[0])
	for _, r := range rows {
		if len(r) != width {
			return "", errors.New("console: every row must have the same number of columns")
		}
	}

	var widths []int
	if width > 1 {
		widths = make([]int, width-1)
		for i := range widths {
			for _, r := range rows {
				if w := runewidth.StringWidth(Decolorise(r[i])); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		var b strings.Builder
		for j, w := range widths {
			b.WriteString(WithPadding(r[j], w))
			b.WriteByte(' ')
		}
		b.WriteString(r[width-1])
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n"), nil
}

// StatusLine renders a single "<label padded> <verdict>" report line for
// integrity/reload/edit results, colored by the result's severity, used by
// cmd/epochctl edit output.
func StatusLine(label string, verdict fmt.Stringer, align int) string {
	var attr color.Attribute
	switch verdict.String() {
	case "SUCCESS":
		attr = color.FgGreen
	case "WARNING":
		attr = color.FgYellow
	default:
		attr = color.FgRed
	}
	return WithPadding(label, align) + ColoredString(verdict.String(), attr)
}
