package objconf

import "strings"

// splitAttributeValue splits a live line into its leading attribute
// keyword and the separator-delimited remainder, mirroring GetLineDelim
// (config.c:1204-1252). The separator is either a single '=' or a run of
// spaces/tabs; ok is false if no value follows (MISSING_VALUE).
//
// sep is returned verbatim (not just its length) because EditConfigValue
// must reproduce the exact whitespace run when rewriting a line.
func splitAttributeValue(text string) (attribute, sep, value string, ok bool) {
	i := 0
	for i < len(text) && text[i] != ' ' && text[i] != '\t' && text[i] != '=' {
		i++
	}
	if i >= len(text) {
		return text, "", "", false
	}
	attribute = text[:i]

	if text[i] == '=' {
		sep = "="
		i++
	} else {
		start := i
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		sep = text[start:i]
	}

	if i >= len(text) {
		return attribute, sep, "", false
	}

	return attribute, sep, text[i:], true
}

// whitespaceArg advances past the current whitespace-delimited token and
// returns the next one, mirroring WhitespaceArg (config.c:78-96). ok is
// false once there is nothing left to advance to.
func whitespaceArg(s string) (next string, ok bool) {
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	if i >= len(s) {
		return "", false
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) {
		return "", false
	}
	return s[i:], true
}

// fields splits a value into whitespace-delimited tokens, used by
// multi-token attributes (MountVirtual, ObjectOptions, ObjectRunlevels).
func fields(s string) []string {
	return strings.Fields(s)
}

// allNumeric reports whether s is a non-empty run of ASCII digits,
// mirroring the original's AllNumeric() helper.
func allNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
