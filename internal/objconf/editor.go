package objconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EditAttribute rewrites a single object's attribute value in place on
// disk, grounded on EditConfigValue (config.c:1254-1447). It is a byte-slice
// search-and-splice rather than the original's pointer arithmetic, but
// follows the same algorithm step for step, including its quirks:
//
//   - the attribute is located by a plain substring search scoped to the
//     text between the matched ObjectID line and the next literal
//     "ObjectID" occurrence, not by re-running the attribute dispatcher —
//     so, same as upstream, a value that happens to contain the attribute
//     keyword as a substring could confuse the search;
//   - an occurrence immediately preceded by '#' is skipped, a crude defense
//     against full-line comments;
//   - the separator run (spaces/tabs, or a single '=') is preserved
//     verbatim rather than normalized, so repeated edits never drift the
//     file's formatting.
//
// Unlike the original, which writes straight over the live file, this
// writes to a temp file in the same directory and renames over the
// original (fsync before rename), the same atomic-replace pattern the
// teacher uses for its own on-disk config writes.
func EditAttribute(path, objectID, attribute, newValue string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Failure, fmt.Errorf("edit attribute: read %s: %w", path, err)
	}
	text := string(raw)
	if text == "" {
		return Failure, fmt.Errorf("edit attribute: %s is empty", path)
	}

	offset, ok := findObjectIDValueEnd(text, objectID)
	if !ok {
		return Failure, fmt.Errorf("edit attribute: object %q not found in %s", objectID, path)
	}

	scope := text[offset:]
	if next := strings.Index(scope, "ObjectID"); next >= 0 {
		scope = scope[:next]
	}

	attrRelIdx, ok := findUncommentedAttribute(scope, attribute)
	if !ok {
		return Failure, fmt.Errorf("edit attribute: attribute %q not found for object %q", attribute, objectID)
	}
	attrStart := offset + attrRelIdx

	lineEnd := strings.IndexByte(text[attrStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += attrStart
	}

	_, sep, _, hadValue := splitAttributeValue(text[attrStart:lineEnd])
	if !hadValue {
		return Failure, fmt.Errorf("edit attribute: malformed line for attribute %q, object %q", attribute, objectID)
	}

	replacement := attribute + sep + newValue
	newText := text[:attrStart] + replacement + text[lineEnd:]

	if err := atomicWriteFile(path, []byte(newText)); err != nil {
		return Failure, fmt.Errorf("edit attribute: %w", err)
	}

	return Success, nil
}

// findObjectIDValueEnd locates the first line whose attribute keyword is
// ObjectID and whose value equals id, returning the byte offset just past
// the end of that value (the original's Worker pointer after the initial
// ObjectID scan, config.c:1302-1350).
func findObjectIDValueEnd(text, id string) (int, bool) {
	pos := 0
	for pos < len(text) {
		nl := strings.IndexByte(text[pos:], '\n')
		var lineEnd int
		if nl < 0 {
			lineEnd = len(text)
		} else {
			lineEnd = pos + nl
		}
		lineText := text[pos:lineEnd]
		trimmed := strings.TrimLeft(lineText, " \t")
		leadWS := len(lineText) - len(trimmed)

		attr, _, value, ok := splitAttributeValue(trimmed)
		if ok && attr == "ObjectID" && value == id {
			valueStart := pos + leadWS + strings.Index(lineText[leadWS:], value)
			return valueStart + len(value), true
		}

		if nl < 0 {
			break
		}
		pos = lineEnd + 1
	}
	return 0, false
}

// findUncommentedAttribute returns the byte offset of the first
// occurrence of attribute in scope that is not immediately preceded by
// '#', mirroring config.c:1364.
func findUncommentedAttribute(scope, attribute string) (int, bool) {
	start := 0
	for {
		idx := strings.Index(scope[start:], attribute)
		if idx < 0 {
			return 0, false
		}
		abs := start + idx
		if abs == 0 || scope[abs-1] != '#' {
			return abs, true
		}
		start = abs + 1
	}
}

// atomicWriteFile writes data to a temp file beside path, fsyncs it, and
// renames it over path so a crash mid-write never leaves epoch.conf
// truncated or half-written.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".epoch.conf.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmpName, info.Mode())
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file into place: %w", err)
	}
	return nil
}
