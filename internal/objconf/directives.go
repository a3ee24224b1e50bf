package objconf

import (
	"fmt"
	"strconv"
	"strings"
)

// parseState carries the mutable state InitConfig threaded through local
// variables (CurObj, the DefinePriority alias table, the "have we already
// seen an ObjectRunlevels line for this object" tracker) across the whole
// attribute ladder (config.c:183-1090).
type parseState struct {
	table    *Table
	aliases  *priorityAliases
	curObj   *Object
	lastRLObj *Object

	defaultRunlevelSet bool

	problems []Problem
}

func newParseState(t *Table) *parseState {
	return &parseState{table: t, aliases: newPriorityAliases()}
}

func (p *parseState) problem(kind ProblemKind, attribute, value string, lineNum int) {
	p.problems = append(p.problems, Problem{Kind: kind, Attribute: attribute, Value: value, Line: lineNum})
}

// directiveHandler processes one recognized attribute's value. sep is the
// raw separator text as splitAttributeValue returned it (unused by most
// handlers; kept for symmetry with the editor, which needs it).
type directiveHandler func(p *parseState, sep, value string, lineNum int)

// directiveTable dispatches on the FULL attribute keyword, not a prefix
// match: the original's strncmp ladder would treat "ObjectStartPriorityX"
// as a match for "ObjectStartPriority" (config.c:954), which this subsystem
// deliberately does not reproduce.
var directiveTable = map[string]directiveHandler{
	"DisableCAD":         handleBoolGlobal(func(c *Configuration) *bool { return &c.DisableCAD }, true),
	"BlankLogOnBoot":      handleBoolGlobal(func(c *Configuration) *bool { return &c.BlankLogOnBoot }, false),
	"ShellEnabled":        handleBoolGlobal(func(c *Configuration) *bool { return &c.ShellEnabled }, false),
	"EnableLogging":       handleBoolGlobal(func(c *Configuration) *bool { return &c.EnableLogging }, false),
	"AlignStatusReports":  handleBoolGlobal(func(c *Configuration) *bool { return &c.AlignStatusReports }, false),

	"RunlevelInherits": handleRunlevelInherits,
	"DefinePriority":   handleDefinePriority,
	"MountVirtual":     handleMountVirtual,
	"BootBannerText":   handleBootBannerText,
	"BootBannerColor":  handleBootBannerColor,
	"DefaultRunlevel":  handleDefaultRunlevel,
	"Hostname":         handleHostname,

	"ObjectID":            handleObjectID,
	"ObjectEnabled":       handleObjectEnabled,
	"ObjectOptions":       handleObjectOptions,
	"ObjectDescription":   handleObjectDescription,
	"ObjectStartCommand":  handleObjectStartCommand,
	"ObjectReloadCommand": handleObjectReloadCommand,
	"ObjectStopCommand":   handleObjectStopCommand,
	"ObjectStartPriority": handleObjectPriority(true),
	"ObjectStopPriority":  handleObjectPriority(false),
	"ObjectRunlevels":     handleObjectRunlevels,
}

// dispatch routes one live line to its handler, or records
// UnknownAttribute/MissingValue as config.c's else branch and GetLineDelim
// failure do.
func dispatch(p *parseState, l line) {
	attr, sep, value, ok := splitAttributeValue(l.text)
	handler, known := directiveTable[attr]
	if !known {
		p.problem(UnknownAttribute, "", "", l.number)
		return
	}
	if !ok {
		p.problem(MissingValue, attr, "", l.number)
		return
	}
	limit := MaxLineSize
	if attr == "ObjectID" || attr == "ObjectDescription" {
		limit = MaxDescriptSize
	}
	if len(value) >= limit {
		p.problem(Truncated, attr, "", l.number)
	}
	handler(p, sep, value, l.number)
}

func handleBoolGlobal(field func(c *Configuration) *bool, badValueDefault bool) directiveHandler {
	return func(p *parseState, sep, value string, lineNum int) {
		f := field(&p.table.Config)
		switch value {
		case "true":
			*f = true
		case "false":
			*f = false
		default:
			*f = badValueDefault
			p.problem(BadValue, "", value, lineNum)
		}
	}
}

func handleRunlevelInherits(p *parseState, sep, value string, lineNum int) {
	if p.curObj != nil {
		p.problem(OrderAfter, "RunlevelInherits", "", lineNum)
		return
	}
	inheriter, ok := firstToken(value)
	if !ok {
		p.problem(BadValue, "RunlevelInherits", value, lineNum)
		return
	}
	rest, ok := whitespaceArg(value)
	if !ok {
		p.problem(BadValue, "RunlevelInherits", value, lineNum)
		return
	}
	inherited, ok := firstToken(rest)
	if !ok {
		p.problem(BadValue, "RunlevelInherits", value, lineNum)
		return
	}
	p.table.AddRunlevelInheritance(inheriter, inherited)
}

func handleDefinePriority(p *parseState, sep, value string, lineNum int) {
	if p.curObj != nil {
		p.problem(OrderAfter, "DefinePriority", "", lineNum)
		return
	}
	alias, ok := firstToken(value)
	if !ok {
		p.problem(BadValue, "DefinePriority", value, lineNum)
		return
	}
	rest, ok := whitespaceArg(value)
	if !ok {
		p.problem(BadValue, "DefinePriority", value, lineNum)
		return
	}
	target, ok := firstToken(rest)
	if !ok || !allNumeric(target) {
		p.problem(BadValue, "DefinePriority", value, lineNum)
		return
	}
	n, err := strconv.Atoi(target)
	if err != nil {
		p.problem(BadValue, "DefinePriority", value, lineNum)
		return
	}
	p.aliases.add(alias, n)
}

func handleMountVirtual(p *parseState, sep, value string, lineNum int) {
	for _, tok := range fields(value) {
		base := tok
		mount := MountOnce
		if len(tok) > 0 && tok[len(tok)-1] == '+' {
			base = tok[:len(tok)-1]
			mount = MountRemount
		}

		var field *MountOption
		switch base {
		case "procfs":
			field = &p.table.Config.VirtualMounts.Procfs
		case "sysfs":
			field = &p.table.Config.VirtualMounts.Sysfs
		case "devfs":
			field = &p.table.Config.VirtualMounts.Devfs
		case "devpts":
			field = &p.table.Config.VirtualMounts.DevPts
		case "devshm":
			field = &p.table.Config.VirtualMounts.DevShm
		default:
			p.problem(BadValue, "MountVirtual", tok, lineNum)
			continue
		}
		*field = mount
	}
}

func handleBootBannerText(p *parseState, sep, value string, lineNum int) {
	if value == "NONE" {
		p.table.Config.BootBanner.Text = ""
		p.table.Config.BootBanner.Color = ""
		p.table.Config.BootBanner.Show = false
		return
	}
	p.table.Config.BootBanner.Text = value
	p.table.Config.BootBanner.Show = true
}

func handleBootBannerColor(p *parseState, sep, value string, lineNum int) {
	if value == "NONE" {
		p.table.Config.BootBanner.Color = ""
		return
	}
	p.table.Config.BootBanner.Color = value
}

func handleDefaultRunlevel(p *parseState, sep, value string, lineNum int) {
	if p.defaultRunlevelSet {
		return
	}
	if p.curObj != nil {
		p.problem(OrderAfter, "DefaultRunlevel", "", lineNum)
		return
	}
	p.table.Config.CurrentRunlevel = value
	p.defaultRunlevelSet = true
}

func handleHostname(p *parseState, sep, value string, lineNum int) {
	if p.curObj != nil {
		p.problem(OrderAfter, "Hostname", "", lineNum)
		return
	}
	// The parser records the literal directive value. The FILE <path> form
	// is stored as written: the named file is not read, here or by
	// cmd/epochd.
	p.table.Config.Hostname = value
}

func handleObjectID(p *parseState, sep, value string, lineNum int) {
	p.curObj = p.table.AddObject(value)
}

func handleObjectEnabled(p *parseState, sep, value string, lineNum int) {
	if p.curObj == nil {
		p.problem(OrderBefore, "ObjectEnabled", "", lineNum)
		return
	}
	switch value {
	case "true":
		p.curObj.Enabled = True
	case "false":
		p.curObj.Enabled = False
	default:
		p.problem(BadValue, "ObjectEnabled", value, lineNum)
	}
}

func handleObjectOptions(p *parseState, sep, value string, lineNum int) {
	if p.curObj == nil {
		p.problem(OrderBefore, "ObjectOptions", "", lineNum)
		return
	}
	for _, tok := range fields(value) {
		switch {
		case tok == "NOWAIT":
			p.curObj.Options.EmulNoWait = true
			p.problem(Notice, "ObjectOptions", fmt.Sprintf(
				"Option NOWAIT is deprecated and has been partially removed. Emulating NOWAIT for object %s.", p.curObj.ID), lineNum)
		case tok == "HALTONLY":
			// Mirrors config.c:731-736 literally: HALTONLY pins Started
			// true from the start (these objects are considered already
			// "running" until shutdown triggers their one and only
			// action) and forbids the normal stop path.
			p.curObj.Started = true
			p.curObj.Options.Persistent = true
			p.curObj.Options.HaltOnly = true
		case tok == "PERSISTENT":
			p.curObj.Options.Persistent = true
		case tok == "RAWDESCRIPTION":
			p.curObj.Options.RawDescription = true
		case tok == "SERVICE":
			p.curObj.Options.IsService = true
		case tok == "AUTORESTART":
			p.curObj.Options.AutoRestart = true
		case tok == "FORCESHELL":
			if !p.table.Config.ShellEnabled {
				p.problem(BadValue, "ObjectOptions", tok, lineNum)
			} else {
				p.curObj.Options.ForceShell = true
			}
		case len(tok) > len("TERMSIGNAL") && tok[:len("TERMSIGNAL")] == "TERMSIGNAL":
			handleTermSignal(p, tok[len("TERMSIGNAL"):], lineNum)
		default:
			p.problem(BadValue, "ObjectOptions", tok, lineNum)
		}
	}
}

func handleTermSignal(p *parseState, rest string, lineNum int) {
	if len(rest) < 2 || rest[0] != '=' {
		p.problem(BadValue, "ObjectOptions", rest, lineNum)
		return
	}
	spec := rest[1:]
	if allNumeric(spec) {
		n, err := strconv.Atoi(spec)
		if err != nil {
			p.problem(BadValue, "ObjectOptions", spec, lineNum)
			return
		}
		if n > 255 {
			p.problem(LargeNumber, "ObjectOptions", spec, lineNum)
		}
		p.curObj.TermSignal = signalFromInt(n)
		return
	}
	sig, ok := namedSignal(spec)
	if !ok {
		p.problem(BadValue, "ObjectOptions", spec, lineNum)
		return
	}
	p.curObj.TermSignal = sig
}

func handleObjectDescription(p *parseState, sep, value string, lineNum int) {
	if p.curObj == nil {
		p.problem(OrderBefore, "ObjectDescription", "", lineNum)
		return
	}
	p.curObj.Description = value
}

func handleObjectStartCommand(p *parseState, sep, value string, lineNum int) {
	if p.curObj == nil {
		p.problem(OrderBefore, "ObjectStartCommand", "", lineNum)
		return
	}
	p.curObj.StartCommand = value
}

func handleObjectReloadCommand(p *parseState, sep, value string, lineNum int) {
	if p.curObj == nil {
		p.problem(OrderBefore, "ObjectReloadCommand", "", lineNum)
		return
	}
	p.curObj.ReloadCommand = value
}

func handleObjectStopCommand(p *parseState, sep, value string, lineNum int) {
	if p.curObj == nil {
		p.problem(OrderBefore, "ObjectStopCommand", "", lineNum)
		return
	}
	switch {
	case hasPrefixToken(value, "PIDFILE"):
		rest := value[len("PIDFILE"):]
		for len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
			rest = rest[1:]
		}
		p.curObj.PIDFile = rest
		p.curObj.StopMode = StopPIDFile
	case hasPrefixToken(value, "PID"):
		p.curObj.StopMode = StopPID
	case hasPrefixToken(value, "NONE"):
		p.curObj.StopMode = StopNone
	default:
		p.curObj.StopMode = StopCommand
		p.curObj.StopCommand = value
	}
}

// hasPrefixToken mirrors the original's use of plain strncmp for these
// three special stop-command values only (config.c:918-940); unlike the
// global attribute-keyword ladder, these really are meant as prefixes so
// that "PIDFILE /var/run/foo.pid" parses as keyword-plus-argument.
func hasPrefixToken(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func handleObjectPriority(start bool) directiveHandler {
	attr := "ObjectStopPriority"
	if start {
		attr = "ObjectStartPriority"
	}
	return func(p *parseState, sep, value string, lineNum int) {
		if p.curObj == nil {
			p.problem(OrderBefore, attr, "", lineNum)
			return
		}
		n, ok := resolvePriority(p, value, lineNum, attr)
		if !ok {
			return
		}
		if start {
			p.curObj.StartPriority = n
		} else {
			p.curObj.StopPriority = n
		}
	}
}

func resolvePriority(p *parseState, value string, lineNum int, attr string) (int, bool) {
	if !allNumeric(value) {
		n, ok := p.aliases.lookup(value)
		if !ok {
			p.problem(BadValue, attr, value, lineNum)
			return 0, false
		}
		return n, true
	}
	if len(value) >= LargeNumberDigits {
		p.problem(LargeNumber, attr, "", lineNum)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		p.problem(BadValue, attr, value, lineNum)
		return 0, false
	}
	return n, true
}

func handleObjectRunlevels(p *parseState, sep, value string, lineNum int) {
	if p.curObj == nil {
		p.problem(OrderBefore, "ObjectRunlevels", "", lineNum)
		return
	}
	if p.lastRLObj == p.curObj {
		p.problem(BadValue, "ObjectRunlevels", "(duplicate line for this object)", lineNum)
	}
	p.lastRLObj = p.curObj

	for _, rl := range fields(value) {
		p.table.AddRunlevel(p.curObj, rl)
	}
}

// firstToken returns the leading whitespace-delimited token of s.
func firstToken(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return s[:i], i > 0
}

// applyNoWaitEmulation appends the deprecated '&' background-execution
// marker to every object whose ObjectOptions included NOWAIT, once, after
// the whole file has been parsed (config.c:1134-1156). Doing this as a
// single post-pass instead of inline means the order ObjectOptions and
// ObjectStartCommand appear in the file no longer matters.
func applyNoWaitEmulation(objects []*Object) {
	for _, o := range objects {
		if !o.Options.EmulNoWait {
			continue
		}
		trimmed := strings.TrimRight(o.StartCommand, " \t")
		if trimmed == "" {
			continue
		}
		if trimmed[len(trimmed)-1] == '&' {
			o.StartCommand = trimmed
			continue
		}
		o.StartCommand = trimmed + "&"
	}
}
