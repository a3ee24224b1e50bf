// Command epochctl is the operator-facing front end to the configuration
// subsystem: reload, status, edit, and dump. Adapted from the teacher's
// main.go (flaggy flag parsing, build-info plumbing via debug.BuildInfo),
// generalized from a single flat flag set to flaggy subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/integrii/flaggy"

	"github.com/subsentient/epoch/internal/console"
	"github.com/subsentient/epoch/internal/epochpath"
	"github.com/subsentient/epoch/internal/objconf"
)

const defaultVersion = "unversioned"

var (
	commit  string
	version = defaultVersion
	date    string

	pidFile = "/run/epochd.pid"
)

func main() {
	updateBuildInfo()

	info := fmt.Sprintf("%s\nDate: %s\nCommit: %s", version, date, commit)

	flaggy.SetName("epochctl")
	flaggy.SetDescription("Control and inspect the epoch configuration subsystem")
	flaggy.SetVersion(info)

	reloadCmd := flaggy.NewSubcommand("reload")
	reloadCmd.Description = "Signal the running daemon to reload epoch.conf"
	flaggy.AttachSubcommand(reloadCmd, 1)

	statusCmd := flaggy.NewSubcommand("status")
	statusCmd.Description = "Show every object's current state"
	flaggy.AttachSubcommand(statusCmd, 1)

	var editObject, editAttribute, editValue string
	editCmd := flaggy.NewSubcommand("edit")
	editCmd.Description = "Edit a single attribute's value in place"
	editCmd.String(&editObject, "o", "object", "ObjectID to edit")
	editCmd.String(&editAttribute, "a", "attribute", "Attribute name to edit")
	editCmd.String(&editValue, "v", "value", "New value")
	flaggy.AttachSubcommand(editCmd, 1)

	dumpCmd := flaggy.NewSubcommand("dump")
	dumpCmd.Description = "Parse epoch.conf and print the resolved configuration"
	flaggy.AttachSubcommand(dumpCmd, 1)

	flaggy.Parse()

	var err error
	switch {
	case reloadCmd.Used:
		err = doReload()
	case statusCmd.Used:
		err = doStatus()
	case editCmd.Used:
		err = doEdit(editObject, editAttribute, editValue)
	case dumpCmd.Used:
		err = doDump()
	default:
		flaggy.ShowHelp("")
		return
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func doReload() error {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return fmt.Errorf("epochctl: reading %s: %w", pidFile, err)
	}
	pid, err := strconv.Atoi(trimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("epochctl: malformed %s: %w", pidFile, err)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("epochctl: %w", err)
	}
	if err := proc.Signal(syscall.SIGHUP); err != nil {
		return fmt.Errorf("epochctl: signaling epochd: %w", err)
	}
	fmt.Println(console.ColoredString("Reload signal sent.", color.FgGreen))
	return nil
}

func doStatus() error {
	table, err := loadTable()
	if err != nil {
		return err
	}

	rows := [][]string{{"OBJECT", "ENABLED", "STARTED", "START", "STOP"}}
	for _, o := range table.Objects() {
		rows = append(rows, []string{
			o.ID,
			strconv.FormatBool(o.Enabled.Bool()),
			strconv.FormatBool(o.Started),
			strconv.Itoa(o.StartPriority),
			strconv.Itoa(o.StopPriority),
		})
	}
	out, err := console.RenderTable(rows)
	if err != nil {
		return fmt.Errorf("epochctl: %w", err)
	}
	fmt.Println(out)
	return nil
}

func doEdit(objectID, attribute, value string) error {
	if objectID == "" || attribute == "" {
		return fmt.Errorf("epochctl: edit requires --object and --attribute")
	}
	result, err := objconf.EditAttribute(epochpath.File(), objectID, attribute, value)
	if err != nil {
		return fmt.Errorf("epochctl: %w", err)
	}
	fmt.Println(console.StatusLine("edit "+objectID+"."+attribute+": ", result, 40))
	return nil
}

func doDump() error {
	table, err := loadTable()
	if err != nil {
		return err
	}
	cfg := table.Config
	fmt.Printf("CurrentRunlevel: %s\nHostname: %s\nDisableCAD: %t\nBlankLogOnBoot: %t\n"+
		"ShellEnabled: %t\nEnableLogging: %t\nAlignStatusReports: %t\nObjects: %d\n",
		cfg.CurrentRunlevel, cfg.Hostname, cfg.DisableCAD, cfg.BlankLogOnBoot,
		cfg.ShellEnabled, cfg.EnableLogging, cfg.AlignStatusReports, len(table.Objects()))
	return nil
}

func loadTable() (*objconf.Table, error) {
	raw, err := os.ReadFile(epochpath.File())
	if err != nil {
		return nil, fmt.Errorf("epochctl: reading %s: %w", epochpath.File(), err)
	}
	table, problems := objconf.ParseConfig(string(raw))
	if objconf.ParseResult(problems) == objconf.Failure {
		for _, line := range objconf.FormatProblems(problems) {
			fmt.Fprintln(os.Stderr, line)
		}
		return nil, fmt.Errorf("epochctl: %s has fatal configuration errors", epochpath.File())
	}
	objconf.CheckIntegrity(context.Background(), table, objconf.Reload, nil, nil)
	return table, nil
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\n' || s[start] == '\t' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\n' || s[end-1] == '\t' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

func updateBuildInfo() {
	if version != defaultVersion {
		return
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(setting.Value) > 7 {
				version = setting.Value[:7]
			} else {
				version = setting.Value
			}
		case "vcs.time":
			date = setting.Value
		}
	}
}
