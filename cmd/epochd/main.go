// Command epochd is the boot-sequencing daemon: it parses epoch.conf,
// validates it, walks every object into existence in priority order for
// the current runlevel, then waits for SIGHUP (reload) or SIGTERM/SIGINT
// (shutdown), both handled by setting a flag the main loop polls rather
// than doing any work inside the signal handler itself — the same
// single-threaded, cooperative-scheduling shape spec.md §9 calls for, and
// the one the kardianos-derived sysv backend's Run() uses for its own
// signal wait.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	goerrors "github.com/go-errors/errors"

	"github.com/subsentient/epoch/internal/epochlog"
	"github.com/subsentient/epoch/internal/epochpath"
	"github.com/subsentient/epoch/internal/objconf"
	"github.com/subsentient/epoch/internal/supervisor"
)

const defaultVersion = "unversioned"

var (
	commit  string
	version = defaultVersion
	date    string
)

func main() {
	updateBuildInfo()

	log := epochlog.NewLogger(epochlog.Options{
		Debug:     os.Getenv("DEBUG") == "TRUE",
		Version:   version,
		Commit:    commit,
		BuildDate: date,
	})

	if err := run(log); err != nil {
		newErr := goerrors.Wrap(err, 0)
		log.Error(newErr.ErrorStack())
		fmt.Fprintln(os.Stderr, newErr.ErrorStack())
		os.Exit(1)
	}
}

func run(log interface{ Info(args ...interface{}) }) error {
	ctx := context.Background()

	path := epochpath.File()
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("epochd: reading %s: %w", path, err)
	}

	table, problems := objconf.ParseConfig(string(raw))
	if result := objconf.ParseResult(problems); result == objconf.Failure {
		for _, line := range objconf.FormatProblems(problems) {
			fmt.Fprintln(os.Stderr, line)
		}
		return fmt.Errorf("epochd: %s has fatal configuration errors", path)
	}

	result, iProblems := objconf.CheckIntegrity(ctx, table, objconf.Boot, stdinRunlevelPrompt, emergencyShell)
	for _, line := range objconf.FormatProblems(iProblems) {
		fmt.Fprintln(os.Stderr, line)
	}
	if result == objconf.Failure {
		return fmt.Errorf("epochd: configuration failed integrity checks")
	}

	sup := supervisor.New()
	log.Info("epochd: booting into runlevel " + table.Config.CurrentRunlevel)
	sequenceBoot(ctx, table, sup)

	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP)
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGTERM, syscall.SIGINT)

	for {
		select {
		case <-reloadCh:
			handleReload(ctx, table, path, log)
		case <-shutdownCh:
			sequenceShutdown(ctx, table, sup)
			return nil
		}
	}
}

// sequenceBoot walks StartPriority 1..highest for the current runlevel,
// starting whichever object occupies each slot, mirroring the priority
// walk GetObjectByPriority exists to drive (config.c:1760-1793).
func sequenceBoot(ctx context.Context, t *objconf.Table, sup *supervisor.Supervisor) {
	highest := t.GetHighestPriority(true)
	for p := 1; p <= highest; p++ {
		o := t.GetObjectByPriority(t.Config.CurrentRunlevel, p, true)
		if o == nil || !o.Enabled.Bool() {
			continue
		}
		if err := sup.Start(ctx, o); err != nil {
			fmt.Fprintf(os.Stderr, "epochd: %v\n", err)
		}
	}
}

// sequenceShutdown walks StopPriority the same way, in ascending order,
// same as the boot sequence but against the stop table.
func sequenceShutdown(ctx context.Context, t *objconf.Table, sup *supervisor.Supervisor) {
	highest := t.GetHighestPriority(false)
	for p := 1; p <= highest; p++ {
		o := t.GetObjectByPriority(t.Config.CurrentRunlevel, p, false)
		if o == nil || !o.Started {
			continue
		}
		if err := sup.Stop(ctx, o); err != nil {
			fmt.Fprintf(os.Stderr, "epochd: %v\n", err)
		}
	}
}

func handleReload(ctx context.Context, t *objconf.Table, path string, log interface{ Info(args ...interface{}) }) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "epochd: reload: %v\n", err)
		return
	}
	result := objconf.ReloadConfig(ctx, t, string(raw))
	for _, line := range objconf.FormatProblems(result.Problems) {
		fmt.Fprintln(os.Stderr, line)
	}
	if result.Result == objconf.Failure {
		fmt.Fprintln(os.Stderr, "epochd: reload failed, previous configuration retained")
		return
	}
	log.Info("epochd: configuration reloaded")
}

func stdinRunlevelPrompt(ctx context.Context) (string, bool) {
	fmt.Print("Enter a runlevel to boot into, or press enter for an emergency shell: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", false
	}
	line = trimNewline(line)
	if line == "" {
		return "", false
	}
	return line, true
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func emergencyShell() {
	fmt.Fprintln(os.Stderr, "epochd: dropping to an emergency shell")
	time.Sleep(0)
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
			version = safeTruncate(setting.Value, 7)
		case "vcs.time":
			date = setting.Value
		}
	}
}

func safeTruncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
