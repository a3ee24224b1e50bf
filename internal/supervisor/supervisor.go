// Package supervisor runs the start/stop/reload commands an
// *objconf.Object carries, tracking the resulting PID the same way the
// original init system did in memory (ObjectPID/Started). It is grounded
// on the process-control idioms in the kardianos-derived SysV service
// backend (service_sysv_linux.go's Start/Stop/Restart and its os/exec +
// os/signal usage), generalized from "install/control a fixed named OS
// service" to "run the command table.Table hands us for this object".
package supervisor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/subsentient/epoch/internal/objconf"
)

// Supervisor tracks the live *os.Process for every object it started in
// this process's lifetime, so Stop can signal it directly without relying
// solely on what's recorded on the Object (which only survives as a PID
// number across a reload, not a live *os.Process handle).
type Supervisor struct {
	procs map[string]*os.Process
}

func New() *Supervisor {
	return &Supervisor{procs: make(map[string]*os.Process)}
}

// buildCommand wraps cmdline in a shell invocation when the object asked
// for one (ForceShell, gated on the global ShellEnabled the way
// ObjectOptions' FORCESHELL token is, spec.md §4.2), or splits it on
// whitespace and execs it directly otherwise — the same two code paths
// the sysv backend's start()/stop() shell functions and its direct
// "$CMD $ARGS" invocation represent.
func buildCommand(ctx context.Context, cmdline string, forceShell bool) *exec.Cmd {
	if forceShell {
		return exec.CommandContext(ctx, "/bin/sh", "-c", cmdline)
	}
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return exec.CommandContext(ctx, "/bin/sh", "-c", cmdline)
	}
	return exec.CommandContext(ctx, fields[0], fields[1:]...)
}

// Start runs o's start command. SERVICE objects (Options.IsService) are
// started detached and tracked by PID, same as the sysv backend's
// start-stop-daemon --background path; everything else runs to completion
// before Start returns, the way a one-shot mount or setup command should.
func (s *Supervisor) Start(ctx context.Context, o *objconf.Object) error {
	if o.StartCommand == "" {
		return nil
	}
	cmd := buildCommand(ctx, o.StartCommand, o.Options.ForceShell)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if !o.Options.IsService {
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("supervisor: start %s: %w", o.ID, err)
		}
		o.Started = true
		return nil
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("supervisor: start %s: %w", o.ID, err)
	}
	o.Started = true
	o.PID = cmd.Process.Pid
	s.procs[o.ID] = cmd.Process
	return nil
}

// Stop halts o according to its StopMode (spec.md §4.2's ObjectStopCommand
// special values), mirroring killproc's PID-file/PID/command trichotomy in
// the sysv script template.
func (s *Supervisor) Stop(ctx context.Context, o *objconf.Object) error {
	if o.Options.Persistent {
		return nil
	}

	switch o.StopMode {
	case objconf.StopNone:
		return nil

	case objconf.StopCommand:
		if o.StopCommand == "" {
			return nil
		}
		cmd := buildCommand(ctx, o.StopCommand, o.Options.ForceShell)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("supervisor: stop %s: %w", o.ID, err)
		}

	case objconf.StopPID:
		if err := s.signalTracked(o, o.PID); err != nil {
			return fmt.Errorf("supervisor: stop %s: %w", o.ID, err)
		}

	case objconf.StopPIDFile:
		pid, err := readPIDFile(o.PIDFile)
		if err != nil {
			return fmt.Errorf("supervisor: stop %s: %w", o.ID, err)
		}
		if err := s.signalTracked(o, pid); err != nil {
			return fmt.Errorf("supervisor: stop %s: %w", o.ID, err)
		}
	}

	o.Started = false
	o.PID = 0
	delete(s.procs, o.ID)
	return nil
}

// Reload asks o to reload, running ObjectReloadCommand if one was
// configured, or signaling SIGHUP to its tracked process otherwise.
func (s *Supervisor) Reload(ctx context.Context, o *objconf.Object) error {
	if o.ReloadCommand != "" {
		cmd := buildCommand(ctx, o.ReloadCommand, o.Options.ForceShell)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("supervisor: reload %s: %w", o.ID, err)
		}
		return nil
	}
	return s.signalTracked(o, o.PID, syscall.SIGHUP)
}

// Restart stops then starts o, with the same brief pause the sysv
// backend's Restart() uses to let the old process release its resources
// (socket, pidfile, lockfile) before the new one claims them.
func (s *Supervisor) Restart(ctx context.Context, o *objconf.Object) error {
	if err := s.Stop(ctx, o); err != nil {
		return err
	}
	time.Sleep(50 * time.Millisecond)
	return s.Start(ctx, o)
}

func (s *Supervisor) signalTracked(o *objconf.Object, pid int, sig ...syscall.Signal) error {
	if pid == 0 {
		return fmt.Errorf("no tracked PID for object %s", o.ID)
	}
	term := o.TermSignal
	if len(sig) > 0 {
		term = sig[0]
	}
	if proc, ok := s.procs[o.ID]; ok {
		return proc.Signal(term)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(term)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed PID file %s: %w", path, err)
	}
	return pid, nil
}
