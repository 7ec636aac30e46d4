package shell

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrNoCommand is returned when launching an empty argument list.
var ErrNoCommand = errors.New("no command")

// Stdio holds the standard streams given to a child. Nil streams are
// connected to the null device.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome describes how a child finished.
type Outcome struct {
	Pid      int
	Exited   bool
	ExitCode int
	// Signal is set when the child was killed by a signal.
	Signal syscall.Signal
}

// SignalName returns the name of the signal that killed the child, or an empty
// string if it exited normally.
func (o *Outcome) SignalName() string {
	if o.Exited {
		return ""
	}
	return unix.SignalName(o.Signal)
}

// Launcher starts a program and waits for it to exit or be killed.
type Launcher interface {
	Launch(argv []string, stdio Stdio) (*Outcome, error)
}

// ExecLauncher runs programs found on PATH with the shell's environment.
//
// The child reports a failed exec back through a close-on-exec pipe and exits
// without running any shell code, the failure surfaces here as an error.
// Stopped children are still waited on.
type ExecLauncher struct{}

var _ Launcher = (*ExecLauncher)(nil)

// Launch implements Launcher.
func (*ExecLauncher) Launch(argv []string, stdio Stdio) (*Outcome, error) {
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var exitErr *exec.ExitError
	if err := cmd.Wait(); err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("%s: %w", argv[0], err)
	}

	state := cmd.ProcessState
	outcome := &Outcome{
		Pid:      state.Pid(),
		Exited:   state.Exited(),
		ExitCode: state.ExitCode(),
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		outcome.Signal = ws.Signal()
	}
	return outcome, nil
}
