// Package shell implements the rsh read, tokenize, dispatch and wait loop.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/rsh/core/config"
	"github.com/josephlewis42/rsh/core/growbuf"
	"github.com/josephlewis42/rsh/core/logger"
	"github.com/mattn/go-isatty"
)

// Status tells the loop whether to keep going after a command.
type Status int

const (
	// Terminate ends the loop.
	Terminate Status = 0
	// Continue prompts for the next line.
	Continue Status = 1
)

// ErrFatal is returned by Run when the shell can't go on.
var ErrFatal = errors.New("rsh: fatal error")

const diagnosticPrefix = "rsh:"

// Shell holds the streams and collaborators of an interactive session.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config   *config.Configuration
	Builtins *BuiltinTable
	Launcher Launcher
	Events   *logger.SessionLogger
	// Log receives internal failures that shouldn't be shown to the user.
	Log *log.Logger

	// Getwd and Chdir act on the process working directory unless replaced.
	Getwd func() (string, error)
	Chdir func(dir string) error

	errPrefix string
}

// New creates a shell with the default builtins that launches real processes.
func New(cfg *config.Configuration, stdin io.Reader, stdout, stderr io.Writer) *Shell {
	return &Shell{
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    cfg,
		Builtins:  DefaultBuiltins(),
		Launcher:  &ExecLauncher{},
		Events:    logger.NewNopLogger().NewSession(),
		Log:       log.New(io.Discard, "", 0),
		Getwd:     os.Getwd,
		Chdir:     os.Chdir,
		errPrefix: errorPrefix(cfg.Color, stderr),
	}
}

func errorPrefix(mode string, stderr io.Writer) string {
	switch mode {
	case config.ColorNever:
		return diagnosticPrefix
	case config.ColorAuto:
		f, ok := stderr.(*os.File)
		if !ok || !isatty.IsTerminal(f.Fd()) {
			return diagnosticPrefix
		}
	}

	c := color.New(color.FgRed, color.Bold)
	c.EnableColor()
	return c.Sprint(diagnosticPrefix)
}

// Run prompts for and executes commands until a builtin ends the session or
// input runs out.
func (s *Shell) Run() error {
	reader := NewLineReader(s.Stdin, s.Config.LineOptions())

	for {
		fmt.Fprint(s.Stdout, s.Prompt())

		line, err := reader.ReadLine()
		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case errors.Is(err, growbuf.ErrExhausted):
			if err := s.exhausted("line"); err != nil {
				return err
			}
			continue

		case err != nil:
			s.errorf("%v", err)
			return fmt.Errorf("reading input: %w", err)
		}

		tokens, err := Tokenize(line, s.Config.TokenOptions())
		if err != nil {
			if err := s.exhausted("tokens"); err != nil {
				return err
			}
			continue
		}

		if s.Execute(tokens) == Terminate {
			return nil
		}
	}
}

// Execute runs one tokenized command line. An empty line is a no-op, a
// builtin name runs the first builtin of that name and anything else is
// launched as a program.
func (s *Shell) Execute(args []string) Status {
	if len(args) == 0 {
		return Continue
	}

	if builtin, ok := s.Builtins.Lookup(args[0]); ok {
		s.record(s.Events.Builtin(args))
		return builtin.Main(s, args)
	}

	return s.launch(args)
}

// launch runs args as a program and waits for it. The child's exit status
// never ends the session.
func (s *Shell) launch(args []string) Status {
	outcome, err := s.Launcher.Launch(args, Stdio{
		Stdin:  s.childStdin(),
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	})
	if err != nil {
		s.errorf("%v", err)
		s.record(s.Events.LaunchError(args, err))
		return Continue
	}

	s.record(s.Events.Launch(args, outcome.Pid, outcome.Exited, outcome.ExitCode, outcome.SignalName()))
	return Continue
}

// childStdin returns the stream a child reads from. Only real files are
// shared, anything else has already been buffered by the line reader.
func (s *Shell) childStdin() io.Reader {
	if f, ok := s.Stdin.(*os.File); ok {
		return f
	}
	return nil
}

func (s *Shell) exhausted(stage string) error {
	s.errorf("Buffer allocation error")
	s.record(s.Events.Exhausted(stage))

	if s.Config.AbortOnExhausted() {
		return ErrFatal
	}
	return nil
}

func (s *Shell) errorf(format string, a ...interface{}) {
	fmt.Fprintf(s.Stderr, "%s %s\n", s.errPrefix, fmt.Sprintf(format, a...))
}

func (s *Shell) record(err error) {
	if err != nil {
		s.Log.Printf("recording event: %v", err)
	}
}
