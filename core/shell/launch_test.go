package shell

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireProgram(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not on PATH", name)
	}
}

func TestExecLauncher(t *testing.T) {
	launcher := &ExecLauncher{}

	t.Run("exit zero", func(t *testing.T) {
		requireProgram(t, "echo")
		out := &bytes.Buffer{}

		outcome, err := launcher.Launch([]string{"echo", "hello"}, Stdio{Stdout: out})
		require.NoError(t, err)

		assert.Equal(t, "hello\n", out.String())
		assert.True(t, outcome.Exited)
		assert.Equal(t, 0, outcome.ExitCode)
		assert.NotZero(t, outcome.Pid)
		assert.Equal(t, "", outcome.SignalName())
	})

	t.Run("exit nonzero", func(t *testing.T) {
		requireProgram(t, "sh")

		outcome, err := launcher.Launch([]string{"sh", "-c", "exit 3"}, Stdio{})
		require.NoError(t, err)

		assert.True(t, outcome.Exited)
		assert.Equal(t, 3, outcome.ExitCode)
	})

	t.Run("killed", func(t *testing.T) {
		requireProgram(t, "sh")

		outcome, err := launcher.Launch([]string{"sh", "-c", "kill -KILL $$"}, Stdio{})
		require.NoError(t, err)

		assert.False(t, outcome.Exited)
		assert.Equal(t, syscall.SIGKILL, outcome.Signal)
		assert.Equal(t, "SIGKILL", outcome.SignalName())
	})

	t.Run("stopped", func(t *testing.T) {
		requireProgram(t, "sh")
		pidFile := filepath.Join(t.TempDir(), "pid")

		type result struct {
			outcome *Outcome
			err     error
		}
		done := make(chan result, 1)
		go func() {
			outcome, err := launcher.Launch([]string{"sh", "-c", `echo $$ > "$0"; kill -STOP $$; exit 5`, pidFile}, Stdio{})
			done <- result{outcome, err}
		}()

		var pid int
		require.Eventually(t, func() bool {
			data, err := os.ReadFile(pidFile)
			if err != nil || !bytes.HasSuffix(data, []byte("\n")) {
				return false
			}
			pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
			return err == nil
		}, 5*time.Second, 10*time.Millisecond)

		select {
		case <-done:
			t.Fatal("Launch returned while the child was stopped")
		case <-time.After(500 * time.Millisecond):
		}

		// Keep resuming in case the first SIGCONT beat the stop.
		var res result
		require.Eventually(t, func() bool {
			syscall.Kill(pid, syscall.SIGCONT)
			select {
			case res = <-done:
				return true
			default:
				return false
			}
		}, 5*time.Second, 50*time.Millisecond)

		require.NoError(t, res.err)
		assert.True(t, res.outcome.Exited)
		assert.Equal(t, 5, res.outcome.ExitCode)
		assert.Equal(t, pid, res.outcome.Pid)
	})

	t.Run("argv zero", func(t *testing.T) {
		requireProgram(t, "sh")
		out := &bytes.Buffer{}

		_, err := launcher.Launch([]string{"sh", "-c", `echo "$0 $1"`, "zero", "one"}, Stdio{Stdout: out})
		require.NoError(t, err)
		assert.Equal(t, "zero one\n", out.String())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := launcher.Launch([]string{"not_a_real_cmd_xyz"}, Stdio{})
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})

	t.Run("not executable", func(t *testing.T) {
		script := filepath.Join(t.TempDir(), "script")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0600))

		_, err := launcher.Launch([]string{script}, Stdio{})
		assert.NotNil(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := launcher.Launch(nil, Stdio{})
		assert.Equal(t, ErrNoCommand, err)
	})
}

func TestShellLaunchesPrograms(t *testing.T) {
	requireProgram(t, "echo")
	requireProgram(t, "sh")

	input := strings.Join([]string{
		"echo hello",
		"sh -c exit\t7",
		"not_a_real_cmd_xyz",
		"help",
		"exit",
	}, "\n")

	s, out := newTestShell(testConfig(), input)
	s.Launcher = &ExecLauncher{}

	require.NoError(t, s.Run())

	assert.Contains(t, out.String(), "rsh:/home/rsh> hello\nrsh:/home/rsh> ")
	assert.Contains(t, out.String(), "rsh: exec: \"not_a_real_cmd_xyz\": executable file not found in $PATH\n")
	assert.Contains(t, out.String(), "  exit\n")
}
