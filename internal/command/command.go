package command

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Run runs the given command using the given working directory. If the command succeeds,
// the value of stdout is returned with trailing whitespace removed. If the command fails,
// the combined stdout/stderr text will also be returned.
func Run(ctx context.Context, dir, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Process is a running command whose stdin and stdout are connected to pipes.
type Process struct {
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	cmd    *exec.Cmd
}

// Start runs the given command in the background in the given working directory. The
// command's stderr is copied to the given writer.
func Start(ctx context.Context, dir string, stderr io.Writer, command string, args ...string) (*Process, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start %s", command)
	}

	return &Process{Stdin: stdin, Stdout: stdout, cmd: cmd}, nil
}

// Read reads from the process's stdout.
func (p *Process) Read(b []byte) (int, error) {
	return p.Stdout.Read(b)
}

// Write writes to the process's stdin.
func (p *Process) Write(b []byte) (int, error) {
	return p.Stdin.Write(b)
}

// Close closes stdin and stops the process.
func (p *Process) Close() error {
	err := p.Stdin.Close()
	p.Stop()
	return err
}

// Stop kills the process if it is still running and waits for it to exit.
func (p *Process) Stop() {
	_ = p.cmd.Process.Kill()
	_ = p.cmd.Wait()
}
