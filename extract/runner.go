package extract

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// CommandRunner abstracts external process execution so the extractor
// can be tested without ffmpeg installed.
type CommandRunner interface {
	// Output runs a command to completion and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Stream starts a command and returns its stdout as a stream.
	// Closing the stream kills the process. Cancelling ctx also kills
	// it, which surfaces to the reader as end of stream.
	Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error)
}

// ExecCommandRunner runs real processes.
type ExecCommandRunner struct{}

func (ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func (ExecCommandRunner) Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &processStream{cmd: cmd, stdout: stdout}, nil
}

type processStream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	closed bool
}

func (p *processStream) Read(b []byte) (int, error) {
	return p.stdout.Read(b)
}

func (p *processStream) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	p.stdout.Close()
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	return p.cmd.Wait()
}
