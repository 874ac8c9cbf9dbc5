package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// waitDelay bounds how long Process waits for output pipes after the
// context kills a command. Grandchildren holding the pipes are abandoned.
const waitDelay = 500 * time.Millisecond

// Command is a program invocation.
type Command struct {
	Program string
	Args    []string
	Dir     string
}

// Output is what a program that ran left behind.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Executor runs a command to completion.
//
// A returned error means the command could not be started, or that ctx
// expired; a command that ran and exited non-zero returns an Output with
// ExitCode set and a nil error.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (*Output, error)
}

// Process runs commands as subprocesses.
type Process struct{}

func (Process) Execute(ctx context.Context, cmd Command) (*Output, error) {
	var stdout, stderr bytes.Buffer

	proc := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	proc.Dir = cmd.Dir
	proc.Stdout = &stdout
	proc.Stderr = &stderr
	proc.WaitDelay = waitDelay

	err := proc.Run()
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: exitErr.ExitCode()}, nil
		}

		return nil, err
	}

	return &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}
