package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	shellUsageError  = 2
	shellSyntaxError = 2
	shellNoScript    = 127
)

// ErrShellUsage is reported on stderr by [Shell] for arguments other than
// "-c script" or a single script path.
var ErrShellUsage = errors.New("usage: sh -c script | sh path")

// Shell runs POSIX shell and bash scripts with an embedded interpreter, so
// shell blocks work without a system shell. It accepts the same arguments
// as sh: "-c script" or a script path. Bad arguments and unreadable scripts
// fail the block the way sh would, with a message and a non-zero status.
type Shell struct{}

func (Shell) Execute(ctx context.Context, cmd Command) (*Output, error) {
	var stdout, stderr bytes.Buffer

	script, name, err := shellScript(cmd.Args)
	if err != nil {
		fmt.Fprintf(&stderr, "sh: %v\n", err)

		status := shellNoScript
		if errors.Is(err, ErrShellUsage) {
			status = shellUsageError
		}

		return &Output{Stderr: stderr.Bytes(), ExitCode: status}, nil
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		fmt.Fprintln(&stderr, err)

		return &Output{Stderr: stderr.Bytes(), ExitCode: shellSyntaxError}, nil
	}

	runner, err := interp.New(interp.Dir(cmd.Dir), interp.StdIO(bytes.NewReader(nil), &stdout, &stderr))
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, file)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err != nil {
		status, ok := interp.IsExitStatus(err)
		if !ok {
			fmt.Fprintln(&stderr, err)

			status = 1
		}

		return &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: int(status)}, nil
	}

	return &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

func shellScript(args []string) (string, string, error) {
	switch {
	case len(args) == 2 && args[0] == "-c":
		return args[1], "", nil
	case len(args) == 1 && args[0] != "-c":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}

		return string(data), args[0], nil
	default:
		return "", "", ErrShellUsage
	}
}
