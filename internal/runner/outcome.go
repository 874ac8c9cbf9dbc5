package runner

import (
	"fmt"
	"time"
)

// Kind names an outcome in reports.
type Kind string

const (
	KindSuccess     Kind = "success"
	KindFailure     Kind = "failure"
	KindSkipped     Kind = "skipped"
	KindLaunchError Kind = "launch-error"
	KindTimeout     Kind = "timeout"
)

// Outcome is the result of dispatching one block. It is one of [Success],
// [Failure], [Skipped], [LaunchFailure] or [Timeout].
type Outcome interface {
	Kind() Kind
	outcome()
}

// Success means the interpreter exited with status zero.
type Success struct {
	Stdout string
}

// Failure means the interpreter ran and exited with a non-zero status.
type Failure struct {
	ExitCode int
	Stderr   string
}

// Skipped means the block was not run.
type Skipped struct {
	Reason string
}

// LaunchFailure means the interpreter could not be started at all.
type LaunchFailure struct {
	Program string
	Err     error
}

// Timeout means the interpreter was killed after running longer than After.
type Timeout struct {
	After time.Duration
}

func (Success) Kind() Kind       { return KindSuccess }
func (Failure) Kind() Kind       { return KindFailure }
func (Skipped) Kind() Kind       { return KindSkipped }
func (LaunchFailure) Kind() Kind { return KindLaunchError }
func (Timeout) Kind() Kind       { return KindTimeout }

func (Success) outcome()       {}
func (Failure) outcome()       {}
func (Skipped) outcome()       {}
func (LaunchFailure) outcome() {}
func (Timeout) outcome()       {}

func (l LaunchFailure) Error() string {
	return fmt.Sprintf("could not launch %s: %v", l.Program, l.Err)
}

func (l LaunchFailure) Unwrap() error {
	return l.Err
}

// Failed reports whether an outcome counts against the run.
func Failed(o Outcome) bool {
	switch o.(type) {
	case Failure, LaunchFailure, Timeout:
		return true
	default:
		return false
	}
}

// Detail returns the captured text that goes with an outcome: stdout for a
// success, stderr for a failure, a diagnostic for everything else.
func Detail(o Outcome) string {
	switch o := o.(type) {
	case Success:
		return o.Stdout
	case Failure:
		return o.Stderr
	case Skipped:
		return o.Reason
	case LaunchFailure:
		return o.Error()
	case Timeout:
		return "timed out after " + o.After.String()
	default:
		return ""
	}
}
