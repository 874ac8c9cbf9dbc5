// Package lang maps code block language tags to interpreters.
package lang

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Placeholder marks where the block source or file path goes in a command
// template. When a template has no placeholder the argument is appended.
const Placeholder = "{}"

// Binding associates a language with a file extension and the commands that
// run a block inline or from a file.
type Binding struct {
	Name      string
	Aliases   []string
	Extension string
	Inline    []string
	File      []string
	// Builtin bindings run in the embedded shell interpreter instead of a
	// subprocess.
	Builtin bool
}

// Program is the interpreter named by the inline template, or the file
// template when there is no inline one.
func (b Binding) Program() string {
	if len(b.Inline) > 0 {
		return b.Inline[0]
	}

	if len(b.File) > 0 {
		return b.File[0]
	}

	return ""
}

// InlineCommand returns the argv that evaluates source directly.
func (b Binding) InlineCommand(source string) ([]string, error) {
	if len(b.Inline) == 0 {
		return nil, fmt.Errorf("%s: %w", b.Name, ErrNoInline)
	}

	return Expand(b.Inline, source), nil
}

// FileCommand returns the argv that runs the file at path.
func (b Binding) FileCommand(path string) ([]string, error) {
	if len(b.File) == 0 {
		return nil, fmt.Errorf("%s: %w", b.Name, ErrNoFile)
	}

	return Expand(b.File, path), nil
}

// ParseTemplate splits a command line such as "python3 -c {}" into argv
// using shell quoting rules.
func ParseTemplate(command string) ([]string, error) {
	if len(strings.TrimSpace(command)) == 0 {
		return nil, nil
	}

	return shlex.Split(command)
}

// Expand substitutes arg for every placeholder in template. If template has
// no placeholder, arg becomes the last argument.
func Expand(template []string, arg string) []string {
	argv := make([]string, 0, len(template)+1)
	found := false

	for _, word := range template {
		if word == Placeholder {
			argv = append(argv, arg)
			found = true

			continue
		}

		if strings.Contains(word, Placeholder) {
			found = true
		}

		argv = append(argv, strings.ReplaceAll(word, Placeholder, arg))
	}

	if !found {
		argv = append(argv, arg)
	}

	return argv
}
