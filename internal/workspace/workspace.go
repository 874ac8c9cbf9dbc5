// Package workspace holds the flat directory that code blocks are written
// to before they are run from files.
package workspace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// Workspace is a flat directory fully owned by one run.
type Workspace interface {
	// Reset removes every block file and leaves an empty directory behind.
	// A directory holding anything else is left alone and an error returned.
	Reset() error
	WriteFile(name string, data []byte) error
	// Files lists file names in the directory.
	Files() ([]string, error)
	// Path returns the location of name as seen by an interpreter.
	Path(name string) string
	Root() string
}

// ErrBadFileName is returned by [ParseFileName] for names that were not
// produced by [FileName].
var ErrBadFileName = errors.New("not a block file name")

const separator = "__"

// FileName returns "<prefix>__<line>.<ext>", or "<prefix>__<line>" when ext
// is empty. line is the 1-based start line of the block.
func FileName(prefix string, line int, ext string) string {
	name := prefix + separator + strconv.Itoa(line)
	if len(ext) == 0 {
		return name
	}

	return name + "." + ext
}

// ParseFileName is the inverse of [FileName].
func ParseFileName(name string) (string, int, string, error) {
	idx := strings.LastIndex(name, separator)
	if idx < 0 {
		return "", 0, "", fmt.Errorf("%s: %w", name, ErrBadFileName)
	}

	prefix, rest := name[:idx], name[idx+len(separator):]

	num, ext, _ := strings.Cut(rest, ".")

	line, err := strconv.Atoi(num)
	if err != nil || line < 1 {
		return "", 0, "", fmt.Errorf("%s: %w", name, ErrBadFileName)
	}

	return prefix, line, ext, nil
}

// Prefix derives a file name prefix from a document path: its base name
// without extension, with characters unsafe in file names replaced.
func Prefix(document string) string {
	base := document
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}

	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}

	base = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}

		return r
	}, base)

	if len(base) == 0 || base == "-" {
		return "stdin"
	}

	return base
}
