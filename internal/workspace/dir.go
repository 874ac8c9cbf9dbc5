package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotOwned is returned by [Dir.Reset] when the directory holds something
// that was not written there as a block file.
var ErrNotOwned = errors.New("refusing to reset directory not owned by mdexec")

// Dir is a workspace on the local file system.
type Dir struct {
	root      string
	protected []string
}

// NewDir returns a workspace rooted at path. The directory is created by
// Reset, not here. Reset refuses to run while any of the protected paths
// lies inside the root.
func NewDir(path string, protected ...string) (*Dir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	dir := &Dir{root: abs}

	for _, p := range protected {
		if p, err = filepath.Abs(p); err != nil {
			return nil, err
		}

		dir.protected = append(dir.protected, p)
	}

	return dir, nil
}

func (d *Dir) Reset() error {
	if err := d.owned(); err != nil {
		return err
	}

	if err := os.RemoveAll(d.root); err != nil {
		return err
	}

	return os.MkdirAll(d.root, dirMode)
}

// owned checks that the root holds only block files and contains neither
// the working directory nor a protected path.
func (d *Dir) owned() error {
	guarded := d.protected

	if wd, err := os.Getwd(); err == nil {
		guarded = append([]string{wd}, guarded...)
	}

	for _, path := range guarded {
		if within(d.root, path) {
			return fmt.Errorf("%s: %w: contains %s", d.root, ErrNotOwned, path)
		}
	}

	entries, err := os.ReadDir(d.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			return fmt.Errorf("%s: %w: holds %s", d.root, ErrNotOwned, entry.Name())
		}

		if _, _, _, err := ParseFileName(entry.Name()); err != nil {
			return fmt.Errorf("%s: %w: holds %s", d.root, ErrNotOwned, entry.Name())
		}
	}

	return nil
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (d *Dir) WriteFile(name string, data []byte) error {
	return os.WriteFile(d.Path(name), data, fileMode)
}

func (d *Dir) Files() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, name)
}

func (d *Dir) Root() string {
	return d.root
}
