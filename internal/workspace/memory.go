package workspace

import (
	"errors"
	"io/fs"
	"path"

	"github.com/liamg/memoryfs"
)

// Memory is a workspace that never touches the disk. Interpreters cannot see
// its files; it serves dry runs and tests.
type Memory struct {
	fs   *memoryfs.FS
	root string
}

func NewMemory(root string) *Memory {
	return &Memory{fs: memoryfs.New(), root: root}
}

func (m *Memory) Reset() error {
	if err := m.fs.RemoveAll(m.root); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return m.fs.MkdirAll(m.root, dirMode)
}

func (m *Memory) WriteFile(name string, data []byte) error {
	return m.fs.WriteFile(m.Path(name), data, fileMode)
}

func (m *Memory) Files() ([]string, error) {
	entries, err := m.fs.ReadDir(m.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// ReadFile returns the contents of a file written to the workspace.
func (m *Memory) ReadFile(name string) ([]byte, error) {
	return m.fs.ReadFile(m.Path(name))
}

func (m *Memory) Path(name string) string {
	return path.Join(m.root, name)
}

func (m *Memory) Root() string {
	return m.root
}
