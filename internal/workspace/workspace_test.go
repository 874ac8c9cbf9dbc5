package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "README__3.py", FileName("README", 3, "py"))
	assert.Equal(t, "README__12", FileName("README", 12, ""))

	prefix, line, ext, err := ParseFileName("my__doc__12.js")
	require.NoError(t, err)
	assert.Equal(t, "my__doc", prefix)
	assert.Equal(t, 12, line)
	assert.Equal(t, "js", ext)

	_, line, ext, err = ParseFileName("README__7")
	require.NoError(t, err)
	assert.Equal(t, 7, line)
	assert.Empty(t, ext)

	for _, bad := range []string{"README.py", "README__x.py", "README__0.py", "README__"} {
		_, _, _, err = ParseFileName(bad)
		require.ErrorIs(t, err, ErrBadFileName, bad)
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "README", Prefix("docs/README.md"))
	assert.Equal(t, "my_notes", Prefix("my.notes.md"))
	assert.Equal(t, "stdin", Prefix("-"))
	assert.Equal(t, "stdin", Prefix(""))
	assert.Equal(t, "_hidden", Prefix(".hidden"))
}

func testWorkspace(t *testing.T, ws Workspace) {
	t.Helper()

	require.NoError(t, ws.Reset())
	require.NoError(t, ws.WriteFile("doc__1.py", []byte("print(1)")))
	require.NoError(t, ws.WriteFile("doc__5.js", []byte("1")))
	require.NoError(t, ws.WriteFile("doc__9", []byte("?")))

	files, err := ws.Files()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"doc__1.py", "doc__5.js", "doc__9"}, files)

	require.NoError(t, ws.Reset())
	require.NoError(t, ws.WriteFile("doc__2.sh", []byte("echo")))

	files, err = ws.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"doc__2.sh"}, files)
}

func TestDir(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "work")

	ws, err := NewDir(root)
	require.NoError(t, err)
	assert.Equal(t, root, ws.Root())

	testWorkspace(t, ws)

	data, err := os.ReadFile(ws.Path("doc__2.sh"))
	require.NoError(t, err)
	assert.Equal(t, "echo", string(data))
}

func TestDirResetRemovesStaleBlockFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "old__3.py"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "other__12"), []byte("x"), 0o600))

	ws, err := NewDir(root)
	require.NoError(t, err)
	require.NoError(t, ws.Reset())

	files, err := ws.Files()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDirResetRefuses(t *testing.T) {
	t.Parallel()

	t.Run("foreign file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		notes := filepath.Join(root, "notes.md")
		require.NoError(t, os.WriteFile(notes, []byte("# notes"), 0o600))

		ws, err := NewDir(root)
		require.NoError(t, err)
		require.ErrorIs(t, ws.Reset(), ErrNotOwned)

		_, err = os.Stat(notes)
		assert.NoError(t, err)
	})

	t.Run("nested directory", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o700))

		ws, err := NewDir(root)
		require.NoError(t, err)
		require.ErrorIs(t, ws.Reset(), ErrNotOwned)

		_, err = os.Stat(filepath.Join(root, "nested"))
		assert.NoError(t, err)
	})

	t.Run("protected path", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		ws, err := NewDir(root, filepath.Join(root, "sub", "doc.md"))
		require.NoError(t, err)
		require.ErrorIs(t, ws.Reset(), ErrNotOwned)
	})

	t.Run("working directory", func(t *testing.T) {
		t.Parallel()

		ws, err := NewDir(".")
		require.NoError(t, err)
		require.ErrorIs(t, ws.Reset(), ErrNotOwned)

		ws, err = NewDir("..")
		require.NoError(t, err)
		require.ErrorIs(t, ws.Reset(), ErrNotOwned)
	})

	t.Run("sibling is not protected", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()

		ws, err := NewDir(filepath.Join(base, "work"), filepath.Join(base, "doc.md"))
		require.NoError(t, err)
		require.NoError(t, ws.Reset())
	})
}

func TestMemory(t *testing.T) {
	t.Parallel()

	ws := NewMemory("mdexec")
	assert.Equal(t, "mdexec/doc__1.py", ws.Path("doc__1.py"))

	testWorkspace(t, ws)

	data, err := ws.ReadFile("doc__2.sh")
	require.NoError(t, err)
	assert.Equal(t, "echo", string(data))
}
