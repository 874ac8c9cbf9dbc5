package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	reg := Defaults()

	assert.Equal(t, []string{"javascript", "python", "sh"}, reg.Names())

	name, b, ok := reg.Resolve("JS")
	require.True(t, ok)
	assert.Equal(t, "javascript", name)
	assert.Equal(t, "js", b.Extension)
	assert.Equal(t, "node", b.Program())

	b, ok = reg.ByExtension(".py")
	require.True(t, ok)
	assert.Equal(t, "python", b.Name)

	b, ok = reg.Lookup("bash")
	require.True(t, ok)
	assert.True(t, b.Builtin)
}

func TestResolveUnknownAndUntagged(t *testing.T) {
	t.Parallel()

	reg := Defaults()

	name, _, ok := reg.Resolve("rust")
	assert.False(t, ok)
	assert.Equal(t, "rust", name)
	assert.Equal(t, NoExtension, reg.Extension("rust"))

	name, _, ok = reg.Resolve("")
	assert.False(t, ok)
	assert.Equal(t, None, name)

	_, ok = reg.ByExtension(NoExtension)
	assert.False(t, ok)
}

func TestRegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := Defaults()

	require.NoError(t, reg.Register(Binding{
		Name:      "python",
		Extension: ".py3",
		Inline:    []string{"pypy3", "-c"},
	}))

	b, ok := reg.Lookup("python")
	require.True(t, ok)
	assert.Equal(t, "pypy3", b.Program())

	_, ok = reg.Lookup("py")
	assert.False(t, ok)

	_, ok = reg.ByExtension("py")
	assert.False(t, ok)

	b, ok = reg.ByExtension("py3")
	require.True(t, ok)
	assert.Equal(t, "python", b.Name)
}

func TestRegisterInvalid(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	require.ErrorIs(t, reg.Register(Binding{Inline: []string{"x"}}), ErrNoName)
	require.ErrorIs(t, reg.Register(Binding{Name: "ruby"}), ErrNoCommand)
}

func TestCommands(t *testing.T) {
	t.Parallel()

	b := Binding{
		Name:   "ruby",
		Inline: []string{"ruby", "-e"},
		File:   []string{"ruby", "-w", "{}", "--"},
	}

	argv, err := b.InlineCommand("puts 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ruby", "-e", "puts 1"}, argv)

	argv, err = b.FileCommand("/tmp/x.rb")
	require.NoError(t, err)
	assert.Equal(t, []string{"ruby", "-w", "/tmp/x.rb", "--"}, argv)

	_, err = Binding{Name: "ruby", File: []string{"ruby"}}.InlineCommand("x")
	require.ErrorIs(t, err, ErrNoInline)
}

func TestExpandEmbeddedPlaceholder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"deno", "eval", "--file=a.ts"}, Expand([]string{"deno", "eval", "--file={}"}, "a.ts"))
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	argv, err := ParseTemplate(`python3 -X "dev mode" -c {}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "-X", "dev mode", "-c", "{}"}, argv)

	argv, err = ParseTemplate("  ")
	require.NoError(t, err)
	assert.Nil(t, argv)
}
