package lang

import (
	"errors"
	"sort"
	"strings"
)

const (
	// None is the effective language of an untagged block.
	None = "text"

	// NoExtension is the extension of blocks without a binding.
	NoExtension = ""
)

var (
	ErrNoInline  = errors.New("no inline command")
	ErrNoFile    = errors.New("no file command")
	ErrNoName    = errors.New("binding has no name")
	ErrNoCommand = errors.New("binding has no command")
)

// Registry is the routing table from language tags and file extensions to
// bindings. Adding a language is a call to Register.
type Registry struct {
	names map[string]Binding
	exts  map[string]string
}

// NewRegistry returns an empty registry; see [Defaults] for the built-in one.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]Binding),
		exts:  make(map[string]string),
	}
}

// Defaults returns a registry with the bindings available out of the box.
func Defaults() *Registry {
	reg := NewRegistry()

	for _, b := range defaultBindings() {
		_ = reg.Register(b)
	}

	return reg
}

func defaultBindings() []Binding {
	return []Binding{
		{
			Name:      "python",
			Aliases:   []string{"py", "python3"},
			Extension: "py",
			Inline:    []string{"python3", "-c", Placeholder},
			File:      []string{"python3", Placeholder},
		},
		{
			Name:      "javascript",
			Aliases:   []string{"js", "node"},
			Extension: "js",
			Inline:    []string{"node", "-e", Placeholder},
			File:      []string{"node", Placeholder},
		},
		{
			Name:      "sh",
			Aliases:   []string{"bash", "shell"},
			Extension: "sh",
			Inline:    []string{"sh", "-c", Placeholder},
			File:      []string{"sh", Placeholder},
			Builtin:   true,
		},
	}
}

// Register adds or replaces a binding under its name, aliases and extension.
func (r *Registry) Register(b Binding) error {
	b.Name = normalize(b.Name)
	if len(b.Name) == 0 {
		return ErrNoName
	}

	if len(b.Inline) == 0 && len(b.File) == 0 {
		return ErrNoCommand
	}

	b.Extension = strings.TrimPrefix(b.Extension, ".")

	if old, ok := r.names[b.Name]; ok {
		r.drop(old)
	}

	r.names[b.Name] = b

	for _, alias := range b.Aliases {
		r.names[normalize(alias)] = b
	}

	if len(b.Extension) != 0 {
		r.exts[b.Extension] = b.Name
	}

	return nil
}

func (r *Registry) drop(old Binding) {
	for _, alias := range old.Aliases {
		if r.names[normalize(alias)].Name == old.Name {
			delete(r.names, normalize(alias))
		}
	}

	if r.exts[old.Extension] == old.Name {
		delete(r.exts, old.Extension)
	}
}

// Lookup returns the binding for a language name or alias.
func (r *Registry) Lookup(name string) (Binding, bool) {
	b, ok := r.names[normalize(name)]

	return b, ok
}

// ByExtension returns the binding that owns a file extension, with or
// without its leading dot.
func (r *Registry) ByExtension(ext string) (Binding, bool) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == NoExtension {
		return Binding{}, false
	}

	name, ok := r.exts[ext]
	if !ok {
		return Binding{}, false
	}

	return r.Lookup(name)
}

// Resolve returns the effective language of a block name and its binding.
// An empty name resolves to None.
func (r *Registry) Resolve(name string) (string, Binding, bool) {
	name = normalize(name)
	if len(name) == 0 {
		return None, Binding{}, false
	}

	b, ok := r.names[name]
	if !ok {
		return name, Binding{}, false
	}

	return b.Name, b, true
}

// Extension returns the file extension for a block name, or NoExtension when
// the name has no binding.
func (r *Registry) Extension(name string) string {
	if _, b, ok := r.Resolve(name); ok {
		return b.Extension
	}

	return NoExtension
}

// Names lists the canonical binding names.
func (r *Registry) Names() []string {
	var names []string

	for key, b := range r.names {
		if key == b.Name {
			names = append(names, key)
		}
	}

	sort.Strings(names)

	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
