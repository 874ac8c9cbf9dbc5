package runner

import (
	"context"
	"fmt"
	"sort"

	"github.com/ezerfernandes/mdexec/internal/lang"
	"github.com/ezerfernandes/mdexec/internal/mdcode"
	"github.com/ezerfernandes/mdexec/internal/workspace"
)

// File writes every block to a workspace and then runs the files it finds
// there, choosing the interpreter by file extension.
type File struct {
	d  *Dispatcher
	ws workspace.Workspace
}

func (d *Dispatcher) File(ws workspace.Workspace) *File {
	return &File{d: d, ws: ws}
}

func (*File) Name() string {
	return "file"
}

type materialized struct {
	index int
	lang  string
	bound bool
	meta  mdcode.Meta
}

type target struct {
	name string
	line int
	ext  string
}

// Materialize resets the workspace and writes one file per block, named
// after the document, the block's start line and its language's extension.
// It returns the written names in document order.
func (f *File) Materialize(document string, blocks mdcode.Blocks) ([]string, error) {
	_, names, err := f.materialize(f.d.session(document, f.Name()), document, blocks)

	return names, err
}

func (f *File) materialize(s *session, document string, blocks mdcode.Blocks) (map[string]materialized, []string, error) {
	if err := f.ws.Reset(); err != nil {
		return nil, nil, fmt.Errorf("reset workspace: %w", err)
	}

	prefix := workspace.Prefix(document)
	written := make(map[string]materialized, len(blocks))
	names := make([]string, 0, len(blocks))

	for index, block := range blocks {
		effective, binding, ok, meta := s.info(block)

		ext := lang.NoExtension
		if ok {
			ext = binding.Extension
		}

		name := workspace.FileName(prefix, block.Line(), ext)
		if err := f.ws.WriteFile(name, block.Code); err != nil {
			return nil, nil, fmt.Errorf("write %s: %w", name, err)
		}

		s.log.Debug().Str("file", name).Msg("materialized block")

		written[name] = materialized{index: index, lang: effective, bound: ok, meta: meta}
		names = append(names, name)
	}

	return written, names, nil
}

func (f *File) Run(ctx context.Context, document string, blocks mdcode.Blocks) (*Report, error) {
	s := f.d.session(document, f.Name())

	written, _, err := f.materialize(s, document, blocks)
	if err != nil {
		return s.report, err
	}

	targets, err := f.targets(s)
	if err != nil {
		return s.report, err
	}

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return s.report, err
		}

		m, ok := written[t.name]
		if !ok {
			s.log.Warn().Str("file", t.name).Msg("ignoring file not written by this run")

			continue
		}

		path := f.ws.Path(t.name)
		res := &Result{Index: m.index, Lang: m.lang, Line: t.line, File: path}

		binding, ok := s.registry.ByExtension(t.ext)

		switch {
		case !ok && m.bound:
			res.Outcome = Skipped{Reason: "no file extension for " + m.lang}
		case !ok:
			res.Outcome = unsupported(m.lang)
		case m.meta.Flag(metaSkip):
			res.Outcome = Skipped{Reason: "skip attribute"}
		default:
			argv, err := binding.FileCommand(path)
			if err != nil {
				res.Outcome = Skipped{Reason: err.Error()}

				break
			}

			res.Outcome = s.execute(ctx, binding, argv, f.ws.Root(), m.meta)
		}

		s.add(res)
	}

	return s.report, nil
}

// targets enumerates the workspace in start line order.
func (f *File) targets(s *session) ([]target, error) {
	names, err := f.ws.Files()
	if err != nil {
		return nil, fmt.Errorf("list workspace: %w", err)
	}

	targets := make([]target, 0, len(names))

	for _, name := range names {
		_, line, ext, err := workspace.ParseFileName(name)
		if err != nil {
			s.log.Debug().Err(err).Msg("skipping file")

			continue
		}

		targets = append(targets, target{name: name, line: line, ext: ext})
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].line < targets[j].line })

	return targets, nil
}
