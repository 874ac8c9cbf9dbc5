package runner

import (
	"context"

	"github.com/ezerfernandes/mdexec/internal/mdcode"
)

// Inline passes each block's source to its interpreter's evaluation flag.
type Inline struct {
	d *Dispatcher
}

func (d *Dispatcher) Inline() *Inline {
	return &Inline{d: d}
}

func (*Inline) Name() string {
	return "inline"
}

func (i *Inline) Run(ctx context.Context, document string, blocks mdcode.Blocks) (*Report, error) {
	s := i.d.session(document, i.Name())

	for index, block := range blocks {
		if err := ctx.Err(); err != nil {
			return s.report, err
		}

		effective, binding, ok, meta := s.info(block)
		res := &Result{Index: index, Lang: effective, Line: block.Line()}

		switch {
		case !ok:
			res.Outcome = unsupported(effective)
		case meta.Flag(metaSkip):
			res.Outcome = Skipped{Reason: "skip attribute"}
		default:
			argv, err := binding.InlineCommand(string(block.Code))
			if err != nil {
				res.Outcome = Skipped{Reason: err.Error()}

				break
			}

			res.Outcome = s.execute(ctx, binding, argv, s.dir, meta)
		}

		s.add(res)
	}

	return s.report, nil
}
