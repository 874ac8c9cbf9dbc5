// Package runner routes code blocks to interpreters and collects a per-block
// outcome for each of them.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/ezerfernandes/mdexec/internal/lang"
	"github.com/ezerfernandes/mdexec/internal/mdcode"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	metaSkip    = "skip"
	metaTimeout = "timeout"
)

// Strategy executes a parsed document.
//
// Run returns an error only when the run itself cannot proceed, such as a
// workspace that cannot be written or a cancelled context. Everything that
// goes wrong with a single block is reported in that block's Outcome.
type Strategy interface {
	Name() string
	Run(ctx context.Context, document string, blocks mdcode.Blocks) (*Report, error)
}

// Dispatcher holds what both strategies share: the language registry, the
// executors and the per-block limits.
type Dispatcher struct {
	registry *lang.Registry
	process  Executor
	shell    Executor
	dir      string
	timeout  time.Duration
	log      zerolog.Logger
	observe  func(*Result)
}

// Option configures a [Dispatcher].
type Option func(*Dispatcher)

// WithExecutor replaces the subprocess executor.
func WithExecutor(exec Executor) Option {
	return func(d *Dispatcher) { d.process = exec }
}

// WithShell replaces the executor used for builtin bindings.
func WithShell(exec Executor) Option {
	return func(d *Dispatcher) { d.shell = exec }
}

// WithDir sets the working directory of inline executions.
func WithDir(dir string) Option {
	return func(d *Dispatcher) { d.dir = dir }
}

// WithTimeout bounds each block. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithObserver registers a function called with every result as soon as it
// is known.
func WithObserver(observe func(*Result)) Option {
	return func(d *Dispatcher) { d.observe = observe }
}

// New returns a Dispatcher resolving languages through registry.
func New(registry *lang.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		process:  Process{},
		shell:    Shell{},
		log:      zerolog.Nop(),
		observe:  func(*Result) {},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// session is the state of one run.
type session struct {
	*Dispatcher

	report *Report
	log    zerolog.Logger
	// unlaunchable remembers subprocess programs that failed to start so
	// that later blocks do not retry them. Builtin errors are per block.
	unlaunchable map[string]error
}

func (d *Dispatcher) session(document, strategy string) *session {
	report := &Report{ID: uuid.New(), Document: document, Strategy: strategy}

	return &session{
		Dispatcher:   d,
		report:       report,
		log:          d.log.With().Str("run", report.ID.String()).Str("strategy", strategy).Logger(),
		unlaunchable: make(map[string]error),
	}
}

func (s *session) add(res *Result) {
	s.log.Debug().
		Int("line", res.Line).
		Str("lang", res.Lang).
		Str("outcome", string(res.Outcome.Kind())).
		Msg("block done")

	s.report.Results = append(s.report.Results, res)
	s.observe(res)
}

// info resolves a block's language. Broken metadata is logged and ignored.
func (s *session) info(block *mdcode.Block) (string, lang.Binding, bool, mdcode.Meta) {
	name, meta, err := block.Info()
	if err != nil {
		s.log.Warn().Err(err).Int("line", block.Line()).Msg("ignoring malformed block attributes")
	}

	effective, binding, ok := s.registry.Resolve(name)

	return effective, binding, ok, meta
}

func unsupported(effective string) Skipped {
	if effective == lang.None {
		return Skipped{Reason: "untagged block"}
	}

	return Skipped{Reason: "unsupported language " + effective}
}

// execute runs argv with the executor the binding asks for.
func (s *session) execute(ctx context.Context, binding lang.Binding, argv []string, dir string, meta mdcode.Meta) Outcome {
	program := argv[0]

	if err, failed := s.unlaunchable[program]; failed {
		return LaunchFailure{Program: program, Err: err}
	}

	timeout := s.blockTimeout(meta)
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	exec := s.process
	if binding.Builtin {
		exec = s.shell
	}

	s.log.Debug().Str("program", program).Int("args", len(argv)-1).Str("dir", dir).Msg("executing")

	out, err := exec.Execute(ctx, Command{Program: program, Args: argv[1:], Dir: dir})

	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		return Timeout{After: timeout}
	case err != nil && errors.Is(err, context.Canceled):
		return Skipped{Reason: "cancelled"}
	case err != nil:
		s.log.Warn().Err(err).Str("program", program).Msg("could not launch interpreter")

		if !binding.Builtin {
			s.unlaunchable[program] = err
		}

		return LaunchFailure{Program: program, Err: err}
	case out.ExitCode != 0:
		return Failure{ExitCode: out.ExitCode, Stderr: string(out.Stderr)}
	default:
		return Success{Stdout: string(out.Stdout)}
	}
}

func (s *session) blockTimeout(meta mdcode.Meta) time.Duration {
	value := meta.Get(metaTimeout)
	if len(value) == 0 {
		return s.timeout
	}

	timeout, err := time.ParseDuration(value)
	if err != nil || timeout < 0 {
		s.log.Warn().Str("timeout", value).Msg("ignoring invalid block timeout")

		return s.timeout
	}

	return timeout
}
