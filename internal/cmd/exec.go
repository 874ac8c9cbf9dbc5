package cmd

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/ezerfernandes/mdexec/internal/config"
	"github.com/ezerfernandes/mdexec/internal/report"
	"github.com/ezerfernandes/mdexec/internal/runner"
	"github.com/ezerfernandes/mdexec/internal/workspace"
	"github.com/spf13/cobra"
)

//go:embed help/exec.md
var execHelp string

const (
	strategyInline = "inline"
	strategyFile   = "file"
)

var errUnknownStrategy = errors.New("unknown strategy, expected inline or file")

func execCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "exec [flags] [filename]",
		Aliases: []string{"run", "e"},
		Short:   "Execute every code block with the interpreter for its language",
		Long:    execHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := source(args)

			blocks, err := load(cmd, filename, opts)
			if err != nil {
				return err
			}

			reg, err := opts.cfg.Registry()
			if err != nil {
				return err
			}

			d := runner.New(reg,
				runner.WithTimeout(opts.cfg.Timeout),
				runner.WithLogger(opts.log),
				runner.WithObserver(func(res *runner.Result) {
					opts.status("--- block %d (%s) : L%d : %s\n", res.Index, res.Lang, res.Line, res.Outcome.Kind())
				}),
			)

			strategy, err := newStrategy(opts.cfg, d, filename)
			if err != nil {
				return err
			}

			rep, err := strategy.Run(cmd.Context(), filename, blocks)
			if err != nil {
				return err
			}

			if err := report.Write(cmd.OutOrStdout(), rep, opts.cfg.Format); err != nil {
				return err
			}

			if rep.Failed() {
				return fmt.Errorf("%d block(s) failed", rep.Summary().Failures())
			}

			return nil
		},

		DisableAutoGenTag: true,
	}

	dirFlag(cmd)

	cmd.Flags().StringP("strategy", "s", strategyInline, "execution strategy: inline or file")
	cmd.Flags().DurationP("timeout", "t", 0, "limit for each block, 0 for none")
	cmd.Flags().StringP("format", "f", report.FormatTable, "report format: table, json or yaml")

	return cmd
}

func newStrategy(cfg *config.Config, d *runner.Dispatcher, filename string) (runner.Strategy, error) {
	switch cfg.Strategy {
	case strategyInline:
		return d.Inline(), nil
	case strategyFile:
		ws, err := workspace.NewDir(cfg.Dir, inputs(filename)...)
		if err != nil {
			return nil, err
		}

		return d.File(ws), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStrategy, cfg.Strategy)
	}
}
