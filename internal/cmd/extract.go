package cmd

import (
	_ "embed"
	"fmt"

	"github.com/ezerfernandes/mdexec/internal/runner"
	"github.com/ezerfernandes/mdexec/internal/workspace"
	"github.com/spf13/cobra"
)

//go:embed help/extract.md
var extractHelp string

const dryRunRoot = "mdexec"

func extractCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "extract [flags] [filename]",
		Aliases: []string{"x"},
		Short:   "Write every code block to its own file in the working directory",
		Long:    extractHelp,
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

			var ws workspace.Workspace = workspace.NewMemory(dryRunRoot)

			if !opts.dryRun {
				if ws, err = workspace.NewDir(opts.cfg.Dir, inputs(filename)...); err != nil {
					return err
				}
			}

			names, err := runner.New(reg, runner.WithLogger(opts.log)).File(ws).Materialize(filename, blocks)
			if err != nil {
				return err
			}

			for _, name := range names {
				if opts.dryRun {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), ws.Path(name))
				}
			}

			opts.status("%d block(s) extracted\n", len(names))

			return nil
		},

		DisableAutoGenTag: true,
	}

	dirFlag(cmd)

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "list the files without writing them")

	return cmd
}
