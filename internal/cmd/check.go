package cmd

import (
	_ "embed"
	"fmt"

	"github.com/ezerfernandes/mdexec/internal/mdcode"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

//go:embed help/check.md
var checkHelp string

func checkCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "check [flags] [filename]",
		Short: "Report fences the line parser reads differently from CommonMark",
		Long:  checkHelp,
		Args:  checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, source(args))
			if err != nil {
				return err
			}

			divs, err := mdcode.Crosscheck(src)
			if err != nil && len(divs) == 0 {
				return err
			}

			if len(divs) == 0 {
				opts.status("no divergences\n")

				return nil
			}

			tbl := table.New("Line", "Divergence").WithWriter(cmd.OutOrStdout())

			for _, div := range divs {
				tbl.AddRow(div.Line, div.Reason)
			}

			tbl.Print()

			if err != nil {
				return err
			}

			return fmt.Errorf("%d divergence(s) found", len(divs))
		},

		DisableAutoGenTag: true,
	}

	return cmd
}
