package cmd

import (
	_ "embed"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

//go:embed help/list.md
var listHelp string

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] [filename]",
		Aliases: []string{"ls"},
		Short:   "List code blocks and the interpreter each would run with",
		Long:    listHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := load(cmd, source(args), opts)
			if err != nil {
				return err
			}

			reg, err := opts.cfg.Registry()
			if err != nil {
				return err
			}

			tbl := table.New("Block", "Line", "Tag", "Language", "Command").WithWriter(cmd.OutOrStdout())

			for index, block := range blocks {
				name, _, _ := block.Info()
				effective, binding, ok := reg.Resolve(name)

				command := "-"
				if ok {
					command = strings.Join(binding.Inline, " ")
				}

				tbl.AddRow(index, block.Line(), block.Lang, effective, command)
			}

			tbl.Print()

			return nil
		},

		DisableAutoGenTag: true,
	}

	return cmd
}

