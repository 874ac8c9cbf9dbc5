package cmd

import (
	"io"
	"os"

	"github.com/ezerfernandes/mdexec/internal/mdcode"
	"github.com/spf13/cobra"
)

const stdinName = "-"

func source(args []string) string {
	if len(args) == 0 {
		return stdinName
	}

	return args[0]
}

// inputs lists the document paths a workspace must never contain.
func inputs(filename string) []string {
	if filename == stdinName {
		return nil
	}

	return []string{filename}
}

func readSource(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == stdinName {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(filename)
}

// load reads and parses a document and applies the language filter. A
// malformed document is an error and yields no blocks.
func load(cmd *cobra.Command, filename string, opts *options) (mdcode.Blocks, error) {
	src, err := readSource(cmd, filename)
	if err != nil {
		return nil, err
	}

	blocks, err := mdcode.Unfence(src)
	if err != nil {
		return nil, err
	}

	return selectBlocks(blocks, opts.filter), nil
}
