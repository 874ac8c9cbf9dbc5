package cmd

import (
	"github.com/ezerfernandes/mdexec/internal/mdcode"
	"github.com/gobwas/glob"
)

type filterFunc func(name string) bool

// filter matches a block's language name against glob patterns. No patterns
// selects every block, including untagged ones.
func filter(patterns []string) (filterFunc, error) {
	if len(patterns) == 0 {
		return func(string) bool { return true }, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}

		globs = append(globs, g)
	}

	return func(name string) bool {
		for _, g := range globs {
			if g.Match(name) {
				return true
			}
		}

		return false
	}, nil
}

func selectBlocks(blocks mdcode.Blocks, match filterFunc) mdcode.Blocks {
	selected := make(mdcode.Blocks, 0, len(blocks))

	for _, block := range blocks {
		name, _, _ := block.Info()
		if match(name) {
			selected = append(selected, block)
		}
	}

	return selected
}
