package mdcode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Divergence is a fence on which the line parser and a CommonMark parser
// disagree. Line is the 1-based line of the opening fence.
type Divergence struct {
	Line   int
	Reason string
}

const (
	reasonLineOnly       = "line parser opens a block that CommonMark does not"
	reasonCommonMarkOnly = "CommonMark opens a block that the line parser does not"
	reasonCloses         = "line parser closes this block at line %d, CommonMark at line %d"
)

// unclosed marks a block the line parser never closed.
const unclosed = -1

// Crosscheck compares the blocks found by [Unfence] with the fenced code
// blocks goldmark finds in the same document. A block body containing three
// backticks closes early under [Unfence] and shows up here.
//
// An unterminated document still gets compared: the divergences are returned
// together with the [ParseError].
func Crosscheck(source []byte) ([]Divergence, error) {
	blocks, perr := scan(splitLines(string(source)))
	if perr != nil && !errors.Is(perr, ErrUnterminated) {
		return nil, perr
	}

	ours := make(map[int]int, len(blocks)+1)
	for _, block := range blocks {
		ours[block.StartLine] = block.EndLine
	}

	var parseErr *ParseError
	if errors.As(perr, &parseErr) {
		ours[parseErr.Line-1] = unclosed
	}

	theirs, err := commonMarkFences(source)
	if err != nil {
		return nil, err
	}

	var divs []Divergence

	for line, end := range ours {
		other, ok := theirs[line]

		switch {
		case !ok:
			divs = append(divs, Divergence{Line: line + 1, Reason: reasonLineOnly})
		case end != unclosed && other != unclosed && end != other:
			divs = append(divs, Divergence{Line: line + 1, Reason: fmt.Sprintf(reasonCloses, end+1, other+1)})
		}
	}

	for line := range theirs {
		if _, ok := ours[line]; !ok {
			divs = append(divs, Divergence{Line: line + 1, Reason: reasonCommonMarkOnly})
		}
	}

	sort.Slice(divs, func(i, j int) bool { return divs[i].Line < divs[j].Line })

	return divs, perr
}

// commonMarkFences maps the 0-based opening fence lines goldmark can locate
// to their closing lines, or to unclosed when that is unknown.
func commonMarkFences(source []byte) (map[int]int, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	fences := make(map[int]int)

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb := asFencedCodeBlock(node, entering)
		if fcb == nil {
			return ast.WalkContinue, nil
		}

		if line, ok := openingLine(fcb, source); ok {
			fences[line] = closingLine(fcb, source)
		}

		return ast.WalkContinue, nil
	})

	return fences, err
}

func asFencedCodeBlock(node ast.Node, entering bool) *ast.FencedCodeBlock {
	if entering || node.Kind() != ast.KindFencedCodeBlock {
		return nil
	}

	if fcb, ok := node.(*ast.FencedCodeBlock); ok {
		return fcb
	}

	return nil
}

// openingLine locates the fence from the info string, or from the first body
// line when there is no info string. Empty untagged blocks cannot be located.
func openingLine(fcb *ast.FencedCodeBlock, source []byte) (int, bool) {
	if fcb.Info != nil {
		return lineAt(source, fcb.Info.Segment.Start), true
	}

	lines := fcb.Lines()
	if lines.Len() > 0 {
		return lineAt(source, lines.At(0).Start) - 1, true
	}

	return 0, false
}

// closingLine is the line after the last body line. It is past the end of
// the document when goldmark ran the block to EOF.
func closingLine(fcb *ast.FencedCodeBlock, source []byte) int {
	lines := fcb.Lines()
	if lines.Len() == 0 {
		return unclosed
	}

	return lineAt(source, lines.At(lines.Len()-1).Start) + 1
}

// lineAt returns the 0-based line containing offset.
func lineAt(source []byte, offset int) int {
	line := 0

	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}

	return line
}
