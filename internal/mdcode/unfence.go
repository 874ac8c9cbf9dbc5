package mdcode

import (
	"errors"
	"fmt"
	"strings"
)

const fence = "```"

// ErrUnterminated is wrapped by [ParseError] when an opening fence has no
// closing fence before the end of the document.
var ErrUnterminated = errors.New("unterminated code block")

// ParseError reports a malformed document. Line is the 1-based line of the
// offending opening fence.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Unfence scans a Markdown document line by line and returns its fenced code
// blocks in document order.
//
// A line beginning with three backticks opens a block; the rest of that line
// is the language tag, kept verbatim. The first following line that contains
// three backticks anywhere closes it. A block that is never closed fails the
// whole parse and no blocks are returned.
func Unfence(source []byte) (Blocks, error) {
	blocks, err := scan(splitLines(string(source)))
	if err != nil {
		return nil, err
	}

	return blocks, nil
}

// scan does the work of [Unfence] but keeps the blocks closed before a
// parse error.
func scan(lines []string) (Blocks, error) {
	var blocks Blocks

	for idx := 0; idx < len(lines); idx++ {
		if !strings.HasPrefix(lines[idx], fence) {
			continue
		}

		block := &Block{
			Lang:      strings.TrimPrefix(lines[idx], fence),
			StartLine: idx,
		}

		end := closing(lines, idx+1)
		if end < 0 {
			return blocks, &ParseError{Line: block.Line(), Err: ErrUnterminated}
		}

		block.Code = []byte(strings.Join(lines[idx+1:end], "\n"))
		block.EndLine = end
		block.closer = lines[end]

		blocks = append(blocks, block)

		idx = end
	}

	return blocks, nil
}

func closing(lines []string, from int) int {
	for idx := from; idx < len(lines); idx++ {
		if strings.Contains(lines[idx], fence) {
			return idx
		}
	}

	return -1
}

// splitLines splits on \n, drops a trailing \r from each line and does not
// yield an empty line after a final newline.
func splitLines(text string) []string {
	if len(text) == 0 {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
