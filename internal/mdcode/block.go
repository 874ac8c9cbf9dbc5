package mdcode

import "strings"

// Block is a fenced code block found in a Markdown document.
//
// StartLine and EndLine are 0-based indexes of the opening and closing fence
// lines in the original document.
type Block struct {
	Lang      string
	Code      []byte
	StartLine int
	EndLine   int

	closer string
}

type Blocks []*Block

// Line returns the 1-based line number of the opening fence.
func (b *Block) Line() int {
	return b.StartLine + 1
}

// Info splits the language tag into the binding name and the metadata that
// follows it. The name is the first word of the tag, lower-cased.
func (b *Block) Info() (string, Meta, error) {
	fields := strings.Fields(b.Lang)
	if len(fields) == 0 {
		return "", Meta{}, nil
	}

	name := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(b.Lang), fields[0]))

	meta, err := parseMeta([]byte(rest))
	if err != nil {
		return name, Meta{}, err
	}

	return name, meta, nil
}

// Fenced renders the block between its opening fence and its original
// closing line.
func (b *Block) Fenced() string {
	var sb strings.Builder

	sb.WriteString(fence)
	sb.WriteString(b.Lang)
	sb.WriteByte('\n')

	if b.EndLine-b.StartLine > 1 {
		sb.Write(b.Code)
		sb.WriteByte('\n')
	}

	closer := b.closer
	if len(closer) == 0 {
		closer = fence
	}

	sb.WriteString(closer)

	return sb.String()
}
