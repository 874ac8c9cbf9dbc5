package mdcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrosscheckAgrees(t *testing.T) {
	t.Parallel()

	divs, err := Crosscheck([]byte(document))
	require.NoError(t, err)
	assert.Empty(t, divs)
}

func TestCrosscheckPrematureClose(t *testing.T) {
	t.Parallel()

	src := "```md\n" +
		"see ``` here\n" +
		"```\n" +
		"```\n"

	divs, err := Crosscheck([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []Divergence{
		{Line: 1, Reason: "line parser closes this block at line 2, CommonMark at line 3"},
		{Line: 3, Reason: reasonLineOnly},
	}, divs)
}

func TestCrosscheckIndentedFence(t *testing.T) {
	t.Parallel()

	src := "- item\n\n  ```sh\n  echo hi\n  ```\n"

	divs, err := Crosscheck([]byte(src))
	require.NoError(t, err)
	require.Len(t, divs, 1)

	assert.Equal(t, 3, divs[0].Line)
	assert.Equal(t, reasonCommonMarkOnly, divs[0].Reason)
}

func TestCrosscheckUnterminated(t *testing.T) {
	t.Parallel()

	divs, err := Crosscheck([]byte("```sh\necho\n"))
	require.ErrorIs(t, err, ErrUnterminated)
	assert.Empty(t, divs)
}

func TestCrosscheckBacktickBodyUnterminated(t *testing.T) {
	t.Parallel()

	src := "```md\n" +
		"see ``` here\n" +
		"more\n" +
		"```\n"

	divs, err := Crosscheck([]byte(src))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.ErrorIs(t, err, ErrUnterminated)
	assert.Equal(t, 4, perr.Line)

	assert.Equal(t, []Divergence{
		{Line: 1, Reason: "line parser closes this block at line 2, CommonMark at line 4"},
		{Line: 4, Reason: reasonLineOnly},
	}, divs)
}
