package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ezerfernandes/mdexec/internal/runner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() *runner.Report {
	return &runner.Report{
		ID:       uuid.MustParse("6f1c1a36-54d5-4c1c-9a7b-0d2c1f0b7e11"),
		Document: "README.md",
		Strategy: "inline",
		Results: []*runner.Result{
			{Index: 0, Lang: "python", Line: 3, Outcome: runner.Success{Stdout: "hello\n"}},
			{Index: 1, Lang: "javascript", Line: 9, Outcome: runner.Failure{ExitCode: 1, Stderr: "ReferenceError: x\n    at line 1\n"}},
			{Index: 2, Lang: "rust", Line: 14, Outcome: runner.Skipped{Reason: "unsupported language rust"}},
			{Index: 3, Lang: "ruby", Line: 20, Outcome: runner.LaunchFailure{Program: "ruby", Err: errors.New("not found")}},
		},
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	doc := Convert(sample())

	assert.Equal(t, "6f1c1a36-54d5-4c1c-9a7b-0d2c1f0b7e11", doc.ID)
	assert.False(t, doc.Passed)
	assert.Equal(t, Summary{Succeeded: 1, Failed: 1, Skipped: 1, LaunchErrors: 1}, doc.Summary)
	require.Len(t, doc.Blocks, 4)

	assert.Equal(t, Block{Index: 0, Lang: "python", Line: 3, Outcome: "success", Stdout: "hello\n"}, doc.Blocks[0])
	assert.Equal(t, 1, doc.Blocks[1].ExitCode)
	assert.Equal(t, "skipped", doc.Blocks[2].Outcome)
	assert.Equal(t, "launch-error", doc.Blocks[3].Outcome)
	assert.Equal(t, "could not launch ruby: not found", doc.Blocks[3].Message)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sample(), FormatJSON))

	var doc Document

	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, Convert(sample()), doc)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sample(), FormatYAML))
	assert.Contains(t, buf.String(), "strategy: inline")

	var doc Document

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, Convert(sample()), doc)
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sample(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Outcome")
	assert.Contains(t, out, "launch-error")
	assert.Contains(t, out, "ReferenceError: x ...")
	assert.Contains(t, out, "1 succeeded, 1 failed, 1 skipped, 1 launch errors, 0 timed out")
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, sample(), "xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDetail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "one", detail("one\n"))
	assert.Equal(t, "one ...", detail("one\ntwo"))
	assert.Equal(t, string(bytes.Repeat([]byte("a"), detailWidth))+"...", detail(string(bytes.Repeat([]byte("a"), detailWidth+5))))
}
