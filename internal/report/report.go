// Package report renders run reports as a table, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ezerfernandes/mdexec/internal/runner"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned by [Write] for formats other than table, json
// and yaml.
var ErrUnknownFormat = errors.New("unknown report format")

const detailWidth = 60

// Block is the serialized form of one result.
type Block struct {
	Index    int    `json:"index" yaml:"index"`
	Lang     string `json:"lang" yaml:"lang"`
	Line     int    `json:"line" yaml:"line"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Outcome  string `json:"outcome" yaml:"outcome"`
	ExitCode int    `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`
	Stdout   string `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Document is the serialized form of a report.
type Document struct {
	ID       string  `json:"id" yaml:"id"`
	Document string  `json:"document" yaml:"document"`
	Strategy string  `json:"strategy" yaml:"strategy"`
	Passed   bool    `json:"passed" yaml:"passed"`
	Summary  Summary `json:"summary" yaml:"summary"`
	Blocks   []Block `json:"blocks" yaml:"blocks"`
}

type Summary struct {
	Succeeded    int `json:"succeeded" yaml:"succeeded"`
	Failed       int `json:"failed" yaml:"failed"`
	Skipped      int `json:"skipped" yaml:"skipped"`
	LaunchErrors int `json:"launch_errors" yaml:"launch_errors"`
	TimedOut     int `json:"timed_out" yaml:"timed_out"`
}

// Convert flattens a report into its serialized form.
func Convert(rep *runner.Report) Document {
	sum := rep.Summary()

	doc := Document{
		ID:       rep.ID.String(),
		Document: rep.Document,
		Strategy: rep.Strategy,
		Passed:   !rep.Failed(),
		Summary:  Summary(sum),
		Blocks:   make([]Block, 0, len(rep.Results)),
	}

	for _, res := range rep.Results {
		doc.Blocks = append(doc.Blocks, convertResult(res))
	}

	return doc
}

func convertResult(res *runner.Result) Block {
	block := Block{
		Index:   res.Index,
		Lang:    res.Lang,
		Line:    res.Line,
		File:    res.File,
		Outcome: string(res.Outcome.Kind()),
	}

	switch o := res.Outcome.(type) {
	case runner.Success:
		block.Stdout = o.Stdout
	case runner.Failure:
		block.ExitCode = o.ExitCode
		block.Stderr = o.Stderr
	default:
		block.Message = runner.Detail(o)
	}

	return block
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep *runner.Report, format string) error {
	switch format {
	case FormatTable, "":
		writeTable(w, rep)

		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(Convert(rep))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(Convert(rep)); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func writeTable(w io.Writer, rep *runner.Report) {
	tbl := table.New("Block", "Line", "Lang", "Outcome", "Detail").WithWriter(w)

	for _, res := range rep.Results {
		tbl.AddRow(res.Index, res.Line, res.Lang, res.Outcome.Kind(), detail(runner.Detail(res.Outcome)))
	}

	tbl.Print()

	sum := rep.Summary()

	fmt.Fprintf(w, "\n%d succeeded, %d failed, %d skipped, %d launch errors, %d timed out\n",
		sum.Succeeded, sum.Failed, sum.Skipped, sum.LaunchErrors, sum.TimedOut)
}

// detail shortens captured output to its first line.
func detail(text string) string {
	text = strings.TrimSpace(text)

	line, _, more := strings.Cut(text, "\n")
	if len(line) > detailWidth {
		return line[:detailWidth] + "..."
	}

	if more {
		return line + " ..."
	}

	return line
}
