package runner

import (
	"github.com/google/uuid"
)

// Result is the outcome of one block. Line is the 1-based line of the
// opening fence; File is set by the file strategy.
type Result struct {
	Index   int
	Lang    string
	Line    int
	File    string
	Outcome Outcome
}

// Report collects the results of one run in document order.
type Report struct {
	ID       uuid.UUID
	Document string
	Strategy string
	Results  []*Result
}

// Summary counts results per outcome kind.
type Summary struct {
	Succeeded    int
	Failed       int
	Skipped      int
	LaunchErrors int
	TimedOut     int
}

func (r *Report) Summary() Summary {
	var sum Summary

	for _, res := range r.Results {
		switch res.Outcome.Kind() {
		case KindSuccess:
			sum.Succeeded++
		case KindFailure:
			sum.Failed++
		case KindSkipped:
			sum.Skipped++
		case KindLaunchError:
			sum.LaunchErrors++
		case KindTimeout:
			sum.TimedOut++
		}
	}

	return sum
}

// Failed reports whether any block failed, could not be launched, or timed out.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if Failed(res.Outcome) {
			return true
		}
	}

	return false
}

// Failures returns the number of results that count against the run.
func (s Summary) Failures() int {
	return s.Failed + s.LaunchErrors + s.TimedOut
}
