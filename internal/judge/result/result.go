// Package result defines per-case verdicts and batch summaries.
package result

// Status is the verdict of one case execution.
type Status string

const (
	StatusPass         Status = "pass"
	StatusFail         Status = "fail"
	StatusTimeout      Status = "timeout"
	StatusRuntimeError Status = "runtime-error"
)

// Short returns the judge-style abbreviation used in terminal output.
func (s Status) Short() string {
	switch s {
	case StatusPass:
		return "AC"
	case StatusFail:
		return "WA"
	case StatusTimeout:
		return "TLE"
	case StatusRuntimeError:
		return "RE"
	}
	return "??"
}

// RunResult is the verdict for one case.
type RunResult struct {
	Index      int    `json:"index"`
	Status     Status `json:"status"`
	DurationMs int64  `json:"durationMs"`
	ExitCode   int    `json:"exitCode"`
	// Actual is the newline-normalized stdout.
	Actual string `json:"actual"`
	// Console is stderr with interpreter noise removed.
	Console string `json:"console"`
}

// RunSummary aggregates a batch of results.
type RunSummary struct {
	Total         int   `json:"total"`
	Passed        int   `json:"passed"`
	Failed        int   `json:"failed"`
	Timeouts      int   `json:"timeouts"`
	RuntimeErrors int   `json:"runtimeErrors"`
	DurationMs    int64 `json:"durationMs"`
}

// AllPassed reports whether every case in a non-empty batch passed.
func (s RunSummary) AllPassed() bool {
	return s.Total > 0 && s.Passed == s.Total
}

// Classify maps the raw outcome of one execution to a status.
// A recorded timeout wins over any exit code.
func Classify(timedOut bool, exitCode int, matched func() bool) Status {
	switch {
	case timedOut:
		return StatusTimeout
	case exitCode != 0:
		return StatusRuntimeError
	case matched():
		return StatusPass
	default:
		return StatusFail
	}
}

// Summarize folds results into a summary. DurationMs is the sum of case durations.
func Summarize(results []RunResult) RunSummary {
	summary := RunSummary{Total: len(results)}
	for _, res := range results {
		summary.DurationMs += res.DurationMs
		switch res.Status {
		case StatusPass:
			summary.Passed++
		case StatusFail:
			summary.Failed++
		case StatusTimeout:
			summary.Timeouts++
		case StatusRuntimeError:
			summary.RuntimeErrors++
		}
	}
	return summary
}
