package result

import (
	"testing"

	"acrunner/internal/testutil"
)

func TestClassifyPrecedence(t *testing.T) {
	never := func() bool {
		t.Fatalf("comparison must not run")
		return false
	}
	testutil.AssertEqual(t, Classify(true, 0, never), StatusTimeout)
	testutil.AssertEqual(t, Classify(true, -1, never), StatusTimeout)
	testutil.AssertEqual(t, Classify(false, 1, never), StatusRuntimeError)
	testutil.AssertEqual(t, Classify(false, 0, func() bool { return true }), StatusPass)
	testutil.AssertEqual(t, Classify(false, 0, func() bool { return false }), StatusFail)
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]RunResult{
		{Index: 1, Status: StatusPass, DurationMs: 10},
		{Index: 2, Status: StatusFail, DurationMs: 20},
		{Index: 3, Status: StatusTimeout, DurationMs: 30},
		{Index: 4, Status: StatusRuntimeError, DurationMs: 5},
		{Index: 5, Status: StatusPass, DurationMs: 5},
	})
	testutil.AssertEqual(t, summary, RunSummary{
		Total:         5,
		Passed:        2,
		Failed:        1,
		Timeouts:      1,
		RuntimeErrors: 1,
		DurationMs:    70,
	})
	testutil.AssertFalse(t, summary.AllPassed(), "mixed batch is not all passed")
	testutil.AssertFalse(t, Summarize(nil).AllPassed(), "empty batch is not all passed")
}

func TestStatusShort(t *testing.T) {
	testutil.AssertEqual(t, StatusPass.Short(), "AC")
	testutil.AssertEqual(t, StatusRuntimeError.Short(), "RE")
}
