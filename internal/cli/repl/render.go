package repl

import (
	"fmt"
	"io"
	"strings"

	"acrunner/internal/judge/event"
	"acrunner/internal/judge/result"
)

const previewLimit = 400

// RenderEvent writes one event in human-readable form.
func RenderEvent(w io.Writer, ev event.Event) {
	switch ev.Kind {
	case event.KindProgress:
		if ev.Progress != nil && ev.Progress.Running && ev.Progress.CurrentIndex != nil {
			fmt.Fprintf(w, "running case %d...\n", *ev.Progress.CurrentIndex)
		}
	case event.KindResult:
		if ev.Result != nil {
			renderResult(w, *ev.Result)
		}
	case event.KindComplete:
		if ev.Summary != nil {
			renderSummary(w, *ev.Summary)
		}
	case event.KindNotice:
		if ev.Notice != nil {
			fmt.Fprintf(w, "[%s] %s\n", ev.Notice.Level, ev.Notice.Message)
		}
	}
}

func renderResult(w io.Writer, res result.RunResult) {
	fmt.Fprintf(w, "[%s] case %d  %d ms\n", res.Status.Short(), res.Index, res.DurationMs)
	switch res.Status {
	case result.StatusFail:
		writeBlock(w, "output", res.Actual)
	case result.StatusRuntimeError:
		fmt.Fprintf(w, "  exit code %d\n", res.ExitCode)
	}
	if res.Console != "" {
		writeBlock(w, "stderr", res.Console)
	}
}

func renderSummary(w io.Writer, s result.RunSummary) {
	verdict := "FAILED"
	if s.AllPassed() {
		verdict = "ALL PASSED"
	}
	fmt.Fprintf(w, "%s  %d/%d passed  WA %d  TLE %d  RE %d  %d ms\n",
		verdict, s.Passed, s.Total, s.Failed, s.Timeouts, s.RuntimeErrors, s.DurationMs)
}

func writeBlock(w io.Writer, label, text string) {
	text = strings.TrimRight(text, "\n")
	if len(text) > previewLimit {
		text = text[:previewLimit] + "..."
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}
