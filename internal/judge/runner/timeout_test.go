package runner

import (
	"path/filepath"
	"testing"
	"time"

	"acrunner/internal/config"
	"acrunner/internal/problem/model"
	"acrunner/internal/testutil"
	appErr "acrunner/pkg/errors"
)

func TestEffectiveTimeoutMs(t *testing.T) {
	override := func(v int64) *int64 { return &v }
	tests := []struct {
		name      string
		timeLimit int64
		override  *int64
		want      int64
	}{
		{name: "derived_2000", timeLimit: 2000, want: 2400},
		{name: "derived_1000", timeLimit: 1000, want: 1200},
		{name: "derived_rounds_up", timeLimit: 1001, want: 1202},
		{name: "derived_small", timeLimit: 1, want: 2},
		{name: "derived_zero_floor", timeLimit: 0, want: 1},
		{name: "override", timeLimit: 2000, override: override(500), want: 500},
		{name: "override_floor", timeLimit: 2000, override: override(0), want: 1},
		{name: "override_negative", timeLimit: 2000, override: override(-20), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, EffectiveTimeoutMs(tt.timeLimit, tt.override), tt.want)
		})
	}

	got := EffectiveTimeout(model.ProblemRecord{TimeLimit: 2000}, config.Default())
	testutil.AssertEqual(t, got, 2400*time.Millisecond)
}

func TestBuildCommand(t *testing.T) {
	argv, err := BuildCommand(`pypy3 -X "utf8 mode"`, "/ws/abc/a/main.py")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(argv), 4)
	testutil.AssertEqual(t, argv[0], "pypy3")
	testutil.AssertEqual(t, argv[2], "utf8 mode")
	testutil.AssertEqual(t, argv[3], "/ws/abc/a/main.py")

	_, err = BuildCommand("   ", "main.py")
	testutil.AssertTrue(t, appErr.Is(err, appErr.InvalidCommand), "blank command should be rejected")
}

func TestPathResolution(t *testing.T) {
	problem := model.ProblemRecord{ContestID: "abc300", TaskID: "a"}
	settings := config.Default()
	ws := filepath.FromSlash("/ws")

	testutil.AssertEqual(t, SolutionPath(problem, settings, ws), filepath.Join(ws, "abc300", "a", "main.py"))
	testutil.AssertEqual(t, WorkDir(problem, settings, ws), ws)

	settings.RunCwdMode = config.RunCwdTask
	testutil.AssertEqual(t, WorkDir(problem, settings, ws), filepath.Join(ws, "abc300", "a"))
}

func TestFilterConsole(t *testing.T) {
	raw := "Warning: cannot find your CPU L2 & L3 cache size\r\nTraceback (most recent call last):\r\n  boom\r\n"
	testutil.AssertEqual(t, FilterConsole(raw), "Traceback (most recent call last):\n  boom")
	testutil.AssertEqual(t, FilterConsole("Warning: cannot find your CPU L2 & L3 cache size\n"), "")
	testutil.AssertEqual(t, FilterConsole(""), "")
}
