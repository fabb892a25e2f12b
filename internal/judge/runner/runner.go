// Package runner executes a solution against one stored case and classifies the outcome.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"acrunner/internal/config"
	"acrunner/internal/judge/result"
	"acrunner/internal/problem/model"
	"acrunner/internal/testcase"
	appErr "acrunner/pkg/errors"
	"acrunner/pkg/utils/logger"

	"github.com/google/shlex"
	"go.uber.org/zap"
)

const (
	// pypyCacheWarning is printed by PyPy on some CPUs before the program starts.
	pypyCacheWarning = "Warning: cannot find your CPU L2 & L3 cache size"

	defaultWaitDelay = 2 * time.Second
)

// Request describes one case execution.
type Request struct {
	Problem       model.ProblemRecord
	Settings      config.Settings
	WorkspaceRoot string
	Case          model.TestCaseFile
}

// Runner executes one case.
type Runner interface {
	Run(ctx context.Context, req Request) (result.RunResult, error)
}

// ProcessRunner runs the solution as a local subprocess.
type ProcessRunner struct {
	waitDelay time.Duration
}

// NewProcessRunner creates a runner with default pipe drain settings.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{waitDelay: defaultWaitDelay}
}

// Run spawns the solution, feeds the case input and returns the verdict.
// Only infrastructure failures are returned as errors; timeouts, non-zero
// exits and wrong answers are statuses.
func (r *ProcessRunner) Run(ctx context.Context, req Request) (result.RunResult, error) {
	solutionPath := SolutionPath(req.Problem, req.Settings, req.WorkspaceRoot)
	if info, err := os.Stat(solutionPath); err != nil || info.IsDir() {
		return result.RunResult{}, appErr.Newf(appErr.SolutionNotFound, "solution file not found at %s", solutionPath).
			WithDetail("path", solutionPath)
	}

	input, err := testcase.ReadInput(req.Case)
	if err != nil {
		return result.RunResult{}, err
	}
	expected, err := testcase.ReadExpected(req.Case)
	if err != nil {
		return result.RunResult{}, err
	}

	argv, err := BuildCommand(req.Settings.Command(), solutionPath)
	if err != nil {
		return result.RunResult{}, err
	}
	workDir := WorkDir(req.Problem, req.Settings, req.WorkspaceRoot)
	timeout := EffectiveTimeout(req.Problem, req.Settings)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = workDir
	cmd.Env = os.Environ()
	cmd.Stdin = strings.NewReader(input)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.waitDelay
	configureProcess(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return result.RunResult{}, appErr.Wrapf(err, appErr.SpawnFailed, "start %s", argv[0]).
			WithDetail("command", argv)
	}

	var timedOut atomic.Bool
	exited := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-timer.C:
			timedOut.Store(true)
			killProcess(cmd)
		case <-ctx.Done():
			killProcess(cmd)
		case <-exited:
		}
	}()

	waitErr := cmd.Wait()
	close(exited)
	<-watcherDone
	elapsed := time.Since(start)

	if !timedOut.Load() && ctx.Err() != nil {
		return result.RunResult{}, appErr.Wrapf(ctx.Err(), appErr.ExecutionFailed, "case %d interrupted", req.Case.Index)
	}
	if waitErr != nil && !isExitOrDrainError(waitErr) {
		return result.RunResult{}, appErr.Wrapf(waitErr, appErr.ExecutionFailed, "wait for case %d", req.Case.Index)
	}

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	actual := testcase.NormalizeLineEndings(stdout.String())
	policy := req.Settings.ComparePolicy()
	status := result.Classify(timedOut.Load(), exitCode, func() bool {
		return policy.Equal(testcase.NormalizeLineEndings(expected), actual)
	})

	logger.Debug(ctx, "case finished",
		zap.Int("index", req.Case.Index),
		zap.String("status", string(status)),
		zap.Int("exit_code", exitCode),
		zap.Duration("elapsed", elapsed),
		zap.Duration("timeout", timeout),
	)

	return result.RunResult{
		Index:      req.Case.Index,
		Status:     status,
		DurationMs: elapsed.Milliseconds(),
		ExitCode:   exitCode,
		Actual:     actual,
		Console:    FilterConsole(stderr.String()),
	}, nil
}

// SolutionPath returns workspaceRoot/contestId/taskId/<solution file>.
func SolutionPath(problem model.ProblemRecord, settings config.Settings, workspaceRoot string) string {
	name := settings.SolutionFileName
	if name == "" {
		name = config.DefaultSolutionFileName
	}
	return filepath.Join(problem.TaskDir(workspaceRoot), name)
}

// WorkDir returns the working directory selected by runCwdMode.
func WorkDir(problem model.ProblemRecord, settings config.Settings, workspaceRoot string) string {
	if settings.RunCwdMode == config.RunCwdTask {
		return problem.TaskDir(workspaceRoot)
	}
	return workspaceRoot
}

// EffectiveTimeout returns the explicit override, or the judge limit plus 20%,
// never less than one millisecond.
func EffectiveTimeout(problem model.ProblemRecord, settings config.Settings) time.Duration {
	return time.Duration(EffectiveTimeoutMs(problem.TimeLimit, settings.TimeoutMs)) * time.Millisecond
}

// EffectiveTimeoutMs computes the timeout in milliseconds.
// ceil(limit * 1.2) is evaluated as ceil(limit * 6 / 5) to stay exact.
func EffectiveTimeoutMs(timeLimitMs int64, overrideMs *int64) int64 {
	if overrideMs != nil {
		return max(1, *overrideMs)
	}
	if timeLimitMs <= 0 {
		return 1
	}
	return max(1, (timeLimitMs*6+4)/5)
}

// BuildCommand splits the interpreter command string and appends the solution path.
func BuildCommand(command, solutionPath string) ([]string, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidCommand, "parse interpreter command %q", command)
	}
	if len(parts) == 0 {
		return nil, appErr.Newf(appErr.InvalidCommand, "interpreter command is empty")
	}
	return append(parts, solutionPath), nil
}

// FilterConsole normalizes stderr, drops interpreter noise lines and trims the rest.
func FilterConsole(stderr string) string {
	lines := strings.Split(testcase.NormalizeLineEndings(stderr), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, pypyCacheWarning) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isExitOrDrainError(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return true
	}
	return errors.Is(err, exec.ErrWaitDelay)
}
