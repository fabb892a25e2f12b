// Package service sequences case executions and reports them as events.
package service

import (
	"context"
	"sync/atomic"

	"acrunner/internal/config"
	"acrunner/internal/judge/event"
	"acrunner/internal/judge/result"
	"acrunner/internal/judge/runner"
	"acrunner/internal/problem/model"
	"acrunner/internal/problem/state"
	"acrunner/internal/testcase"
	appErr "acrunner/pkg/errors"
	"acrunner/pkg/utils/contextkey"
	"acrunner/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsProvider exposes the live settings.
type SettingsProvider interface {
	Get() config.Settings
}

// RunService runs one or all cases of the current problem. At most one run
// is active at a time; a concurrent request is rejected, not queued.
type RunService struct {
	runner   runner.Runner
	holder   *state.Holder
	settings SettingsProvider
	observer event.Observer
	running  atomic.Bool
}

// NewRunService creates a run service.
func NewRunService(r runner.Runner, holder *state.Holder, settings SettingsProvider, observer event.Observer) *RunService {
	return &RunService{
		runner:   r,
		holder:   holder,
		settings: settings,
		observer: observer,
	}
}

// Exclusive runs fn while holding the run guard, so no run can start until
// fn returns. It fails with RunInProgress when a run is active.
func (s *RunService) Exclusive(fn func() error) error {
	if !s.running.CompareAndSwap(false, true) {
		return appErr.New(appErr.RunInProgress)
	}
	defer s.running.Store(false)
	return fn()
}

// RunAll executes every stored case in ascending index order.
func (s *RunService) RunAll(ctx context.Context) (result.RunSummary, error) {
	return s.run(ctx, event.ScopeAll, 0)
}

// RunOne executes the case with the given index.
func (s *RunService) RunOne(ctx context.Context, index int) (result.RunSummary, error) {
	return s.run(ctx, event.ScopeOne, index)
}

type runPlan struct {
	problem       model.ProblemRecord
	settings      config.Settings
	workspaceRoot string
	cases         []model.TestCaseFile
}

func (s *RunService) run(ctx context.Context, scope event.Scope, index int) (result.RunSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		err := appErr.New(appErr.RunInProgress)
		s.notify(event.LevelWarning, err.Error())
		return result.RunSummary{}, err
	}
	defer s.running.Store(false)

	ctx = context.WithValue(ctx, contextkey.RunID, uuid.NewString())

	plan, err := s.prepare(scope, index)
	if err != nil {
		logger.Warn(ctx, "run rejected", zap.String("scope", string(scope)), zap.Error(err))
		s.notify(noticeLevel(err), err.Error())
		return result.RunSummary{}, err
	}
	defer s.publish(event.NewProgress(scope, false, 0))

	logger.Info(ctx, "run started",
		zap.String("scope", string(scope)),
		zap.String("contest", plan.problem.ContestID),
		zap.String("task", plan.problem.TaskID),
		zap.Int("cases", len(plan.cases)),
	)

	results := make([]result.RunResult, 0, len(plan.cases))
	for _, tc := range plan.cases {
		s.publish(event.NewProgress(scope, true, tc.Index))

		res, runErr := s.runner.Run(ctx, runner.Request{
			Problem:       plan.problem,
			Settings:      plan.settings,
			WorkspaceRoot: plan.workspaceRoot,
			Case:          tc,
		})
		if runErr != nil {
			summary := result.Summarize(results)
			s.publish(event.NewComplete(scope, summary))
			logger.Error(ctx, "run aborted", zap.Int("index", tc.Index), zap.Error(runErr))
			s.notify(noticeLevel(runErr), runErr.Error())
			return summary, runErr
		}

		results = append(results, res)
		s.publish(event.NewResult(scope, res))
	}

	summary := result.Summarize(results)
	s.publish(event.NewComplete(scope, summary))
	logger.Info(ctx, "run finished",
		zap.Int("total", summary.Total),
		zap.Int("passed", summary.Passed),
		zap.Int64("duration_ms", summary.DurationMs),
	)
	return summary, nil
}

// prepare checks preconditions and refreshes the case list from disk so
// manually added files take part in the run.
func (s *RunService) prepare(scope event.Scope, index int) (runPlan, error) {
	problem, ok := s.holder.Get()
	if !ok {
		return runPlan{}, appErr.New(appErr.ProblemNotLoaded)
	}
	if problem.Interactive {
		return runPlan{}, appErr.Newf(appErr.InteractiveNotSupported, "interactive problem %q cannot be run", problem.Name)
	}

	settings := s.settings.Get()
	workspaceRoot, err := settings.ResolveWorkspaceRoot()
	if err != nil {
		return runPlan{}, err
	}

	cases := testcase.CollectCases(problem.CasesDir(workspaceRoot))
	problem.Cases = cases
	s.holder.Update(func(current *model.ProblemRecord) {
		if current.SameTask(problem) {
			current.Cases = append([]model.TestCaseFile(nil), cases...)
		}
	})
	if len(cases) == 0 {
		return runPlan{}, appErr.Newf(appErr.TestCaseEmpty, "no test cases in %s", problem.CasesDir(workspaceRoot))
	}

	if scope == event.ScopeOne {
		tc, found := problem.FindCase(index)
		if !found {
			return runPlan{}, appErr.Newf(appErr.TestCaseNotFound, "test case %d not found", index).
				WithDetail("index", index)
		}
		cases = []model.TestCaseFile{tc}
	}

	return runPlan{
		problem:       problem,
		settings:      settings,
		workspaceRoot: workspaceRoot,
		cases:         cases,
	}, nil
}

func (s *RunService) publish(ev event.Event) {
	if s.observer != nil {
		s.observer.Publish(ev)
	}
}

// noticeLevel reports precondition failures as warnings and everything else
// as errors.
func noticeLevel(err error) event.Level {
	if appErr.GetCode(err).IsPrecondition() {
		return event.LevelWarning
	}
	return event.LevelError
}

func (s *RunService) notify(level event.Level, message string) {
	s.publish(event.NewNotice(level, message))
}
