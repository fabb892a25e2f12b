// Package ingest receives problems from Competitive Companion and streams run events.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"acrunner/internal/config"
	"acrunner/internal/judge/event"
	"acrunner/internal/problem/model"
	"acrunner/internal/problem/state"
	"acrunner/internal/testcase"
	appErr "acrunner/pkg/errors"
	"acrunner/pkg/utils/logger"

	"go.uber.org/zap"
)

// SettingsProvider exposes the live settings.
type SettingsProvider interface {
	Get() config.Settings
}

// RunGuard serializes case-file writes against runs.
type RunGuard interface {
	Exclusive(fn func() error) error
}

// Service stores an incoming problem and makes it the current one.
type Service struct {
	holder   *state.Holder
	settings SettingsProvider
	observer event.Observer
	guard    RunGuard
}

// NewService creates an ingestion service. guard may be nil.
func NewService(holder *state.Holder, settings SettingsProvider, observer event.Observer, guard RunGuard) *Service {
	return &Service{
		holder:   holder,
		settings: settings,
		observer: observer,
		guard:    guard,
	}
}

// Ingest appends the payload samples to the task's case directory, provisions
// the solution file, and replaces the current problem.
func (s *Service) Ingest(ctx context.Context, payload CompanionPayload) (model.ProblemRecord, error) {
	if err := payload.Validate(); err != nil {
		return model.ProblemRecord{}, err
	}

	settings := s.settings.Get()
	workspaceRoot, err := settings.ResolveWorkspaceRoot()
	if err != nil {
		return model.ProblemRecord{}, err
	}

	contestID, taskID := DeriveIDs(payload)
	problem := model.ProblemRecord{
		Name:        payload.Name,
		Group:       payload.Group,
		URL:         payload.URL,
		Interactive: payload.Interactive,
		TimeLimit:   payload.TimeLimit,
		MemoryLimit: payload.MemoryLimit,
		ContestID:   contestID,
		TaskID:      taskID,
		TestsDir:    settings.TestCaseSaveDirName,
	}

	var indices []int
	err = s.exclusive(func() error {
		casesDir := problem.CasesDir(workspaceRoot)
		var saveErr error
		indices, saveErr = testcase.SaveCases(casesDir, payload.Samples())
		if saveErr != nil {
			return saveErr
		}
		if err := provisionSolution(problem, settings, workspaceRoot); err != nil {
			return err
		}
		problem.Cases = testcase.CollectCases(casesDir)
		s.holder.Set(problem)
		return nil
	})
	if appErr.Is(err, appErr.RunInProgress) {
		return model.ProblemRecord{}, appErr.New(appErr.RunInProgress).
			WithMessage("cannot store new cases while a run is in progress")
	}
	if err != nil {
		return model.ProblemRecord{}, err
	}

	logger.Info(ctx, "problem ingested",
		zap.String("name", problem.Name),
		zap.String("contest", contestID),
		zap.String("task", taskID),
		zap.Ints("new_cases", indices),
		zap.Bool("interactive", problem.Interactive),
	)
	if s.observer != nil {
		s.observer.Publish(event.NewNotice(event.LevelInfo,
			fmt.Sprintf("Loaded %s (%d new cases, %d total)", problem.Name, len(indices), len(problem.Cases))))
	}
	return problem, nil
}

func (s *Service) exclusive(fn func() error) error {
	if s.guard == nil {
		return fn()
	}
	return s.guard.Exclusive(fn)
}

// provisionSolution creates the solution file from the template when it does
// not exist yet. A missing template yields an empty file.
func provisionSolution(problem model.ProblemRecord, settings config.Settings, workspaceRoot string) error {
	taskDir := problem.TaskDir(workspaceRoot)
	solutionPath := filepath.Join(taskDir, settings.SolutionFileName)
	if _, err := os.Stat(solutionPath); err == nil {
		return nil
	}

	var content []byte
	if templatePath := config.ResolvePath(workspaceRoot, settings.TemplateFilePath); templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err == nil {
			content = data
		} else if !os.IsNotExist(err) {
			return appErr.Wrapf(err, appErr.ProblemIngestFailed, "read template %s", templatePath)
		}
	}

	if err := os.MkdirAll(taskDir, 0o755); err != nil {
		return appErr.Wrapf(err, appErr.ProblemIngestFailed, "create task dir %s", taskDir)
	}
	if err := os.WriteFile(solutionPath, content, 0o644); err != nil {
		return appErr.Wrapf(err, appErr.ProblemIngestFailed, "write solution %s", solutionPath)
	}
	return nil
}
