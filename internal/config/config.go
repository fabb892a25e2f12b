// Package config loads and persists acrunner settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"acrunner/internal/judge/compare"
	appErr "acrunner/pkg/errors"
	"acrunner/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort                = 10043
	DefaultTestCaseSaveDirName = "tests"
	DefaultTemplateFilePath    = ".config/templates/main.py"
	DefaultPythonCommand       = "python"
	DefaultPyPyCommand         = "pypy3"
	DefaultSolutionFileName    = "main.py"
	DefaultLogLevel            = "warn"
	DefaultStateFilePath       = ".acrunner/state.json"
)

// Interpreter selects which command string runs the solution.
type Interpreter string

const (
	InterpreterCPython Interpreter = "cpython"
	InterpreterPyPy    Interpreter = "pypy"
)

// ParseInterpreter validates a user-supplied interpreter name.
func ParseInterpreter(value string) (Interpreter, error) {
	switch Interpreter(value) {
	case InterpreterCPython, InterpreterPyPy:
		return Interpreter(value), nil
	}
	return "", appErr.ValidationError("interpreter", fmt.Sprintf("%q is not one of cpython, pypy", value))
}

// RunCwdMode selects the working directory of the solution process.
type RunCwdMode string

const (
	RunCwdWorkspace RunCwdMode = "workspace"
	RunCwdTask      RunCwdMode = "task"
)

// CompareSettings holds the output comparison policy.
type CompareSettings struct {
	Mode          string `yaml:"mode"`
	CaseSensitive *bool  `yaml:"caseSensitive"`
}

// Settings holds all recognized options.
type Settings struct {
	Port                int             `yaml:"port"`
	WorkspaceRoot       string          `yaml:"workspaceRoot"`
	TestCaseSaveDirName string          `yaml:"testCaseSaveDirName"`
	TemplateFilePath    string          `yaml:"templateFilePath"`
	SolutionFileName    string          `yaml:"solutionFileName"`
	Interpreter         Interpreter     `yaml:"interpreter"`
	PythonCommand       string          `yaml:"pythonCommand"`
	PyPyCommand         string          `yaml:"pypyCommand"`
	RunCwdMode          RunCwdMode      `yaml:"runCwdMode"`
	TimeoutMs           *int64          `yaml:"timeoutMs"`
	Compare             CompareSettings `yaml:"compare"`
	StateFilePath       string          `yaml:"stateFilePath"`
	Logger              logger.Config   `yaml:"logger"`
}

// Default returns settings with every default applied.
func Default() Settings {
	s := Settings{}
	applyDefaults(&s)
	return s
}

// Load reads settings from path. A missing file yields defaults.
func Load(path string) (Settings, error) {
	s := Settings{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return s, appErr.Wrapf(err, appErr.ConfigLoadFailed, "read config file failed")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, appErr.Wrapf(err, appErr.ConfigLoadFailed, "parse config file failed")
		}
	}
	applyDefaults(&s)
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes settings to path, creating parent directories.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return appErr.Wrapf(err, appErr.ConfigSaveFailed, "create config dir failed")
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return appErr.Wrapf(err, appErr.ConfigSaveFailed, "marshal config failed")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return appErr.Wrapf(err, appErr.ConfigSaveFailed, "write config file failed")
	}
	return nil
}

func applyDefaults(s *Settings) {
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.TestCaseSaveDirName == "" {
		s.TestCaseSaveDirName = DefaultTestCaseSaveDirName
	}
	if s.TemplateFilePath == "" {
		s.TemplateFilePath = DefaultTemplateFilePath
	}
	if s.SolutionFileName == "" {
		s.SolutionFileName = DefaultSolutionFileName
	}
	if s.Interpreter == "" {
		s.Interpreter = InterpreterCPython
	}
	if s.PythonCommand == "" {
		s.PythonCommand = DefaultPythonCommand
	}
	if s.PyPyCommand == "" {
		s.PyPyCommand = DefaultPyPyCommand
	}
	if s.RunCwdMode == "" {
		s.RunCwdMode = RunCwdWorkspace
	}
	s.Compare.Mode = string(compare.ResolveMode(s.Compare.Mode))
	if s.Compare.CaseSensitive == nil {
		value := true
		s.Compare.CaseSensitive = &value
	}
	if s.StateFilePath == "" {
		s.StateFilePath = DefaultStateFilePath
	}
	if s.Logger.Level == "" {
		s.Logger.Level = DefaultLogLevel
	}
}

// Validate checks enumerated options.
func (s Settings) Validate() error {
	if _, err := ParseInterpreter(string(s.Interpreter)); err != nil {
		return err
	}
	switch s.RunCwdMode {
	case RunCwdWorkspace, RunCwdTask:
	default:
		return appErr.ValidationError("runCwdMode", fmt.Sprintf("%q is not one of workspace, task", s.RunCwdMode))
	}
	if s.Port <= 0 || s.Port > 65535 {
		return appErr.ValidationError("port", "must be within 1-65535")
	}
	return nil
}

// Command returns the command string for the selected interpreter.
func (s Settings) Command() string {
	if s.Interpreter == InterpreterPyPy {
		return s.PyPyCommand
	}
	return s.PythonCommand
}

// ComparePolicy returns the comparison policy.
func (s Settings) ComparePolicy() compare.Policy {
	caseSensitive := true
	if s.Compare.CaseSensitive != nil {
		caseSensitive = *s.Compare.CaseSensitive
	}
	return compare.Policy{
		Mode:          compare.ResolveMode(s.Compare.Mode),
		CaseSensitive: caseSensitive,
	}
}

// ResolveWorkspaceRoot returns an absolute workspace root. An empty setting
// falls back to the process working directory.
func (s Settings) ResolveWorkspaceRoot() (string, error) {
	root := s.WorkspaceRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", appErr.Wrapf(err, appErr.WorkspaceUnavailable, "resolve working directory")
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", appErr.Wrapf(err, appErr.WorkspaceUnavailable, "resolve workspace root")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", appErr.Wrapf(err, appErr.WorkspaceUnavailable, "workspace root %s", abs)
	}
	if !info.IsDir() {
		return "", appErr.Newf(appErr.WorkspaceUnavailable, "workspace root %s is not a directory", abs)
	}
	return abs, nil
}

// ResolvePath makes a workspace-relative setting absolute.
func ResolvePath(workspaceRoot, value string) string {
	if value == "" || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(workspaceRoot, value)
}
