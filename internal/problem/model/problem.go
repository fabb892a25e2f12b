// Package model defines the problem record shared by ingestion and the run engine.
package model

import "path/filepath"

// TestCaseFile is one stored input/expected-output pair.
type TestCaseFile struct {
	Index      int    `json:"index"`
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
}

// ProblemRecord identifies a judge problem and its stored cases.
type ProblemRecord struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	URL         string `json:"url"`
	Interactive bool   `json:"interactive"`
	// TimeLimit is the judge-declared limit in milliseconds.
	TimeLimit int64 `json:"timeLimit"`
	// MemoryLimit is the judge-declared limit in megabytes. Informational only.
	MemoryLimit int64          `json:"memoryLimit"`
	ContestID   string         `json:"contestId"`
	TaskID      string         `json:"taskId"`
	TestsDir    string         `json:"testsDir"`
	Cases       []TestCaseFile `json:"cases"`
}

// TaskDir returns the directory holding the solution for this problem.
func (p ProblemRecord) TaskDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, p.ContestID, p.TaskID)
}

// CasesDir returns the directory holding the numbered case files.
func (p ProblemRecord) CasesDir(workspaceRoot string) string {
	return filepath.Join(p.TaskDir(workspaceRoot), p.TestsDir)
}

// SameTask reports whether other stores its cases in the same place.
func (p ProblemRecord) SameTask(other ProblemRecord) bool {
	return p.ContestID == other.ContestID && p.TaskID == other.TaskID && p.TestsDir == other.TestsDir
}

// FindCase returns the case with the given index.
func (p ProblemRecord) FindCase(index int) (TestCaseFile, bool) {
	for _, tc := range p.Cases {
		if tc.Index == index {
			return tc, true
		}
	}
	return TestCaseFile{}, false
}

// Clone returns a copy that does not share the case slice.
func (p ProblemRecord) Clone() ProblemRecord {
	out := p
	if p.Cases != nil {
		out.Cases = make([]TestCaseFile, len(p.Cases))
		copy(out.Cases, p.Cases)
	}
	return out
}
