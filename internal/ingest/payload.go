package ingest

import (
	"net/url"
	"regexp"
	"strings"

	"acrunner/internal/testcase"
	appErr "acrunner/pkg/errors"
)

// CompanionTest is one sample pair sent by Competitive Companion.
type CompanionTest struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// CompanionPayload is the problem description posted by Competitive Companion.
// Fields the runner does not use are decoded loosely and kept for display.
type CompanionPayload struct {
	Name        string          `json:"name"`
	Group       string          `json:"group"`
	URL         string          `json:"url"`
	Interactive bool            `json:"interactive"`
	MemoryLimit int64           `json:"memoryLimit"`
	TimeLimit   int64           `json:"timeLimit"`
	Tests       []CompanionTest `json:"tests"`
	TestType    string          `json:"testType"`
	Input       interface{}     `json:"input,omitempty"`
	Output      interface{}     `json:"output,omitempty"`
	Languages   interface{}     `json:"languages,omitempty"`
	Batch       interface{}     `json:"batch,omitempty"`
}

// Validate checks the fields needed to store the problem.
func (p CompanionPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.URL) == "" {
		return appErr.ValidationError("name", "name or url is required")
	}
	if p.TimeLimit < 0 {
		return appErr.ValidationError("timeLimit", "must not be negative")
	}
	if p.MemoryLimit < 0 {
		return appErr.ValidationError("memoryLimit", "must not be negative")
	}
	return nil
}

// Samples converts the payload tests into repository samples.
func (p CompanionPayload) Samples() []testcase.Sample {
	samples := make([]testcase.Sample, 0, len(p.Tests))
	for _, tc := range p.Tests {
		samples = append(samples, testcase.Sample{Input: tc.Input, Output: tc.Output})
	}
	return samples
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

const fallbackID = "problem"

// DeriveIDs returns the contest and task directory names for a payload.
// AtCoder style /contests/<c>/tasks/<c>_<t> and Codeforces style
// /contest/<c>/problem/<t> URLs are recognized; anything else falls back
// to the sanitized group and name.
func DeriveIDs(p CompanionPayload) (contestID, taskID string) {
	if contestID, taskID, ok := idsFromURL(p.URL); ok {
		return contestID, taskID
	}
	return SanitizeID(p.Group), SanitizeID(p.Name)
}

func idsFromURL(raw string) (string, string, bool) {
	if raw == "" {
		return "", "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i := 0; i+3 < len(segments); i++ {
		switch {
		case segments[i] == "contests" && segments[i+2] == "tasks":
			contest := segments[i+1]
			task := strings.TrimPrefix(segments[i+3], contest+"_")
			return SanitizeID(contest), SanitizeID(task), true
		case segments[i] == "contest" && segments[i+2] == "problem":
			return SanitizeID(segments[i+1]), SanitizeID(segments[i+3]), true
		}
	}
	return "", "", false
}

// SanitizeID turns free text into a single safe path segment.
func SanitizeID(value string) string {
	cleaned := unsafeIDChars.ReplaceAllString(strings.TrimSpace(value), "_")
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return fallbackID
	}
	return cleaned
}
