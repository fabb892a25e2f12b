// Package event defines run events and fans them out to subscribers.
package event

import (
	"acrunner/internal/judge/result"
)

// Kind tags the event variant.
type Kind string

const (
	KindProgress Kind = "run/progress"
	KindResult   Kind = "run/result"
	KindComplete Kind = "run/complete"
	KindNotice   Kind = "notice"
)

// Scope tells whether a run covers one case or all of them.
type Scope string

const (
	ScopeOne Scope = "one"
	ScopeAll Scope = "all"
)

// Level is the severity of a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Progress reports whether a run is active and which case is executing.
type Progress struct {
	Running      bool `json:"running"`
	CurrentIndex *int `json:"currentIndex,omitempty"`
}

// Notice is a user-facing message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Event is a tagged union; only the field matching Kind is set.
type Event struct {
	Kind     Kind               `json:"type"`
	Scope    Scope              `json:"scope,omitempty"`
	Progress *Progress          `json:"progress,omitempty"`
	Result   *result.RunResult  `json:"result,omitempty"`
	Summary  *result.RunSummary `json:"summary,omitempty"`
	Notice   *Notice            `json:"notice,omitempty"`
}

// Observer receives events. Implementations must not block.
type Observer interface {
	Publish(ev Event)
}

// NewProgress builds a run/progress event. A zero index omits currentIndex.
func NewProgress(scope Scope, running bool, currentIndex int) Event {
	progress := &Progress{Running: running}
	if currentIndex > 0 {
		index := currentIndex
		progress.CurrentIndex = &index
	}
	return Event{Kind: KindProgress, Scope: scope, Progress: progress}
}

// NewResult builds a run/result event.
func NewResult(scope Scope, res result.RunResult) Event {
	return Event{Kind: KindResult, Scope: scope, Result: &res}
}

// NewComplete builds a run/complete event.
func NewComplete(scope Scope, summary result.RunSummary) Event {
	return Event{Kind: KindComplete, Scope: scope, Summary: &summary}
}

// NewNotice builds a notice event.
func NewNotice(level Level, message string) Event {
	return Event{Kind: KindNotice, Notice: &Notice{Level: level, Message: message}}
}
